package versionedfile

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// PackageJSON is the package.json / tauri*.conf.json adapter (spec §4.2
// "package.json / tauri*.conf.json"): gjson reads without disturbing key
// order or formatting, sjson writes a single path surgically so every other
// byte of the document is untouched.
type PackageJSON struct {
	path       string
	content    string
	dependency string // "" tracks the top-level "version"

	// setPath is the sjson path SetVersion rewrites.
	setPath string
	version semver.Version
}

var packageJSONDependencyGroups = []string{"dependencies", "devDependencies"}

// NewPackageJSON parses filePath. When dependency is "", the top-level
// "version" field is tracked; otherwise the named entry under
// "dependencies" or "devDependencies".
func NewPackageJSON(filePath, content, dependency string) (*PackageJSON, error) {
	if !gjson.Valid(content) {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("invalid JSON")}
	}

	if dependency == "" {
		res := gjson.Get(content, "version")
		if !res.Exists() {
			return nil, &ErrMissingProperty{Path: filePath, Property: "version"}
		}
		v, err := semver.Parse(res.String())
		if err != nil {
			return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("version %q: %w", res.String(), err)}
		}
		return &PackageJSON{path: filePath, content: content, setPath: "version", version: v}, nil
	}

	for _, group := range packageJSONDependencyGroups {
		fieldPath := group + "." + gjsonEscape(dependency)
		res := gjson.Get(content, fieldPath)
		if res.Exists() {
			v, err := semver.Parse(res.String())
			if err != nil {
				return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("%s %q: %w", fieldPath, res.String(), err)}
			}
			return &PackageJSON{
				path: filePath, content: content, dependency: dependency,
				setPath: fieldPath, version: v,
			}, nil
		}
	}
	return nil, &ErrDependencyNotFound{Path: filePath, Dependency: dependency}
}

// gjsonEscape escapes gjson/sjson path metacharacters (. * ? and the path
// separator itself) in a literal key.
func gjsonEscape(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}

func (p *PackageJSON) Path() string            { return p.path }
func (p *PackageJSON) Version() semver.Version { return p.version }

func (p *PackageJSON) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	literal := newVersion.String()
	newContent, err := sjson.Set(p.content, p.setPath, literal)
	if err != nil {
		return nil, &ErrStructuralParse{Path: p.path, Err: err}
	}
	p.content = newContent
	p.version = newVersion

	diff := literal
	if p.dependency != "" {
		diff = p.dependency + "@" + literal
	}
	return []action.Action{action.WriteToFile(p.path, p.content, diff)}, nil
}
