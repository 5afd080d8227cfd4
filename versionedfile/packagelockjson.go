package versionedfile

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// PackageLockWarner receives the lockfileVersion compatibility warning
// package-lock.json adapters must surface (spec §9 Open Question 3); nil
// is a valid, silent default.
type PackageLockWarner func(msg string)

// PackageLockJSON is the package-lock.json adapter (spec §4.2
// "package-lock.json"). It keeps the top-level version, the root
// "packages[\"\"]" entry, and every nested "packages[p]" entry whose name
// matches in lockstep.
type PackageLockJSON struct {
	path       string
	content    string
	dependency string

	setPaths []string // every sjson path that must carry the new version literal
	version  semver.Version
}

// NewPackageLockJSON parses filePath. lockfileVersion outside {2,3} is not
// an error (spec §9 Open Question 3): warn emits a string describing the
// mismatch, via whatever logging hook the caller wires up, and parsing
// proceeds.
func NewPackageLockJSON(filePath, content, dependency string, warn PackageLockWarner) (*PackageLockJSON, error) {
	if !gjson.Valid(content) {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("invalid JSON")}
	}

	if lv := gjson.Get(content, "lockfileVersion"); lv.Exists() {
		if n := lv.Int(); n != 2 && n != 3 {
			if warn != nil {
				warn(fmt.Sprintf("%s: unsupported lockfileVersion %d, proceeding anyway", filePath, n))
			}
		}
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
		setPaths := []string{"version"}
		if rootVer := gjson.Get(content, "packages..version"); rootVer.Exists() {
			setPaths = append(setPaths, "packages..version")
		}
		return &PackageLockJSON{path: filePath, content: content, setPaths: setPaths, version: v}, nil
	}

	var setPaths []string
	var version *semver.Version
	packages := gjson.Get(content, "packages")
	packages.ForEach(func(pkgPath, pkgVal gjson.Result) bool {
		name := pkgVal.Get("name").String()
		matches := name == dependency
		if !matches && pkgPath.String() == "node_modules/"+dependency {
			matches = true
		}
		if !matches {
			return true
		}
		verRes := pkgVal.Get("version")
		if !verRes.Exists() {
			return true
		}
		v, err := semver.Parse(verRes.String())
		if err != nil {
			return true
		}
		if version == nil {
			version = &v
		}
		setPaths = append(setPaths, "packages."+gjsonEscape(pkgPath.String())+".version")
		return true
	})

	dependencies := gjson.Get(content, "dependencies")
	if depRes := dependencies.Get(gjsonEscape(dependency)); depRes.Exists() {
		if verRes := depRes.Get("version"); verRes.Exists() {
			if v, err := semver.Parse(verRes.String()); err == nil {
				if version == nil {
					version = &v
				}
				setPaths = append(setPaths, "dependencies."+gjsonEscape(dependency)+".version")
			}
		}
	}

	if version == nil {
		return nil, &ErrDependencyNotFound{Path: filePath, Dependency: dependency}
	}

	return &PackageLockJSON{path: filePath, content: content, dependency: dependency, setPaths: setPaths, version: *version}, nil
}

func (p *PackageLockJSON) Path() string            { return p.path }
func (p *PackageLockJSON) Version() semver.Version { return p.version }

func (p *PackageLockJSON) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	literal := newVersion.String()
	content := p.content
	for _, setPath := range p.setPaths {
		var err error
		content, err = sjson.Set(content, setPath, literal)
		if err != nil {
			return nil, &ErrStructuralParse{Path: p.path, Err: err}
		}
	}
	p.content = content
	p.version = newVersion

	diff := literal
	if p.dependency != "" {
		diff = p.dependency + "@" + literal
	}
	return []action.Action{action.WriteToFile(p.path, p.content, diff)}, nil
}
