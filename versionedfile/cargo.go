package versionedfile

import (
	"fmt"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// tomlTableHeaderRegex matches a `[table]` or `[[array.table]]` header line,
// capturing the dotted table name without brackets.
var tomlTableHeaderRegex = regexp.MustCompile(`(?m)^\[\[?([^\[\]]+)\]\]?\s*$`)

// tableSpan returns the byte range of table's body: everything after its
// header line up to (not including) the next table header, or EOF. ok is
// false if the table header is absent.
func tableSpan(content, table string) (start, end int, ok bool) {
	for _, loc := range tomlTableHeaderRegex.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		if name != table {
			continue
		}
		bodyStart := loc[1]
		if bodyStart < len(content) && content[bodyStart] == '\n' {
			bodyStart++
		}
		bodyEnd := len(content)
		for _, next := range tomlTableHeaderRegex.FindAllStringIndex(content, -1) {
			if next[0] > loc[1] {
				bodyEnd = next[0]
				break
			}
		}
		return bodyStart, bodyEnd, true
	}
	return 0, 0, false
}

// quotedKeyValueSpan finds `key = "..."` (the quoted literal only, quote
// marks excluded) within content[searchStart:searchEnd], returning absolute byte
// offsets of the value's content.
func quotedKeyValueSpan(content string, searchStart, searchEnd int, key string) (valStart, valEnd int, ok bool) {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(key) + `\s*=\s*"([^"]*)"`)
	loc := re.FindStringSubmatchIndex(content[searchStart:searchEnd])
	if loc == nil {
		return 0, 0, false
	}
	return searchStart + loc[2], searchStart + loc[3], true
}

// CargoToml is the Cargo.toml adapter (spec §4.2 "Cargo.toml").
//
// Cargo.toml is edited byte-for-byte: go-toml/v2's Unmarshal only validates
// structure (the keys we require exist), the actual rewrite locates the
// quoted version literal's exact byte span with a scoped regex and replaces
// only that span, per the byte-oriented edit model (spec §9 Design Notes).
type CargoToml struct {
	path    string
	content string

	// dependency is "" for an own-package Cargo.toml.
	dependency string

	valStart, valEnd int // byte span of the quoted version literal
	version          semver.Version
}

type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// NewCargoToml parses filePath. When dependency is "", the file's own
// package.version is tracked; otherwise the named dependency's version
// entry under dependencies / dev-dependencies / workspace.dependencies.
func NewCargoToml(filePath, content, dependency string) (*CargoToml, error) {
	if dependency == "" {
		return newCargoOwnPackage(filePath, content)
	}
	return newCargoDependency(filePath, content, dependency)
}

func newCargoOwnPackage(filePath, content string) (*CargoToml, error) {
	var manifest cargoManifest
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: err}
	}
	if manifest.Package.Name == "" {
		return nil, &ErrMissingProperty{Path: filePath, Property: "package.name"}
	}
	if manifest.Package.Version == "" {
		return nil, &ErrMissingProperty{Path: filePath, Property: "package.version"}
	}

	start, end, ok := tableSpan(content, "package")
	if !ok {
		return nil, &ErrMissingProperty{Path: filePath, Property: "package"}
	}
	valStart, valEnd, ok := quotedKeyValueSpan(content, start, end, "version")
	if !ok {
		return nil, &ErrMissingProperty{Path: filePath, Property: "package.version"}
	}

	v, err := semver.Parse(manifest.Package.Version)
	if err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("package.version %q: %w", manifest.Package.Version, err)}
	}

	return &CargoToml{path: filePath, content: content, valStart: valStart, valEnd: valEnd, version: v}, nil
}

var cargoDependencyTables = []string{"dependencies", "dev-dependencies", "workspace.dependencies"}

func newCargoDependency(filePath, content, dependency string) (*CargoToml, error) {
	for _, table := range cargoDependencyTables {
		if start, end, ok := tableSpan(content, table); ok {
			if valStart, valEnd, ok := quotedKeyValueSpan(content, start, end, dependency); ok {
				return finishCargoDependency(filePath, content, dependency, valStart, valEnd)
			}
			if valStart, valEnd, ok := inlineTableVersionSpan(content, start, end, dependency); ok {
				return finishCargoDependency(filePath, content, dependency, valStart, valEnd)
			}
		}
		if start, end, ok := tableSpan(content, table+"."+dependency); ok {
			if valStart, valEnd, ok := quotedKeyValueSpan(content, start, end, "version"); ok {
				return finishCargoDependency(filePath, content, dependency, valStart, valEnd)
			}
		}
	}
	return nil, &ErrDependencyNotFound{Path: filePath, Dependency: dependency}
}

// inlineTableVersionSpan locates `dep = { ..., version = "x", ... }` within
// content[searchStart:searchEnd] and returns the byte span of the quoted
// version value inside the braces.
func inlineTableVersionSpan(content string, searchStart, searchEnd int, dep string) (valStart, valEnd int, ok bool) {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(dep) + `\s*=\s*\{([^}]*)\}`)
	loc := re.FindStringSubmatchIndex(content[searchStart:searchEnd])
	if loc == nil {
		return 0, 0, false
	}
	braceStart, braceEnd := searchStart+loc[2], searchStart+loc[3]
	vre := regexp.MustCompile(`(?:^|[\s,])version\s*=\s*"([^"]*)"`)
	vloc := vre.FindStringSubmatchIndex(content[braceStart:braceEnd])
	if vloc == nil {
		return 0, 0, false
	}
	return braceStart + vloc[2], braceStart + vloc[3], true
}

func finishCargoDependency(filePath, content, dependency string, valStart, valEnd int) (*CargoToml, error) {
	literal := content[valStart:valEnd]
	v, err := semver.Parse(literal)
	if err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("dependency %q version %q: %w", dependency, literal, err)}
	}
	return &CargoToml{path: filePath, content: content, dependency: dependency, valStart: valStart, valEnd: valEnd, version: v}, nil
}

func (c *CargoToml) Path() string            { return c.path }
func (c *CargoToml) Version() semver.Version { return c.version }

func (c *CargoToml) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	literal := newVersion.String()
	c.content = c.content[:c.valStart] + literal + c.content[c.valEnd:]
	shift := len(literal) - (c.valEnd - c.valStart)
	c.valEnd += shift
	c.version = newVersion

	diff := literal
	if c.dependency != "" {
		diff = c.dependency + "@" + literal
	}
	return []action.Action{action.WriteToFile(c.path, c.content, diff)}, nil
}
