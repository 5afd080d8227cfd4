package versionedfile

import (
	"fmt"
	"regexp"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// cargoLockPackageHeaderRegex matches a `[[package]]` header line; an
// entry's body runs from its header to the next such header or EOF.
var cargoLockPackageHeaderRegex = regexp.MustCompile(`(?m)^\[\[package\]\]\s*$`)

// CargoLock is the Cargo.lock adapter (spec §4.2 "Cargo.lock"): locates
// every `[[package]]` entry whose name matches the configured dependency
// and tracks/rewrites all of their version fields in lockstep.
type CargoLock struct {
	path       string
	content    string
	dependency string

	valSpans [][2]int // byte spans of every matching entry's version literal
	version  semver.Version
}

// NewCargoLock parses filePath for dependency's locked version, taking the
// first matching [[package]] entry's version as the tracked value.
// SetVersion rewrites every matching entry in lockstep.
func NewCargoLock(filePath, content, dependency string) (*CargoLock, error) {
	headers := cargoLockPackageHeaderRegex.FindAllStringIndex(content, -1)
	if len(headers) == 0 {
		return nil, &ErrMissingProperty{Path: filePath, Property: "[[package]]"}
	}

	var spans [][2]int
	var version *semver.Version
	for i, h := range headers {
		bodyStart := h[1]
		bodyEnd := len(content)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1][0]
		}
		nameStart, nameEnd, ok := quotedKeyValueSpan(content, bodyStart, bodyEnd, "name")
		if !ok || content[nameStart:nameEnd] != dependency {
			continue
		}
		valStart, valEnd, ok := quotedKeyValueSpan(content, bodyStart, bodyEnd, "version")
		if !ok {
			return nil, &ErrMissingProperty{Path: filePath, Property: fmt.Sprintf("[[package]] %s.version", dependency)}
		}
		literal := content[valStart:valEnd]
		v, err := semver.Parse(literal)
		if err != nil {
			return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("package %q version %q: %w", dependency, literal, err)}
		}
		if version == nil {
			version = &v
		}
		spans = append(spans, [2]int{valStart, valEnd})
	}

	if version == nil {
		return nil, &ErrDependencyNotFound{Path: filePath, Dependency: dependency}
	}

	return &CargoLock{path: filePath, content: content, dependency: dependency, valSpans: spans, version: *version}, nil
}

func (c *CargoLock) Path() string            { return c.path }
func (c *CargoLock) Version() semver.Version { return c.version }

func (c *CargoLock) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	literal := newVersion.String()
	var b []byte
	cursor := 0
	for _, span := range c.valSpans {
		b = append(b, c.content[cursor:span[0]]...)
		b = append(b, literal...)
		cursor = span[1]
	}
	b = append(b, c.content[cursor:]...)
	c.content = string(b)
	c.version = newVersion

	return []action.Action{action.WriteToFile(c.path, c.content, c.dependency+"@"+literal)}, nil
}
