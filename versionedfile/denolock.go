package versionedfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// DenoLock is the deno.lock adapter (spec §4.2 "deno.lock"). Only lockfile
// version "5" is supported. A dependency is addressed as the literal
// `name@version` specifier token deno.lock uses as both a map key
// (specifiers, npm, jsr) and an array entry (workspace.dependencies,
// workspace.members[*].dependencies, workspace.links[*]): every one of
// those locations is rewritten by replacing that exact token throughout
// the file, which is what "rekeyed" amounts to for this format.
type DenoLock struct {
	path       string
	content    string
	dependency string
	oldToken   string // "{dependency}@{version}"
	version    semver.Version
}

const denoLockSupportedVersion = "5"

func NewDenoLock(filePath, content, dependency string) (*DenoLock, error) {
	if !gjson.Valid(content) {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("invalid JSON")}
	}

	lv := gjson.Get(content, "version")
	if !lv.Exists() {
		return nil, &ErrMissingProperty{Path: filePath, Property: "version"}
	}
	if lv.String() != denoLockSupportedVersion {
		return nil, &ErrUnsupportedLockfileVersion{Path: filePath, Got: lv.String(), Want: denoLockSupportedVersion}
	}

	tokenRegex := regexp.MustCompile(regexp.QuoteMeta(dependency) + `@([0-9][^"']*)`)
	m := tokenRegex.FindStringSubmatch(content)
	if m == nil {
		return nil, &ErrDependencyNotFound{Path: filePath, Dependency: dependency}
	}

	v, err := semver.Parse(m[1])
	if err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("dependency %q version %q: %w", dependency, m[1], err)}
	}

	return &DenoLock{
		path: filePath, content: content, dependency: dependency,
		oldToken: dependency + "@" + m[1], version: v,
	}, nil
}

func (d *DenoLock) Path() string            { return d.path }
func (d *DenoLock) Version() semver.Version { return d.version }

func (d *DenoLock) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	newToken := d.dependency + "@" + newVersion.String()
	d.content = strings.ReplaceAll(d.content, d.oldToken, newToken)
	d.oldToken = newToken
	d.version = newVersion

	return []action.Action{action.WriteToFile(d.path, d.content, d.dependency+"@"+newVersion.String())}, nil
}
