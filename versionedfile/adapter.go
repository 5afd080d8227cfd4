// Package versionedfile implements C2 (per-format adapters) and C3 (the
// facade dispatch table) of the versioning engine: reading a package's
// declared version out of a manifest/lockfile and rewriting it in place.
// Text-based adapters preserve every byte outside the version span; the
// pom.xml and pubspec.yaml adapters re-serialize the whole document.
package versionedfile

import (
	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// GoVersioningMode controls how the go.mod adapter handles a major-version
// bump (spec §4.2 "go.mod").
type GoVersioningMode int

const (
	// GoVersioningStandard refuses an implicit major bump past v1 unless
	// the module already carries a /vN suffix.
	GoVersioningStandard GoVersioningMode = iota
	// GoVersioningBumpMajor allows rewriting the module path's /vN suffix,
	// unless the major version is directory-derived.
	GoVersioningBumpMajor
	// GoVersioningIgnoreMajorRules bypasses every go.mod major-version
	// check.
	GoVersioningIgnoreMajorRules
)

// Adapter is the contract every format adapter implements (spec §4.2).
type Adapter interface {
	// Path returns the adapter's file path, as given to its constructor.
	Path() string
	// Version returns the adapter's current version: the dependency's
	// version if one is configured, else the file's own version.
	Version() semver.Version
	// SetVersion produces the actions needed to rewrite the file to
	// newVersion. Text-based adapters preserve every byte outside the
	// version span(s) they modify; the pom.xml and pubspec.yaml adapters
	// re-serialize the whole document.
	SetVersion(newVersion semver.Version, mode GoVersioningMode) ([]action.Action, error)
}
