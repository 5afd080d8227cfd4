package pkgengine

import (
	"errors"
	"fmt"
)

// ErrNoPackages is returned by New when called with zero versioned files.
var ErrNoPackages = errors.New("a package needs at least one versioned file")

// ErrInconsistentVersions reports two versioned files in the same package
// disagreeing on their current version.
type ErrInconsistentVersions struct {
	PathA, VerA string
	PathB, VerB string
}

func (e *ErrInconsistentVersions) Error() string {
	return fmt.Sprintf("%s@%s disagrees with %s@%s", e.PathA, e.VerA, e.PathB, e.VerB)
}

// ErrPackageAlreadyBumped is returned by ApplyChanges on a package whose
// versioned files have already been drained by a prior call.
var ErrPackageAlreadyBumped = errors.New("package has already been bumped")

// ErrSetVersion wraps a versioned-file adapter's SetVersion failure with
// the path that produced it.
type ErrSetVersion struct {
	Path string
	Err  error
}

func (e *ErrSetVersion) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *ErrSetVersion) Unwrap() error { return e.Err }
