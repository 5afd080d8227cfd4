// Package semver implements the version model for the Knope versioning
// engine: parsing and ordering of semantic versions, and the multi-label
// pre-release tracking state machine described by PackageVersions.
//
// Parsing and comparison of bare SemVer strings is delegated to
// github.com/Masterminds/semver/v3, which already implements SemVer 2.0.0
// precedence correctly; this package layers the label/number pre-release
// bookkeeping Knope needs on top of it.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
)

// Stable is a released (non-prerelease) version.
type Stable struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Compare returns -1, 0, or 1 if s is less than, equal to, or greater than o.
func (s Stable) Compare(o Stable) int {
	switch {
	case s.Major != o.Major:
		return cmpUint64(s.Major, o.Major)
	case s.Minor != o.Minor:
		return cmpUint64(s.Minor, o.Minor)
	default:
		return cmpUint64(s.Patch, o.Patch)
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (s Stable) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// PreComponent is the `-label.N` suffix of a pre-release version.
type PreComponent struct {
	Label  string
	Number uint64
}

// Compare orders two pre-release components sharing the same label and
// stable component by their number.
func (p PreComponent) Compare(o PreComponent) int {
	return cmpUint64(p.Number, o.Number)
}

func (p PreComponent) String() string {
	return fmt.Sprintf("%s.%d", p.Label, p.Number)
}

// Version is either a Stable release or a Stable paired with a pre-release
// label/number.
type Version struct {
	StableComponent Stable
	PreComponent    *PreComponent // nil for a stable version
}

// IsStable reports whether v carries no pre-release component.
func (v Version) IsStable() bool {
	return v.PreComponent == nil
}

func (v Version) String() string {
	if v.PreComponent == nil {
		return v.StableComponent.String()
	}
	return fmt.Sprintf("%s-%s", v.StableComponent.String(), v.PreComponent.String())
}

// Compare implements standard SemVer precedence: a stable version sorts
// strictly greater than any pre-release sharing the same stable component.
func (v Version) Compare(o Version) int {
	if c := v.StableComponent.Compare(o.StableComponent); c != 0 {
		return c
	}
	switch {
	case v.PreComponent == nil && o.PreComponent == nil:
		return 0
	case v.PreComponent == nil:
		return 1
	case o.PreComponent == nil:
		return -1
	case v.PreComponent.Label != o.PreComponent.Label:
		return strings.Compare(v.PreComponent.Label, o.PreComponent.Label)
	default:
		return v.PreComponent.Compare(*o.PreComponent)
	}
}

// Parse parses a MAJOR.MINOR.PATCH[-LABEL.N] string into a Version.
//
// The grammar is standard SemVer; Knope additionally requires that, if a
// pre-release identifier is present, it take the exact form `label.N`
// where label is an ASCII identifier and N is a non-negative integer — this
// is what lets the engine increment a specific in-flight pre-release.
func Parse(s string) (Version, error) {
	mv, err := mmsemver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("parsing version %q: %w", s, err)
	}

	v := Version{
		StableComponent: Stable{
			Major: mv.Major(),
			Minor: mv.Minor(),
			Patch: mv.Patch(),
		},
	}

	pre := mv.Prerelease()
	if pre == "" {
		return v, nil
	}

	label, numStr, ok := strings.Cut(pre, ".")
	if !ok || label == "" {
		return Version{}, fmt.Errorf("parsing version %q: pre-release %q is not of the form label.N", s, pre)
	}
	num, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("parsing version %q: pre-release number %q: %w", s, numStr, err)
	}
	v.PreComponent = &PreComponent{Label: label, Number: num}
	return v, nil
}

// MustParse parses s and panics on error; reserved for constants in tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseTag strips an optional prefix and the mandatory "v" sigil from a
// Git tag name and parses the remainder as a Version. prefix may be empty.
// ParseTag reports ok=false (no error) when the tag does not match the
// expected `{prefix/}v{version}` shape, so callers can silently skip
// unrelated tags while iterating a tag list.
func ParseTag(prefix, tag string) (v Version, ok bool) {
	rest := tag
	if prefix != "" {
		p := prefix + "/v"
		if !strings.HasPrefix(tag, p) {
			return Version{}, false
		}
		rest = strings.TrimPrefix(tag, p)
	} else {
		if !strings.HasPrefix(tag, "v") {
			return Version{}, false
		}
		rest = strings.TrimPrefix(tag, "v")
	}
	parsed, err := Parse(rest)
	if err != nil {
		return Version{}, false
	}
	return parsed, true
}

func bumpStable(s Stable, rule StableRule) Stable {
	// 0.x special case: Major becomes a minor bump and Minor becomes a
	// patch bump; Patch always increments patch regardless of major.
	if s.Major == 0 {
		switch rule {
		case RuleMajor:
			rule = RuleMinor
		case RuleMinor:
			rule = RulePatch
		}
	}
	switch rule {
	case RuleMajor:
		return Stable{Major: s.Major + 1, Minor: 0, Patch: 0}
	case RuleMinor:
		return Stable{Major: s.Major, Minor: s.Minor + 1, Patch: 0}
	case RulePatch:
		return Stable{Major: s.Major, Minor: s.Minor, Patch: s.Patch + 1}
	default:
		return s
	}
}
