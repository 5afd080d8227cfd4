package semver

import (
	"errors"
	"fmt"
)

// ErrPreReleaseNotFound is returned by Bump when a Release rule is applied
// to a PackageVersions with no in-flight pre-release to promote.
var ErrPreReleaseNotFound = errors.New("no pre-release found to promote to a release")

// PackageVersions tracks a package's current stable version together with
// the newest pre-release of every (stable, label) pair still "in flight".
//
// Invariants (see spec §3):
//  1. for every (S, L) only the highest-numbered pre is kept;
//  2. pre entries are discarded once a stable >= their S is adopted;
//  3. Latest returns the greatest pre under the numerically-greatest
//     Stable key that has any, else the stable itself — a SemVer
//     `Compare` over the Stable keys, mirroring `BTreeMap::pop_last()`
//     on the original's `prereleases` map (spec §4.1 into_latest/Release:
//     "pop the largest key").
type PackageVersions struct {
	Stable Stable
	// prereleases maps a stable component to its per-label newest
	// pre-release. Several stable keys can be populated at once (each
	// pre-release folds in under its own stable); UpdateVersion clears them
	// all when it adopts a greater stable. The map shape
	// mirrors the spec's `ordered map from Stable -> map from Label ->
	// PreComponent` directly.
	prereleases map[Stable]map[string]PreComponent
}

// NewPackageVersions builds an empty tracker at 0.0.0 with no in-flight
// pre-releases.
func NewPackageVersions() *PackageVersions {
	return &PackageVersions{prereleases: map[Stable]map[string]PreComponent{}}
}

// FromTags builds a PackageVersions by walking tags in the order given.
// The caller MUST supply tags newest-first on the current branch — this
// is a precondition, not something FromTags can verify (see spec §9 Open
// Question 1).
//
// For each tag matching `{prefix}/v` (or bare `v` when prefix is empty),
// FromTags parses the remainder as a Version. While no stable tag has yet
// been found, every pre-release tag is folded in via UpdateVersion (so
// in-flight pre-releases newer than the last stable survive). The first
// stable match is recorded and iteration stops: older tags — including
// older pre-releases — are irrelevant once a stable anchor is found.
func FromTags(prefix string, tags []string) *PackageVersions {
	pv := NewPackageVersions()
	for _, tag := range tags {
		v, ok := ParseTag(prefix, tag)
		if !ok {
			continue
		}
		if v.IsStable() {
			pv.Stable = v.StableComponent
			return pv
		}
		pv.UpdateVersion(v)
	}
	return pv
}

// UpdateVersion folds a newly observed version into the tracker.
//
//   - A stable version greater than the current stable replaces it and
//     clears every in-flight pre-release (a higher stable invalidates all
//     of them).
//   - A stable version <= the current stable is a no-op.
//   - A pre-release version replaces the tracked (stable, label) entry
//     only if its number is greater than what's tracked; otherwise it's a
//     no-op.
func (pv *PackageVersions) UpdateVersion(v Version) {
	if v.IsStable() {
		if v.StableComponent.Compare(pv.Stable) > 0 {
			pv.Stable = v.StableComponent
			pv.prereleases = map[Stable]map[string]PreComponent{}
		}
		return
	}

	labels, ok := pv.prereleases[v.StableComponent]
	if !ok {
		labels = map[string]PreComponent{}
		pv.prereleases[v.StableComponent] = labels
	}
	existing, ok := labels[v.PreComponent.Label]
	if !ok || v.PreComponent.Compare(existing) > 0 {
		labels[v.PreComponent.Label] = *v.PreComponent
	}
}

// greatestPreStable returns the numerically-greatest Stable key with any
// in-flight pre-release, and whether one exists.
func (pv *PackageVersions) greatestPreStable() (Stable, bool) {
	var greatest Stable
	found := false
	for s := range pv.prereleases {
		if !found || s.Compare(greatest) > 0 {
			greatest = s
			found = true
		}
	}
	return greatest, found
}

// Latest returns the greatest pre-release in flight, under the
// numerically-greatest Stable key that has one, else the tracked stable
// version.
func (pv *PackageVersions) Latest() Version {
	key, ok := pv.greatestPreStable()
	if !ok {
		return Version{StableComponent: pv.Stable}
	}
	labels := pv.prereleases[key]
	var best *PreComponent
	for _, pc := range labels {
		pc := pc
		if best == nil || pc.Compare(*best) > 0 {
			best = &pc
		}
	}
	if best == nil {
		return Version{StableComponent: pv.Stable}
	}
	return Version{StableComponent: key, PreComponent: best}
}

func (pv *PackageVersions) clearPrereleases() {
	pv.prereleases = map[Stable]map[string]PreComponent{}
}

// Bump computes the next version for rule and applies it to pv in place,
// returning the new Latest() value.
func (pv *PackageVersions) Bump(rule Rule) (Version, error) {
	switch rule.Kind {
	case KindMajor, KindMinor, KindPatch:
		next := bumpStable(pv.Stable, rule.asStableRule())
		pv.UpdateVersion(Version{StableComponent: next})
		return pv.Latest(), nil

	case KindRelease:
		target, ok := pv.greatestPreStable()
		if !ok {
			return Version{}, ErrPreReleaseNotFound
		}
		pv.Stable = target
		pv.clearPrereleases()
		return Version{StableComponent: pv.Stable}, nil

	case KindPre:
		target := bumpStable(pv.Stable, rule.PreStableOf)
		number := uint64(0)
		if labels, ok := pv.prereleases[target]; ok {
			if existing, ok := labels[rule.PreLabel]; ok {
				number = existing.Number + 1
			}
		}
		// Clearing prevents a different in-flight pre-release (for a
		// stable the caller has now superseded) from being resurrected
		// by a later UpdateVersion call.
		pv.clearPrereleases()
		pc := PreComponent{Label: rule.PreLabel, Number: number}
		pv.prereleases[target] = map[string]PreComponent{rule.PreLabel: pc}
		return Version{StableComponent: target, PreComponent: &pc}, nil

	default:
		return Version{}, fmt.Errorf("unknown rule kind %d", rule.Kind)
	}
}

// SetManual forces pv to a caller-supplied version, following the same
// UpdateVersion semantics as a discovered tag (so a manual stable clears
// in-flight pre-releases, and a manual pre-release only "wins" if it is
// numerically newer than what's tracked for that stable+label).
func (pv *PackageVersions) SetManual(v Version) Version {
	pv.UpdateVersion(v)
	return pv.Latest()
}
