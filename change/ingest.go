package change

import "github.com/knope-dev/knope-go/semver"

// Ingest runs both C4 passes for one package — conventional commits first,
// changesets second — and concatenates their results, matching
// Package.get_changes's commit-derived-then-changeset-derived ordering
// (spec §4.6).
func Ingest(commitMessages []string, changesets []ChangesetFile, packageName string, cfg Config) []Change {
	changes := FromCommits(commitMessages, cfg)
	changes = append(changes, FromChangesets(packageName, changesets)...)
	return changes
}

// MaxRule derives the StableRule implied by the maximum-ranked ChangeType
// among changes (Breaking > Feature > Fix > Custom, Custom counting as
// Patch). ok is false when changes is empty.
func MaxRule(changes []Change) (rule semver.StableRule, ok bool) {
	best := -1
	for _, c := range changes {
		if r := c.Type.Rank(); r > best {
			best = r
		}
	}
	switch {
	case best < 0:
		return 0, false
	case best == 3:
		return semver.RuleMajor, true
	case best == 2:
		return semver.RuleMinor, true
	default:
		return semver.RulePatch, true
	}
}
