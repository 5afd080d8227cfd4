// Package releasenotes implements the C5 release-notes renderer: bucketing
// ingested changes into configured sections, rendering a release block, and
// splicing it into an existing Markdown changelog.
package releasenotes

import (
	"strings"

	"github.com/knope-dev/knope-go/change"
	"github.com/knope-dev/knope-go/semver"
)

// Section is one bucketed group of changes for a release: a title and the
// normalized description of each change that landed in it, in input order.
type Section struct {
	Title   string
	Entries []string
}

// Notes is the full set of bucketed sections for one release.
type Notes struct {
	Version  semver.Version
	Sections []Section
}

// BuildReleaseNotes buckets changes into the first section (in configured
// order) whose Sources accept the change's SectionSource. Sections with no
// entries are omitted; section order follows configuration order; within a
// section, changes keep input order (spec §4.5).
func BuildReleaseNotes(version semver.Version, changes []change.Change, sections []SectionConfig) Notes {
	entries := make([][]string, len(sections))
	for _, c := range changes {
		source := c.Type.Source()
		for i, sc := range sections {
			if sc.accepts(source) {
				entries[i] = append(entries[i], normalizeEntry(c.Description))
				break
			}
		}
	}

	notes := Notes{Version: version}
	for i, sc := range sections {
		if len(entries[i]) == 0 {
			continue
		}
		notes.Sections = append(notes.Sections, Section{Title: sc.Title, Entries: entries[i]})
	}
	return notes
}

// normalizeEntry strips any leading Markdown heading markers a
// changeset-sourced change's summary may already carry, so formatting is
// normalized regardless of where the change came from.
func normalizeEntry(desc string) string {
	return strings.TrimSpace(strings.TrimLeft(desc, "#"))
}
