package releasenotes

import "github.com/knope-dev/knope-go/change"

// SectionConfig is one (title, sources) entry in a package's section map:
// a rendered release groups changes under the first configured section
// whose Sources list contains the change's SectionSource.
type SectionConfig struct {
	Title   string
	Sources []change.SectionSource
}

func (sc SectionConfig) accepts(source change.SectionSource) bool {
	for _, s := range sc.Sources {
		if s == source {
			return true
		}
	}
	return false
}

// DefaultSections is the built-in section map (spec §6): Breaking changes,
// Features, Fixes, Notes. User-configured sections are appended after
// these; since a change goes to the first section that accepts it, they add
// sections but do not override a default one. Order in the rendered
// changelog follows this combined order.
func DefaultSections() []SectionConfig {
	return []SectionConfig{
		{Title: "Breaking changes", Sources: []change.SectionSource{change.SourceMajor}},
		{Title: "Features", Sources: []change.SectionSource{change.SourceMinor}},
		{Title: "Fixes", Sources: []change.SectionSource{change.SourcePatch}},
		{Title: "Notes", Sources: []change.SectionSource{"Changelog-Note"}},
	}
}
