package change

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// ChangesetFile is one parsed .changeset/*.md document: YAML-like front
// matter mapping package name to bump level, followed by a free-form
// Markdown summary.
type ChangesetFile struct {
	ID       string            // basename, used to build the eventual RemoveFile path
	Releases map[string]string // package name -> bump level ("major"|"minor"|"patch"|custom)
	Summary  string
}

// ParseChangesetFile parses a changeset's front matter and summary body.
func ParseChangesetFile(filename, content string) (ChangesetFile, error) {
	cf := ChangesetFile{ID: path.Base(filename)}

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelim {
		return ChangesetFile{}, fmt.Errorf("changeset %s: missing front matter", filename)
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelim {
			end = i
			break
		}
	}
	if end == -1 {
		return ChangesetFile{}, fmt.Errorf("changeset %s: unterminated front matter", filename)
	}

	releases := map[string]string{}
	front := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(front), &releases); err != nil {
		return ChangesetFile{}, fmt.Errorf("changeset %s: parsing front matter: %w", filename, err)
	}
	cf.Releases = releases
	cf.Summary = strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	return cf, nil
}

// Entries splits the summary body into one entry per blank-line-separated
// paragraph, so a changeset describing several independently-worth-noting
// changes yields one Change per paragraph rather than a single blob.
func (cf ChangesetFile) Entries() []string {
	var entries []string
	for _, p := range strings.Split(cf.Summary, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			entries = append(entries, p)
		}
	}
	return entries
}

// RemovePath is the repo-relative path the engine must RemoveFile once a
// release triggered by this changeset is stable.
func (cf ChangesetFile) RemovePath() string {
	return ".changeset/" + cf.ID
}

// levelToChangeType maps a changeset bump-level string onto a ChangeType,
// falling back to a custom section source for anything other than the three
// standard levels.
func levelToChangeType(level string) ChangeType {
	switch strings.ToLower(level) {
	case "major":
		return Breaking()
	case "minor":
		return Feature()
	case "patch":
		return Fix()
	default:
		return Custom(SectionSource(level))
	}
}

// FromChangesets runs the C4 changeset pass for packageName against every
// parsed changeset file, in the order given.
func FromChangesets(packageName string, files []ChangesetFile) []Change {
	var changes []Change
	for _, cf := range files {
		level, ok := cf.Releases[packageName]
		if !ok {
			continue
		}
		ct := levelToChangeType(level)
		for _, entry := range cf.Entries() {
			changes = append(changes, Change{
				Type:        ct,
				Description: entry,
				Source:      FromChangeFile(cf.ID),
			})
		}
	}
	return changes
}
