package releasenotes

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/knope-dev/knope-go/semver"
)

// HeaderLevel is the Markdown heading depth a changelog's release blocks
// are written at: H1 ("#") or H2 ("##").
type HeaderLevel int

const (
	H1 HeaderLevel = 1
	H2 HeaderLevel = 2
)

func (l HeaderLevel) marker() string { return strings.Repeat("#", int(l)) }

// titleRegex recognizes "(#|##) VERSION( (YYYY-MM-DD))?" — ParseTitle
// accepts only level-1 or level-2 headings; deeper headings never parse as
// a release title.
var titleRegex = regexp.MustCompile(`^(#{1,2}) (\S+)(?: \((\d{4}-\d{2}-\d{2})\))?\s*$`)

// ParseTitle recognizes a release title line, returning its heading level
// and version. ok is false for any line that isn't a release title —
// including a correctly-shaped heading whose first token doesn't parse as
// SemVer.
func ParseTitle(line string) (level HeaderLevel, version semver.Version, ok bool) {
	m := titleRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, semver.Version{}, false
	}
	v, err := semver.Parse(m[2])
	if err != nil {
		return 0, semver.Version{}, false
	}
	level = H1
	if m[1] == "##" {
		level = H2
	}
	return level, v, true
}

// RenderBlock renders one release's title and sections at headerLevel, with
// section headings one level deeper and each entry rendered as a heading
// one level deeper still (spec §4.5, scenario 1: "## 1.1.0 (today)\n\n###
// Features\n\n#### New feature"). The returned block has no trailing
// newline; splicing adds the blank-line separator.
func RenderBlock(notes Notes, headerLevel HeaderLevel, now time.Time) string {
	var sb strings.Builder
	title := fmt.Sprintf("%s (%s)", notes.Version.String(), now.UTC().Format("2006-01-02"))
	fmt.Fprintf(&sb, "%s %s", headerLevel.marker(), title)

	sectionMarker := headerLevel.marker() + "#"
	entryMarker := sectionMarker + "#"
	for _, sec := range notes.Sections {
		fmt.Fprintf(&sb, "\n\n%s %s", sectionMarker, sec.Title)
		for _, e := range sec.Entries {
			fmt.Fprintf(&sb, "\n\n%s %s", entryMarker, e)
		}
	}
	return sb.String()
}
