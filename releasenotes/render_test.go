package releasenotes

import (
	"testing"
	"time"

	"github.com/knope-dev/knope-go/semver"
)

var fixedNow = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// Scenario 1 (spec §8): feat after release renders
// "## 1.1.0 (today)\n\n### Features\n\n#### New feature".
func TestRenderBlockMatchesScenario1(t *testing.T) {
	notes := Notes{
		Version: semver.MustParse("1.1.0"),
		Sections: []Section{
			{Title: "Features", Entries: []string{"New feature"}},
		},
	}
	got := RenderBlock(notes, H2, fixedNow)
	want := "## 1.1.0 (2024-01-15)\n\n### Features\n\n#### New feature"
	if got != want {
		t.Errorf("RenderBlock =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderBlockMultipleEntriesAndSections(t *testing.T) {
	notes := Notes{
		Version: semver.MustParse("2.0.0"),
		Sections: []Section{
			{Title: "Breaking changes", Entries: []string{"drop bar"}},
			{Title: "Fixes", Entries: []string{"fix a", "fix b"}},
		},
	}
	got := RenderBlock(notes, H1, fixedNow)
	want := "# 2.0.0 (2024-01-15)\n\n## Breaking changes\n\n### drop bar\n\n## Fixes\n\n### fix a\n\n### fix b"
	if got != want {
		t.Errorf("RenderBlock =\n%q\nwant\n%q", got, want)
	}
}

func TestParseTitle(t *testing.T) {
	tests := []struct {
		line    string
		wantOK  bool
		wantLvl HeaderLevel
		wantVer string
	}{
		{"## 1.1.0 (2024-01-15)", true, H2, "1.1.0"},
		{"# 1.1.0", true, H1, "1.1.0"},
		{"### 1.1.0", false, 0, ""},
		{"## not a version", false, 0, ""},
		{"some prose", false, 0, ""},
	}
	for _, tt := range tests {
		lvl, v, ok := ParseTitle(tt.line)
		if ok != tt.wantOK {
			t.Errorf("ParseTitle(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if lvl != tt.wantLvl {
			t.Errorf("ParseTitle(%q) level = %v, want %v", tt.line, lvl, tt.wantLvl)
		}
		if v.String() != tt.wantVer {
			t.Errorf("ParseTitle(%q) version = %q, want %q", tt.line, v.String(), tt.wantVer)
		}
	}
}
