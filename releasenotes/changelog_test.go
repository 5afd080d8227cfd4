package releasenotes

import (
	"strings"
	"testing"

	"github.com/knope-dev/knope-go/semver"
)

func TestParseInfersHeaderLevel(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    HeaderLevel
	}{
		{"h2 release after title", "# Changelog\n\n## 1.0.0\n", H2},
		{"h1 release after title", "# Changelog\n\n# 1.0.0\n", H1},
		{"no release yet defaults h2", "# Changelog\n\nNothing released.\n", H2},
		{"empty defaults h2", "", H2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := Parse("CHANGELOG.md", tt.content)
			if cl.HeaderLevel != tt.want {
				t.Errorf("HeaderLevel = %v, want %v", cl.HeaderLevel, tt.want)
			}
		})
	}
}

func TestWithReleaseOnEmptyChangelog(t *testing.T) {
	cl := &Changelog{HeaderLevel: H2}
	notes := Notes{
		Version:  semver.MustParse("1.1.0"),
		Sections: []Section{{Title: "Features", Entries: []string{"New feature"}}},
	}
	block := RenderBlock(notes, H2, fixedNow)

	newContent, diff := cl.WithRelease(notes, fixedNow)
	if diff != "" {
		t.Errorf("diff = %q, want empty (was empty before)", diff)
	}
	want := block + "\n"
	if newContent != want {
		t.Errorf("newContent =\n%q\nwant\n%q", newContent, want)
	}
	if cl.Content != newContent {
		t.Error("WithRelease did not rewrite cl.Content in place")
	}
}

func TestWithReleaseInsertsBeforeExistingRelease(t *testing.T) {
	old := "# Changelog\n\n## 1.0.0 (2024-01-01)\n\n### Features\n\n#### old feature\n"
	cl := Parse("CHANGELOG.md", old)

	notes := Notes{
		Version:  semver.MustParse("1.1.0"),
		Sections: []Section{{Title: "Features", Entries: []string{"New feature"}}},
	}
	block := RenderBlock(notes, cl.HeaderLevel, fixedNow)

	newContent, diff := cl.WithRelease(notes, fixedNow)
	if diff != old {
		t.Errorf("diff = %q, want original content %q", diff, old)
	}

	want := "# Changelog\n\n" + block + "\n\n## 1.0.0 (2024-01-01)\n\n### Features\n\n#### old feature\n"
	if newContent != want {
		t.Errorf("newContent =\n%q\nwant\n%q", newContent, want)
	}
	if !strings.HasSuffix(newContent, "\n") {
		t.Error("trailing newline not preserved")
	}
}

func TestGetReleaseNormalizesToH1(t *testing.T) {
	content := "# Changelog\n\n" +
		"## 1.1.0 (2024-01-15)\n\n### Features\n\n#### new feature\n\n" +
		"## 1.0.0 (2024-01-01)\n\n### Features\n\n#### old feature\n"
	cl := Parse("CHANGELOG.md", content)
	if cl.HeaderLevel != H2 {
		t.Fatalf("HeaderLevel = %v, want H2", cl.HeaderLevel)
	}

	notes, ok := cl.GetRelease(semver.MustParse("1.1.0"))
	if !ok {
		t.Fatal("expected release 1.1.0 to be found")
	}
	want := "## Features\n\n### new feature"
	if notes != want {
		t.Errorf("GetRelease notes = %q, want %q", notes, want)
	}
}

func TestGetReleaseMissingVersion(t *testing.T) {
	cl := Parse("CHANGELOG.md", "# Changelog\n\n## 1.0.0 (2024-01-01)\n\n### Features\n\n#### a\n")
	if _, ok := cl.GetRelease(semver.MustParse("9.9.9")); ok {
		t.Error("expected ok=false for a version never released")
	}
}
