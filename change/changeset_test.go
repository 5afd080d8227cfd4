package change

import "testing"

func TestParseChangesetFile(t *testing.T) {
	content := "---\n" +
		"\"widget\": minor\n" +
		"\"gadget\": patch\n" +
		"---\n\n" +
		"Added a new configuration option.\n\n" +
		"Fixed a crash on startup."

	cf, err := ParseChangesetFile("funny-lions-dance.md", content)
	if err != nil {
		t.Fatalf("ParseChangesetFile: %v", err)
	}
	if cf.ID != "funny-lions-dance.md" {
		t.Errorf("ID = %q, want %q", cf.ID, "funny-lions-dance.md")
	}
	if got, want := cf.Releases["widget"], "minor"; got != want {
		t.Errorf("Releases[widget] = %q, want %q", got, want)
	}
	if got, want := cf.Releases["gadget"], "patch"; got != want {
		t.Errorf("Releases[gadget] = %q, want %q", got, want)
	}
	entries := cf.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}
	if entries[0] != "Added a new configuration option." {
		t.Errorf("entries[0] = %q", entries[0])
	}
}

func TestParseChangesetFileMissingFrontMatter(t *testing.T) {
	if _, err := ParseChangesetFile("bad.md", "no front matter here"); err == nil {
		t.Fatal("expected an error for missing front matter")
	}
}

func TestFromChangesetsOnlyMatchingPackage(t *testing.T) {
	files := []ChangesetFile{
		{ID: "a.md", Releases: map[string]string{"widget": "minor"}, Summary: "Add feature."},
		{ID: "b.md", Releases: map[string]string{"gadget": "patch"}, Summary: "Fix bug."},
	}
	changes := FromChangesets("widget", files)
	if len(changes) != 1 {
		t.Fatalf("len(changes) = %d, want 1", len(changes))
	}
	if changes[0].Type.Kind != KindFeature {
		t.Errorf("Type.Kind = %v, want KindFeature", changes[0].Type.Kind)
	}
	if changes[0].Source.Kind != OriginChangeFile || changes[0].Source.ChangeFileID != "a.md" {
		t.Errorf("Source = %+v, want OriginChangeFile a.md", changes[0].Source)
	}
}

func TestFromChangesetsCustomLevel(t *testing.T) {
	files := []ChangesetFile{
		{ID: "a.md", Releases: map[string]string{"widget": "notes"}, Summary: "Deprecated old flag."},
	}
	changes := FromChangesets("widget", files)
	if len(changes) != 1 || changes[0].Type.Kind != KindCustom || changes[0].Type.Custom != "notes" {
		t.Errorf("changes = %+v, want one Custom(notes) change", changes)
	}
}

func TestRemovePath(t *testing.T) {
	cf := ChangesetFile{ID: "funny-lions-dance.md"}
	if got, want := cf.RemovePath(), ".changeset/funny-lions-dance.md"; got != want {
		t.Errorf("RemovePath() = %q, want %q", got, want)
	}
}
