package versionedfile

import (
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/knope-dev/knope-go/semver"
)

const samplePom = `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <artifactId>widget</artifactId>
  <version>1.0.0</version>
</project>
`

func TestNewMavenPomParsesVersion(t *testing.T) {
	m, err := NewMavenPom("pom.xml", samplePom)
	if err != nil {
		t.Fatalf("NewMavenPom: %v", err)
	}
	if got, want := m.Version().String(), "1.0.0"; got != want {
		t.Errorf("Version() = %q, want %q", got, want)
	}
}

func TestMavenPomSetVersionRewritesElement(t *testing.T) {
	m, err := NewMavenPom("pom.xml", samplePom)
	if err != nil {
		t.Fatalf("NewMavenPom: %v", err)
	}
	actions, err := m.SetVersion(semver.MustParse("1.1.0"), GoVersioningStandard)
	if err != nil {
		t.Fatalf("SetVersion: %v", err)
	}
	if !strings.Contains(actions[0].Content, "<version>1.1.0</version>") {
		t.Errorf("content = %q, want the version element rewritten", actions[0].Content)
	}
	if !strings.Contains(actions[0].Content, "<artifactId>widget</artifactId>") {
		t.Errorf("content = %q, want artifactId preserved", actions[0].Content)
	}
}

func TestNewMavenPomMissingVersion(t *testing.T) {
	content := "<project>\n  <artifactId>widget</artifactId>\n</project>\n"
	_, err := NewMavenPom("pom.xml", content)
	if _, ok := err.(*ErrMissingProperty); !ok {
		t.Fatalf("err = %v, want *ErrMissingProperty", err)
	}
}

func TestInsertMavenPomVersionAfterArtifactID(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<project>\n  <artifactId>widget</artifactId>\n  <packaging>jar</packaging>\n</project>\n"); err != nil {
		t.Fatalf("ReadFromString: %v", err)
	}
	project := doc.SelectElement("project")
	InsertMavenPomVersion(project, "1.0.0")

	children := project.ChildElements()
	var tags []string
	for _, c := range children {
		tags = append(tags, c.Tag)
	}
	want := []string{"artifactId", "version", "packaging"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}
