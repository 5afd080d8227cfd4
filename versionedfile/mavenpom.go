package versionedfile

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// MavenPom is the pom.xml adapter (spec §4.2 "pom.xml"). It DOM-parses
// with etree; re-serialization re-indents the whole document, so
// formatting preservation is best-effort only (spec §9 Open Question 2).
type MavenPom struct {
	path    string
	doc     *etree.Document
	project *etree.Element
	verElem *etree.Element
	version semver.Version
}

func NewMavenPom(filePath, content string) (*MavenPom, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: err}
	}

	project := doc.SelectElement("project")
	if project == nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("root element is not <project>")}
	}

	verElem := project.SelectElement("version")
	if verElem == nil {
		return nil, &ErrMissingProperty{Path: filePath, Property: "project/version"}
	}

	v, err := semver.Parse(verElem.Text())
	if err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("project/version %q: %w", verElem.Text(), err)}
	}

	return &MavenPom{path: filePath, doc: doc, project: project, verElem: verElem, version: v}, nil
}

func (m *MavenPom) Path() string            { return m.path }
func (m *MavenPom) Version() semver.Version { return m.version }

func (m *MavenPom) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	m.verElem.SetText(newVersion.String())
	m.version = newVersion

	m.doc.Indent(2)
	out, err := m.doc.WriteToString()
	if err != nil {
		return nil, &ErrStructuralParse{Path: m.path, Err: err}
	}
	return []action.Action{action.WriteToFile(m.path, out, newVersion.String())}, nil
}

// InsertMavenPomVersion adds a project/version element after artifactId
// (or at the end of project when there is no artifactId) and returns it.
// No adapter calls it: NewMavenPom reports a pom.xml without
// project/version as ErrMissingProperty rather than creating the element.
func InsertMavenPomVersion(project *etree.Element, version string) *etree.Element {
	verElem := etree.NewElement("version")
	verElem.SetText(version)

	artifactID := project.SelectElement("artifactId")
	if artifactID == nil {
		project.AddChild(verElem)
		return verElem
	}

	children := project.Child
	for i, tok := range children {
		if tok == artifactID && i+1 < len(children) {
			project.InsertChild(children[i+1], verElem)
			return verElem
		}
	}
	project.AddChild(verElem)
	return verElem
}
