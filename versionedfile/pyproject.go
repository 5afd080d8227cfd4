package versionedfile

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// PyProjectToml is the pyproject.toml adapter (spec §4.2 "pyproject.toml"):
// version may be declared under `tool.poetry.version`, `project.version`,
// or both (in which case they must agree). Every present location is
// rewritten on SetVersion.
type PyProjectToml struct {
	path    string
	content string

	spans   [][2]int // byte span of every quoted version literal found
	version semver.Version
}

type pyProjectManifest struct {
	Project struct {
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func NewPyProjectToml(filePath, content string) (*PyProjectToml, error) {
	var manifest pyProjectManifest
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: err}
	}

	projectVer := manifest.Project.Version
	poetryVer := manifest.Tool.Poetry.Version

	if projectVer == "" && poetryVer == "" {
		return nil, &ErrMissingProperty{Path: filePath, Property: "project.version or tool.poetry.version"}
	}
	if projectVer != "" && poetryVer != "" && projectVer != poetryVer {
		return nil, &ErrInconsistentVersions{
			Path: filePath, PropertyA: "project.version", VerA: projectVer,
			PropertyB: "tool.poetry.version", VerB: poetryVer,
		}
	}

	literal := projectVer
	if literal == "" {
		literal = poetryVer
	}
	v, err := semver.Parse(literal)
	if err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("version %q: %w", literal, err)}
	}

	var spans [][2]int
	if projectVer != "" {
		if start, end, ok := tableSpan(content, "project"); ok {
			if vs, ve, ok := quotedKeyValueSpan(content, start, end, "version"); ok {
				spans = append(spans, [2]int{vs, ve})
			}
		}
	}
	if poetryVer != "" {
		if start, end, ok := tableSpan(content, "tool.poetry"); ok {
			if vs, ve, ok := quotedKeyValueSpan(content, start, end, "version"); ok {
				spans = append(spans, [2]int{vs, ve})
			}
		}
	}
	if len(spans) == 0 {
		return nil, &ErrMissingProperty{Path: filePath, Property: "version"}
	}
	if len(spans) == 2 && spans[1][0] < spans[0][0] {
		spans[0], spans[1] = spans[1], spans[0]
	}

	return &PyProjectToml{path: filePath, content: content, spans: spans, version: v}, nil
}

func (p *PyProjectToml) Path() string            { return p.path }
func (p *PyProjectToml) Version() semver.Version { return p.version }

func (p *PyProjectToml) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	literal := newVersion.String()
	var b []byte
	cursor := 0
	for _, span := range p.spans {
		b = append(b, p.content[cursor:span[0]]...)
		b = append(b, literal...)
		cursor = span[1]
	}
	b = append(b, p.content[cursor:]...)
	p.content = string(b)
	p.version = newVersion
	return []action.Action{action.WriteToFile(p.path, p.content, literal)}, nil
}
