package versionedfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// PubspecYaml is the pubspec.yaml adapter (spec §4.2 "pubspec.yaml /
// gleam.toml"). It decodes into a yaml.Node tree rather than a plain
// struct so that re-encoding keeps comments and key order. SetVersion
// re-encodes the whole document, so indentation and other layout outside
// the version value can change, unlike the byte-oriented edits of the
// TOML/JSON adapters.
type PubspecYaml struct {
	path    string
	root    yaml.Node
	verNode *yaml.Node
	version semver.Version
}

func NewPubspecYaml(filePath, content string) (*PubspecYaml, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: err}
	}
	if len(root.Content) == 0 {
		return nil, &ErrMissingProperty{Path: filePath, Property: "version"}
	}

	doc := root.Content[0]
	verNode := findMappingValue(doc, "version")
	if verNode == nil {
		return nil, &ErrMissingProperty{Path: filePath, Property: "version"}
	}

	v, err := semver.Parse(verNode.Value)
	if err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("version %q: %w", verNode.Value, err)}
	}

	return &PubspecYaml{path: filePath, root: root, verNode: verNode, version: v}, nil
}

// findMappingValue returns the value node for key in a !!map node, or nil.
func findMappingValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func (p *PubspecYaml) Path() string            { return p.path }
func (p *PubspecYaml) Version() semver.Version { return p.version }

func (p *PubspecYaml) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	p.verNode.Value = newVersion.String()
	p.version = newVersion

	out, err := yaml.Marshal(&p.root)
	if err != nil {
		return nil, &ErrStructuralParse{Path: p.path, Err: err}
	}
	return []action.Action{action.WriteToFile(p.path, string(out), newVersion.String())}, nil
}
