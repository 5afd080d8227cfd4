package versionedfile

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// GleamToml is the gleam.toml adapter (spec §4.2 "pubspec.yaml / gleam.toml"):
// a top-level `version` key, edited with the same byte-oriented model as
// Cargo.toml.
type GleamToml struct {
	path             string
	content          string
	valStart, valEnd int
	version          semver.Version
}

type gleamManifest struct {
	Version string `toml:"version"`
}

func NewGleamToml(filePath, content string) (*GleamToml, error) {
	var manifest gleamManifest
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: err}
	}
	if manifest.Version == "" {
		return nil, &ErrMissingProperty{Path: filePath, Property: "version"}
	}

	valStart, valEnd, ok := quotedKeyValueSpan(content, 0, len(content), "version")
	if !ok {
		return nil, &ErrMissingProperty{Path: filePath, Property: "version"}
	}

	v, err := semver.Parse(manifest.Version)
	if err != nil {
		return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("version %q: %w", manifest.Version, err)}
	}

	return &GleamToml{path: filePath, content: content, valStart: valStart, valEnd: valEnd, version: v}, nil
}

func (g *GleamToml) Path() string            { return g.path }
func (g *GleamToml) Version() semver.Version { return g.version }

func (g *GleamToml) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	literal := newVersion.String()
	g.content = g.content[:g.valStart] + literal + g.content[g.valEnd:]
	g.valEnd = g.valStart + len(literal)
	g.version = newVersion
	return []action.Action{action.WriteToFile(g.path, g.content, literal)}, nil
}
