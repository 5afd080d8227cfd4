// Package config loads knope.toml, the per-repo description of which
// packages exist, which files track their version, and how their release
// notes are organized (spec §4.9).
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the parsed contents of knope.toml: one PackageConfig per
// package name, keyed the same way pkgengine.Name.String() renders a
// package identity ("default" for a single, unnamed package).
type Config struct {
	Packages map[string]PackageConfig `toml:"packages"`
}

// PackageConfig is one package's configuration: its versioned files, where
// its changelog lives, which commit scopes it accepts, any extra release
// note sections beyond the built-in ones, and whether it opts out of Go's
// major-version-directory convention.
type PackageConfig struct {
	VersionedFiles   []VersionedFileConfig `toml:"versioned_files"`
	ChangelogPath    string                `toml:"changelog_path"`
	Scopes           []string              `toml:"scopes"`
	ExtraSections    []SectionConfig       `toml:"extra_sections"`
	IgnoreGoMajoring bool                  `toml:"ignore_go_majoring"`
	// Locale selects the translation of built-in release-note section
	// titles (e.g. "fr"); empty means English.
	Locale string `toml:"locale"`
}

// VersionedFileConfig names one file versionedfile.New should adapt.
// Dependency and Regexes are only meaningful for the adapters that use
// them (lockfile/manifest dependency entries, and the regex adapter).
type VersionedFileConfig struct {
	Path       string   `toml:"path"`
	Dependency string   `toml:"dependency"`
	Regexes    []string `toml:"regexes"`
}

// SectionConfig is one user-defined release-notes section: a title and the
// footer tokens or custom change-type names that bucket into it.
type SectionConfig struct {
	Title   string   `toml:"title"`
	Sources []string `toml:"sources"`
}

// Load reads and parses knope.toml at path. A missing file returns
// ErrConfigNotFound; a malformed file returns the go-toml/v2 decode error
// wrapped with the path (reachable via errors.As), so callers can tell the
// two failure modes apart. Unknown keys
// in the file are ignored, matching the teacher's forward-compatible JSON
// IR tolerance (changelog.Parse never rejects unrecognized fields either).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
