// Package pkgengine implements C6, the package engine: the unit that owns
// one package's tracked version, its versioned files, and its release
// notes, and turns a set of ingested changes into the ordered action plan
// an external collaborator executes.
package pkgengine

import (
	"time"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/change"
	"github.com/knope-dev/knope-go/releasenotes"
	"github.com/knope-dev/knope-go/semver"
	"github.com/knope-dev/knope-go/versionedfile"
)

// Name is a package's identity: either the repo-wide default package or a
// custom name (used as both the changeset-matching key and, for
// multi-package repos, the Git tag prefix).
type Name struct {
	Custom string
}

// DefaultName is the repo-wide package a single-package run uses.
func DefaultName() Name { return Name{} }

// CustomName builds a named package identity for a multi-package run.
func CustomName(name string) Name { return Name{Custom: name} }

// String renders the package name for logging/diagnostics.
func (n Name) String() string {
	if n.Custom == "" {
		return "default"
	}
	return n.Custom
}

// TagPrefix is the prefix PackageVersions.FromTags filters tags by: empty
// for the default package (bare v1.2.3 tags), else the custom name.
func (n Name) TagPrefix() string { return n.Custom }

// ReleaseNotesConfig is a package's C5 configuration: the sections changes
// bucket into and, optionally, the changelog they're spliced into.
type ReleaseNotesConfig struct {
	Sections  []releasenotes.SectionConfig
	Changelog *releasenotes.Changelog // nil: no changelog file is maintained
	// Locale selects the translation of built-in section titles
	// (Breaking changes/Features/Fixes/Notes); "" means "en". Custom
	// section titles are never translated.
	Locale string
}

// Package is one package's full state for a single run: its tracked
// version, its versioned files (drained on the first ApplyChanges call),
// and its release-notes configuration (spec §3 "Package").
type Package struct {
	name             Name
	Versions         *semver.PackageVersions
	versionedFiles   []versionedfile.Adapter // nil once ApplyChanges has run
	ReleaseNotes     ReleaseNotesConfig
	Scopes           []string
	GoVersioningMode versionedfile.GoVersioningMode
}

// New builds a Package from its versioned files and the repo's Git tags.
// At least one versioned file is required; all must agree on their
// current version. The package's tracked version is seeded from tags
// (newest-first per name.TagPrefix()) and then folded with the files'
// declared version, so a file-declared stable greater than the tag-derived
// one replaces it, while in-flight tag pre-releases still surface
// via Versions.Latest() (spec §4.6).
func New(
	name Name,
	gitTags []string,
	versionedFiles []versionedfile.Adapter,
	releaseNotes ReleaseNotesConfig,
	scopes []string,
	goVersioningMode versionedfile.GoVersioningMode,
) (*Package, error) {
	if len(versionedFiles) == 0 {
		return nil, ErrNoPackages
	}

	first := versionedFiles[0]
	for _, f := range versionedFiles[1:] {
		if f.Version().Compare(first.Version()) != 0 {
			return nil, &ErrInconsistentVersions{
				PathA: first.Path(), VerA: first.Version().String(),
				PathB: f.Path(), VerB: f.Version().String(),
			}
		}
	}

	versions := semver.FromTags(name.TagPrefix(), gitTags)
	versions.UpdateVersion(first.Version())

	return &Package{
		name: name, Versions: versions, versionedFiles: versionedFiles,
		ReleaseNotes: releaseNotes, Scopes: scopes, GoVersioningMode: goVersioningMode,
	}, nil
}

// Name returns the package's identity.
func (p *Package) Name() Name { return p.name }

// GetChanges runs C4 over commitMessages and changesets for this package,
// commit-derived changes first (spec §4.6 get_changes).
func (p *Package) GetChanges(commitMessages []string, changesets []change.ChangesetFile, cfg change.Config) []change.Change {
	return change.Ingest(commitMessages, changesets, p.name.String(), cfg)
}

// ChangeConfigKind distinguishes the two ways a bump can be driven.
type ChangeConfigKind int

const (
	// ForceVersion bumps directly to an explicitly supplied version.
	ForceVersion ChangeConfigKind = iota
	// CalculateRule derives the bump rule from the maximum change type
	// among the changes being applied.
	CalculateRule
)

// ChangeConfig selects how ApplyChanges computes the next version (spec
// §4.6 ChangeConfig).
type ChangeConfig struct {
	Kind ChangeConfigKind

	// ForceVersion
	ForcedVersion semver.Version

	// CalculateRule
	PrereleaseLabel string                        // "" for a stable bump
	GoVersioning    versionedfile.GoVersioningMode

	// Now is the renderer's injected "now" for the release title's date
	// (spec §9: "the renderer's now must be supplied explicitly"). The
	// zero value means "use the real current time"; tests should always
	// set this explicitly for reproducibility.
	Now time.Time
}

// ApplyChanges computes the package's next version from changes per cfg,
// rewrites every versioned file, renders and splices the release notes
// into the configured changelog (C5, if one is configured), and returns
// the ordered action plan: every file write (versioned files, then the
// changelog), then changeset removals (in ingestion order), then every
// AddTag (spec §4.7). Calling ApplyChanges twice on the same Package
// returns ErrPackageAlreadyBumped.
func (p *Package) ApplyChanges(changes []change.Change, cfg ChangeConfig) ([]action.Action, error) {
	if p.versionedFiles == nil {
		return nil, ErrPackageAlreadyBumped
	}

	var newVersion semver.Version
	var goMode versionedfile.GoVersioningMode

	switch cfg.Kind {
	case ForceVersion:
		// A forced version must be able to rewrite a go.mod's major suffix
		// unconditionally, since the caller is asserting the version
		// explicitly rather than letting the engine derive it.
		newVersion = p.Versions.SetManual(cfg.ForcedVersion)
		goMode = versionedfile.GoVersioningBumpMajor

	case CalculateRule:
		stableRule, ok := change.MaxRule(changes)
		if !ok {
			stableRule = semver.RulePatch
		}
		rule := stableRule.Rule()
		if cfg.PrereleaseLabel != "" {
			rule = semver.Pre(cfg.PrereleaseLabel, stableRule)
		}
		v, err := p.Versions.Bump(rule)
		if err != nil {
			return nil, err
		}
		newVersion = v
		goMode = cfg.GoVersioning
	}

	files := p.versionedFiles
	p.versionedFiles = nil

	var writes, tags []action.Action
	for _, f := range files {
		fileActions, err := f.SetVersion(newVersion, goMode)
		if err != nil {
			return nil, &ErrSetVersion{Path: f.Path(), Err: err}
		}
		for _, a := range fileActions {
			if a.Kind == action.KindAddTag {
				tags = append(tags, a)
			} else {
				writes = append(writes, a)
			}
		}
	}

	if len(p.ReleaseNotes.Sections) > 0 {
		sections := releasenotes.LocalizeSections(p.ReleaseNotes.Sections, p.ReleaseNotes.Locale)
		notes := releasenotes.BuildReleaseNotes(newVersion, changes, sections)
		if cl := p.ReleaseNotes.Changelog; cl != nil && len(notes.Sections) > 0 {
			now := cfg.Now
			if now.IsZero() {
				now = time.Now()
			}
			newContent, diff := cl.WithRelease(notes, now)
			writes = append(writes, action.WriteToFile(cl.Path, newContent, diff))
		}
	}

	var removals []action.Action
	if newVersion.IsStable() {
		for _, c := range changes {
			if c.Source.Kind == change.OriginChangeFile {
				removals = append(removals, action.RemoveFile(".changeset/"+c.Source.ChangeFileID))
			}
		}
	}

	actions := make([]action.Action, 0, len(writes)+len(removals)+len(tags))
	actions = append(actions, writes...)
	actions = append(actions, removals...)
	actions = append(actions, tags...)
	return actions, nil
}
