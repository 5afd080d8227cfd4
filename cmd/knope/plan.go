package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/google/go-github/v84/github"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/change"
	"github.com/knope-dev/knope-go/format"
	"github.com/knope-dev/knope-go/internal/config"
	"github.com/knope-dev/knope-go/internal/executor"
	"github.com/knope-dev/knope-go/internal/vcsutil"
	"github.com/knope-dev/knope-go/pkgengine"
	"github.com/knope-dev/knope-go/releasenotes"
	"github.com/knope-dev/knope-go/semver"
	"github.com/knope-dev/knope-go/versionedfile"
)

var (
	planConfigPath  string
	planRepo        string
	planPackage     string
	planPrerelease  string
	planVersion     string
	planExecute     bool
	planGitHubRepo  string
	planGitHubToken string
	planFormat      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the next version and release-note plan for every configured package",
	Long: `Plan ingests conventional commits and changeset files since each
package's last release, derives its next version, rewrites every
versioned file, and prints the resulting action plan.

By default plan is dry-run: it prints the plan without touching the
working tree. Pass --execute to apply it (write files, remove consumed
changesets, and create any Git tags the plan contains). --github-repo
sets up the executor's GitHub client; the plan itself contains no
GitHub release actions.

Examples:
  knope plan
  knope plan --package api
  knope plan --prerelease rc
  knope plan --execute --github-repo=acme/widgets`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planConfigPath, "config", "knope.toml", "Path to the configuration file")
	planCmd.Flags().StringVar(&planRepo, "repo", ".", "Path to the Git repository")
	planCmd.Flags().StringVar(&planPackage, "package", "", "Only plan this package (default: all configured packages)")
	planCmd.Flags().StringVar(&planPrerelease, "prerelease", "", "Prerelease label (e.g. rc, beta); empty computes a stable release")
	planCmd.Flags().StringVar(&planVersion, "version", "", "Force this exact version instead of deriving one from changes")
	planCmd.Flags().BoolVar(&planExecute, "execute", false, "Apply the plan instead of only printing it")
	planCmd.Flags().StringVar(&planGitHubRepo, "github-repo", "", "owner/repo for the executor's GitHub client (requires --execute)")
	planCmd.Flags().StringVar(&planGitHubToken, "github-token", "", "GitHub token; defaults to the GITHUB_TOKEN environment variable")
	planCmd.Flags().StringVar(&planFormat, "format", "toon", "Dry-run output format: toon (default), json, json-compact")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(planConfigPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", planConfigPath, err)
	}

	tags, err := vcsutil.Tags(planRepo)
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}

	names := make([]string, 0, len(cfg.Packages))
	for name := range cfg.Packages {
		if planPackage != "" && name != planPackage {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("no matching package in %s", planConfigPath)
	}

	var allActions []action.Action
	for _, name := range names {
		pkgActions, err := planPackageActions(name, cfg.Packages[name], tags)
		if err != nil {
			return fmt.Errorf("package %q: %w", name, err)
		}
		allActions = append(allActions, pkgActions...)
	}

	if !planExecute {
		return printPlan(allActions)
	}

	opts := executor.ExecutorOptions{RepoPath: planRepo}
	if planGitHubRepo != "" {
		parts := strings.SplitN(planGitHubRepo, "/", 2)
		if len(parts) != 2 {
			return fmt.Errorf("--github-repo must be owner/repo, got %q", planGitHubRepo)
		}
		opts.Owner, opts.Repo = parts[0], parts[1]
		opts.GitHubClient = newGitHubClient(cmd.Context(), planGitHubToken)
	}
	if err := executor.Apply(cmd.Context(), allActions, opts); err != nil {
		return fmt.Errorf("applying plan: %w", err)
	}
	fmt.Printf("applied %d action(s)\n", len(allActions))
	return nil
}

func newGitHubClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// planPackageActions builds one pkgengine.Package for pkgName and returns
// the action plan its changes produce, given the tags already collected
// for the whole repository.
func planPackageActions(pkgName string, pkgCfg config.PackageConfig, tags []string) ([]action.Action, error) {
	name := pkgengine.DefaultName()
	if pkgName != "default" {
		name = pkgengine.CustomName(pkgName)
	}

	adapters := make([]versionedfile.Adapter, 0, len(pkgCfg.VersionedFiles))
	for _, vf := range pkgCfg.VersionedFiles {
		fullPath := filepath.Join(planRepo, vf.Path)
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", vf.Path, err)
		}
		var adapter versionedfile.Adapter
		if len(vf.Regexes) > 0 {
			adapter, err = versionedfile.NewRegexFile(vf.Path, string(content), vf.Regexes)
		} else {
			adapter, err = versionedfile.New(vf.Path, string(content), tags, vf.Dependency)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", vf.Path, err)
		}
		adapters = append(adapters, adapter)
	}

	var changelog *releasenotes.Changelog
	if pkgCfg.ChangelogPath != "" {
		cl, err := releasenotes.Load(filepath.Join(planRepo, pkgCfg.ChangelogPath))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", pkgCfg.ChangelogPath, err)
		}
		changelog = cl
	}

	sections := append([]releasenotes.SectionConfig{}, releasenotes.DefaultSections()...)
	for _, es := range pkgCfg.ExtraSections {
		sources := make([]change.SectionSource, 0, len(es.Sources))
		for _, s := range es.Sources {
			sources = append(sources, change.SectionSource(s))
		}
		sections = append(sections, releasenotes.SectionConfig{Title: es.Title, Sources: sources})
	}

	goMode := versionedfile.GoVersioningStandard
	if pkgCfg.IgnoreGoMajoring {
		goMode = versionedfile.GoVersioningIgnoreMajorRules
	}

	pkg, err := pkgengine.New(name, tags, adapters,
		pkgengine.ReleaseNotesConfig{Sections: sections, Changelog: changelog, Locale: pkgCfg.Locale},
		pkgCfg.Scopes, goMode)
	if err != nil {
		return nil, err
	}

	commitMessages, err := vcsutil.CommitMessagesSince(planRepo, latestTagFor(name, tags))
	if err != nil {
		return nil, fmt.Errorf("reading commits: %w", err)
	}

	changesets, err := loadChangesets(filepath.Join(planRepo, ".changeset"))
	if err != nil {
		return nil, err
	}

	changeCfg := change.Config{Scopes: pkgCfg.Scopes}
	changes := pkg.GetChanges(commitMessages, changesets, changeCfg)

	cfg := pkgengine.ChangeConfig{Kind: pkgengine.CalculateRule, PrereleaseLabel: planPrerelease, GoVersioning: goMode}
	if planVersion != "" {
		forced, err := semver.Parse(planVersion)
		if err != nil {
			return nil, fmt.Errorf("--version %q: %w", planVersion, err)
		}
		cfg = pkgengine.ChangeConfig{Kind: pkgengine.ForceVersion, ForcedVersion: forced}
	}

	actions, err := pkg.ApplyChanges(changes, cfg)
	if err != nil {
		return nil, err
	}
	return actions, nil
}

// latestTagFor returns the prefix-matching tag closest to where commit
// ingestion should stop, or "" (walk all of HEAD's history) if none exists.
func latestTagFor(name pkgengine.Name, tags []string) string {
	prefix := name.TagPrefix()
	for _, t := range tags {
		if prefix == "" || strings.HasPrefix(t, prefix) {
			return t
		}
	}
	return ""
}

// loadChangesets parses every *.md file directly under dir as a changeset.
// A missing directory is not an error: it yields no changesets.
func loadChangesets(dir string) ([]change.ChangesetFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []change.ChangesetFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		cf, err := change.ParseChangesetFile(entry.Name(), string(content))
		if err != nil {
			return nil, err
		}
		files = append(files, cf)
	}
	return files, nil
}

func printPlan(actions []action.Action) error {
	f, err := format.Parse(planFormat)
	if err != nil {
		return err
	}
	outputBytes, err := format.Marshal(actions, f)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	fmt.Println(string(outputBytes))
	return nil
}
