// Package executor is the sole place the repository performs I/O side
// effects: writing and removing files, creating Git tags, and publishing
// GitHub releases. The core packages (pkgengine, versionedfile, change,
// releasenotes) only ever produce a plan; executor is what carries it out
// (spec §4.7/§4.11).
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/go-github/v84/github"

	"github.com/knope-dev/knope-go/action"
)

// ExecutorOptions configures the collaborators Apply needs to carry out an
// AddTag or CreateRelease action. RepoPath and GitHubClient may be left
// zero when the plan being applied contains no such actions.
type ExecutorOptions struct {
	RepoPath     string // working tree AddTag operates against
	GitHubClient *github.Client
	Owner, Repo  string // GitHub coordinates CreateRelease publishes against
}

// Apply executes every action in order. A plan is applied strictly in the
// order WriteToFile, RemoveFile, AddTag, CreateRelease regardless of the
// order actions appear in within the slice, since a Git tag or GitHub
// release should only ever be created against a tree that already has its
// file writes applied (spec §4.11). Apply stops at the first failure.
func Apply(ctx context.Context, actions []action.Action, opts ExecutorOptions) error {
	var writes, removes, tags, releases []action.Action
	for _, a := range actions {
		switch a.Kind {
		case action.KindWriteToFile:
			writes = append(writes, a)
		case action.KindRemoveFile:
			removes = append(removes, a)
		case action.KindAddTag:
			tags = append(tags, a)
		case action.KindCreateRelease:
			releases = append(releases, a)
		}
	}

	for _, a := range writes {
		if err := applyWrite(a); err != nil {
			return err
		}
	}
	for _, a := range removes {
		if err := applyRemove(a); err != nil {
			return err
		}
	}
	for _, a := range tags {
		if err := applyAddTag(a, opts); err != nil {
			return err
		}
	}
	for _, a := range releases {
		if err := applyCreateRelease(ctx, a, opts); err != nil {
			return err
		}
	}
	return nil
}

func applyWrite(a action.Action) error {
	if err := os.WriteFile(a.Path, []byte(a.Content), 0o644); err != nil {
		return &ErrAction{Kind: "WriteToFile", Path: a.Path, Err: err}
	}
	return nil
}

func applyRemove(a action.Action) error {
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &ErrAction{Kind: "RemoveFile", Path: a.Path, Err: err}
	}
	return nil
}

func applyAddTag(a action.Action, opts ExecutorOptions) error {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return &ErrAction{Kind: "AddTag", Path: a.Tag, Err: err}
	}
	head, err := repo.Head()
	if err != nil {
		return &ErrAction{Kind: "AddTag", Path: a.Tag, Err: err}
	}
	sig := &object.Signature{Name: "knope", Email: "knope@localhost"}
	if _, err := repo.CreateTag(a.Tag, head.Hash(), &git.CreateTagOptions{Tagger: sig, Message: a.Tag}); err != nil {
		return &ErrAction{Kind: "AddTag", Path: a.Tag, Err: err}
	}
	return nil
}

func applyCreateRelease(ctx context.Context, a action.Action, opts ExecutorOptions) error {
	if opts.GitHubClient == nil {
		return &ErrAction{Kind: "CreateRelease", Path: a.Release.Tag, Err: fmt.Errorf("no GitHub client configured")}
	}
	release := &github.RepositoryRelease{
		TagName:    github.Ptr(a.Release.Tag),
		Name:       github.Ptr(a.Release.Name),
		Body:       github.Ptr(a.Release.Notes),
		Prerelease: github.Ptr(a.Release.Prerelease),
		Draft:      github.Ptr(a.Release.Draft),
	}
	_, _, err := opts.GitHubClient.Repositories.CreateRelease(ctx, opts.Owner, opts.Repo, release)
	if err != nil {
		return &ErrAction{Kind: "CreateRelease", Path: a.Release.Tag, Err: err}
	}
	return nil
}
