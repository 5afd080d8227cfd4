// Package vcsutil is the Git collaborator: it turns a repository on disk
// into the plain []string tag and commit-message lists the engine
// (semver, change) consumes, grounded on the teacher's gitlog/tags.go and
// gitlog/parser.go shelling-out approach but re-backed by go-git's object
// database so no git binary is required on the host.
package vcsutil

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Tags opens the repository at repoPath and returns every tag name,
// newest-first by tag creation time — the ordering semver.FromTags's
// precondition requires (spec §9 Open Question 1).
func Tags(repoPath string) ([]string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", repoPath, err)
	}

	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	type namedTag struct {
		name string
		when int64
	}
	var tags []namedTag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		when, err := tagTime(repo, ref)
		if err != nil {
			// A lightweight tag that doesn't point at a commit (e.g. it
			// tags a tree or blob) is skipped rather than failing the whole
			// listing; annotated tags are dated by their tagger time
			// whatever they point at.
			return nil
		}
		tags = append(tags, namedTag{name: ref.Name().Short(), when: when})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking tag refs: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool { return tags[i].when > tags[j].when })

	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name
	}
	return names, nil
}

// tagTime returns the moment a tag was created: an annotated tag's own
// Tagger.When, or its target commit's Committer.When for a lightweight tag
// (which carries no tag object of its own).
func tagTime(repo *git.Repository, ref *plumbing.Reference) (int64, error) {
	tagObj, err := repo.TagObject(ref.Hash())
	switch err {
	case nil:
		return tagObj.Tagger.When.Unix(), nil
	case plumbing.ErrObjectNotFound:
		commit, err := repo.CommitObject(ref.Hash())
		if err != nil {
			return 0, err
		}
		return commit.Committer.When.Unix(), nil
	default:
		return 0, err
	}
}
