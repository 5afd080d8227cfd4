package vcsutil

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ErrRefNotFound is returned by CommitMessagesSince when ref doesn't
// resolve to a commit in repoPath.
var ErrRefNotFound = errors.New("ref not found")

// CommitMessagesSince returns every commit message (subject and body, full
// text — change.FromCommits needs the whole message to find footers) on
// HEAD back to but excluding ref, newest-first. An empty ref walks the
// full history reachable from HEAD.
func CommitMessagesSince(repoPath, ref string) ([]string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", repoPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	var stopAt plumbing.Hash
	if ref != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrRefNotFound, ref)
		}
		stopAt = *hash
	}

	commitIter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walking commit log: %w", err)
	}

	var messages []string
	err = commitIter.ForEach(func(c *object.Commit) error {
		if ref != "" && c.Hash == stopAt {
			return storer.ErrStop
		}
		messages = append(messages, c.Message)
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	return messages, nil
}
