package vcsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func commitFile(t *testing.T, repo *git.Repository, dir, name, message string) *object.Commit {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(message), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Unix(0, 0)}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	commit, err := repo.CommitObject(hash)
	if err != nil {
		t.Fatalf("CommitObject: %v", err)
	}
	return commit
}

func TestCommitMessagesSinceStopsAtRef(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	first := commitFile(t, repo, dir, "a.txt", "feat: first")
	commitFile(t, repo, dir, "b.txt", "fix: second")
	commitFile(t, repo, dir, "c.txt", "feat: third\n\nBREAKING CHANGE: redo everything")

	messages, err := CommitMessagesSince(dir, first.Hash.String())
	if err != nil {
		t.Fatalf("CommitMessagesSince: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %v, want 2 entries", messages)
	}
	if messages[0] != "feat: third\n\nBREAKING CHANGE: redo everything" {
		t.Fatalf("messages[0] = %q, unexpected", messages[0])
	}
	if messages[1] != "fix: second" {
		t.Fatalf("messages[1] = %q, unexpected", messages[1])
	}
}

func TestCommitMessagesSinceEmptyRefWalksAll(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	commitFile(t, repo, dir, "a.txt", "feat: first")
	commitFile(t, repo, dir, "b.txt", "fix: second")

	messages, err := CommitMessagesSince(dir, "")
	if err != nil {
		t.Fatalf("CommitMessagesSince: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %v, want 2 entries", messages)
	}
}

func TestCommitMessagesSinceUnknownRef(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	commitFile(t, repo, dir, "a.txt", "feat: first")

	if _, err := CommitMessagesSince(dir, "deadbeef"); err == nil {
		t.Fatal("CommitMessagesSince: want error for an unresolvable ref")
	}
}
