// Package testutil provides test utilities and helpers for bumplog tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SampleChangelog is a small changelog whose first version is v1.2.3.
const SampleChangelog = "# Changelog\n\n## v1.2.3 (2024-01-01)\n- Fix\n"

// FixedTime is a stable clock value for tests that do not care about the date.
var FixedTime = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// WriteChangelog writes content to CHANGELOG.md in dir and returns its path.
func WriteChangelog(t *testing.T, dir, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), content)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path, failing the test if it cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// InitGitRepo initializes a repository in dir and commits every file in it.
func InitGitRepo(t *testing.T, dir string) *git.Repository {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("initializing repository: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("opening worktree: %v", err)
	}
	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		t.Fatalf("staging files: %v", err)
	}

	_, err = worktree.Commit("Initial commit", &git.CommitOptions{
		Author:            &object.Signature{Name: "Test", Email: "test@example.com", When: FixedTime},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("committing: %v", err)
	}

	return repo
}
