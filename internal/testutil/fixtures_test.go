package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteChangelog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := WriteChangelog(t, dir, SampleChangelog)

	assert.Equal(t, filepath.Join(dir, "CHANGELOG.md"), path)
	assert.Equal(t, SampleChangelog, ReadFile(t, path))
}

func TestWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs", "nested", "CHANGELOG.md")
	WriteFile(t, path, "x")

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "x", ReadFile(t, path))
}

func TestFixedClock(t *testing.T) {
	t.Parallel()

	at := time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC)
	clock := FixedClock(at)
	assert.Equal(t, at, clock())
	assert.Equal(t, at, clock())
}

func TestInitGitRepo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	WriteChangelog(t, dir, SampleChangelog)

	repo := InitGitRepo(t, dir)
	head, err := repo.Head()
	require.NoError(t, err)

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Initial commit", commit.Message)

	_, err = commit.File("CHANGELOG.md")
	assert.NoError(t, err)
}

func TestE2EEnv_IsolatedEnv(t *testing.T) {
	t.Setenv("BUMPLOG_HEADING", "# Leaked")

	env := &E2EEnv{t: t, tempDir: t.TempDir(), extra: map[string]string{}}
	assert.False(t, env.HasLeakedEnv())

	env.SetEnv("BUMPLOG_ENTRY_MESSAGE", "from test")
	assert.False(t, env.HasLeakedEnv())
	assert.Contains(t, env.buildIsolatedEnv(), "BUMPLOG_ENTRY_MESSAGE=from test")
	assert.Contains(t, env.buildIsolatedEnv(), "HOME="+env.TempDir())
	assert.Contains(t, env.ChangelogPath(), env.TempDir())
}
