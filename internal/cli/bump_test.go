// Package cli tests the bump flow end to end through the command tree.
// Related: internal/cli/bump.go, internal/cli/root.go
// Tags: cli, bump, changelog, exit-codes

package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/bumplog/internal/git"
	"github.com/ariel-frischer/bumplog/internal/testutil"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes a fresh command tree pinned to testutil.FixedTime.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(testutil.FixedClock(testutil.FixedTime))
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	code = exitCode(cmd.Execute(), &errOut)
	return out.String(), errOut.String(), code
}

const bumpedSample = "# Changelog\n\n## v1.2.4 (2024-01-15)\n- Minor update, auto-version bump for release\n\n## v1.2.3 (2024-01-01)\n- Fix\n"

func TestBump_Example(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"root command": nil,
		"bump command": {"bump"},
		"in place":     {"bump", "--in-place"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := testutil.WriteChangelog(t, t.TempDir(), testutil.SampleChangelog)

			stdout, stderr, code := runCLI(t, append(args, "--changelog", path)...)

			assert.Equal(t, ExitSuccess, code)
			assert.Equal(t, "Bumped version to v1.2.4\n", stdout)
			assert.Empty(t, stderr)
			assert.Equal(t, bumpedSample, testutil.ReadFile(t, path))
		})
	}
}

func TestBump_DefaultChangelogPath(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteChangelog(t, dir, testutil.SampleChangelog)
	t.Chdir(dir)

	stdout, _, code := runCLI(t)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Bumped version to v1.2.4\n", stdout)
	assert.Equal(t, bumpedSample, testutil.ReadFile(t, filepath.Join(dir, "CHANGELOG.md")))
}

func TestBump_Failures(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content    string
		noFile     bool
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		"no version": {
			content:    "# Changelog\n\nNothing released yet.\n",
			wantCode:   ExitNoVersion,
			wantStdout: "No version found in changelog!\n",
		},
		"empty file": {
			content:    "",
			wantCode:   ExitNoVersion,
			wantStdout: "No version found in changelog!\n",
		},
		"missing file": {
			noFile:     true,
			wantCode:   ExitFileAccess,
			wantStderr: "changelog is not accessible",
		},
		"strict heading": {
			content:    "## v1.0.0 (2024-01-01)\n",
			args:       []string{"--strict-heading"},
			wantCode:   ExitHeadingNotFound,
			wantStderr: `"# Changelog"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "CHANGELOG.md")
			if !tt.noFile {
				testutil.WriteChangelog(t, dir, tt.content)
			}

			stdout, stderr, code := runCLI(t, append([]string{"bump", "--changelog", path}, tt.args...)...)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.Equal(t, tt.wantStdout, stdout)
			} else {
				assert.Empty(t, stdout)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
			if !tt.noFile {
				assert.Equal(t, tt.content, testutil.ReadFile(t, path), "file must be left untouched")
			}
		})
	}
}

func TestBump_UnboundedPatch(t *testing.T) {
	t.Parallel()

	path := testutil.WriteChangelog(t, t.TempDir(), "# Changelog\n\n## v1.2.99999999999999999999999\n")

	stdout, stderr, code := runCLI(t, "--changelog", path)

	assert.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "Bumped version to v1.2.100000000000000000000000\n", stdout)
	assert.Equal(t,
		"# Changelog\n\n## v1.2.100000000000000000000000 (2024-01-15)\n- Minor update, auto-version bump for release\n\n## v1.2.99999999999999999999999\n",
		testutil.ReadFile(t, path))
}

func TestBump_MissingHeadingIsNoOp(t *testing.T) {
	t.Parallel()

	content := "## v1.0.0 (2024-01-01)\n- Initial\n"
	path := testutil.WriteChangelog(t, t.TempDir(), content)

	stdout, _, code := runCLI(t, "bump", "--changelog", path)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Bumped version to v1.0.1\n", stdout)
	assert.Equal(t, content, testutil.ReadFile(t, path))
}

func TestBump_Message(t *testing.T) {
	t.Parallel()

	path := testutil.WriteChangelog(t, t.TempDir(), testutil.SampleChangelog)

	_, _, code := runCLI(t, "bump", "--changelog", path, "-m", "Dependency updates")
	require.Equal(t, ExitSuccess, code)

	got := testutil.ReadFile(t, path)
	assert.True(t, strings.HasPrefix(got, "# Changelog\n\n## v1.2.4 (2024-01-15)\n- Dependency updates\n\n## v1.2.3"), got)
}

func TestBump_DryRun(t *testing.T) {
	t.Parallel()

	path := testutil.WriteChangelog(t, t.TempDir(), testutil.SampleChangelog)

	stdout, stderr, code := runCLI(t, "bump", "--dry-run", "--changelog", path)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, bumpedSample+"Bumped version to v1.2.4\n", stdout)
	assert.Equal(t, "v1.2.3 -> v1.2.4 (2024-01-15)\n", stderr)
	assert.Equal(t, testutil.SampleChangelog, testutil.ReadFile(t, path))
}

func TestBump_TwiceAddsTwoEntries(t *testing.T) {
	t.Parallel()

	path := testutil.WriteChangelog(t, t.TempDir(), testutil.SampleChangelog)

	_, _, code := runCLI(t, "--changelog", path)
	require.Equal(t, ExitSuccess, code)
	stdout, _, code := runCLI(t, "--changelog", path)
	require.Equal(t, ExitSuccess, code)

	assert.Equal(t, "Bumped version to v1.2.5\n", stdout)
	got := testutil.ReadFile(t, path)
	assert.Equal(t, 1, strings.Count(got, "## v1.2.5 (2024-01-15)"))
	assert.Equal(t, 1, strings.Count(got, "## v1.2.4 (2024-01-15)"))
	assert.Less(t, strings.Index(got, "v1.2.5"), strings.Index(got, "v1.2.4"))
}

func TestBump_EnvironmentOverride(t *testing.T) {
	t.Setenv("BUMPLOG_ENTRY_MESSAGE", "Nightly release")

	path := testutil.WriteChangelog(t, t.TempDir(), testutil.SampleChangelog)

	_, _, code := runCLI(t, "--changelog", path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, testutil.ReadFile(t, path), "## v1.2.4 (2024-01-15)\n- Nightly release\n")
}

func TestBump_ProjectConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "docs", "CHANGES.md"), "# Changes\n\n## v0.1.0\n")
	testutil.WriteFile(t, filepath.Join(dir, ".bumplog.yml"), "changelog_path: docs/CHANGES.md\nheading: \"# Changes\"\n")
	t.Chdir(dir)

	stdout, _, code := runCLI(t)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Bumped version to v0.1.1\n", stdout)
	assert.Equal(t,
		"# Changes\n\n## v0.1.1 (2024-01-15)\n- Minor update, auto-version bump for release\n\n## v0.1.0\n",
		testutil.ReadFile(t, filepath.Join(dir, "docs", "CHANGES.md")))
}

func TestBump_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteChangelog(t, dir, testutil.SampleChangelog)

	tests := map[string]string{
		"missing config file": filepath.Join(dir, "nope.yml"),
		"empty heading":       testutil.WriteFile(t, filepath.Join(dir, "bad.yml"), "heading: \"\"\n"),
	}

	for name, cfgPath := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, stderr, code := runCLI(t, "--changelog", path, "--config", cfgPath)

			assert.Equal(t, ExitInvalidArguments, code)
			assert.Contains(t, stderr, "Configuration Error")
		})
	}
	assert.Equal(t, testutil.SampleChangelog, testutil.ReadFile(t, path))
}

func TestBump_Tag(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args      []string
		annotated bool
	}{
		"lightweight": {args: []string{"--tag"}},
		"annotated":   {args: []string{"--tag-message", "Release v1.2.4"}, annotated: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := testutil.WriteChangelog(t, dir, testutil.SampleChangelog)
			repo := testutil.InitGitRepo(t, dir)

			stdout, stderr, code := runCLI(t, append([]string{"bump", "--changelog", path}, tt.args...)...)

			require.Equal(t, ExitSuccess, code, stderr)
			assert.Equal(t, "Bumped version to v1.2.4\n", stdout)

			ref, err := repo.Tag("v1.2.4")
			require.NoError(t, err)

			var commit *object.Commit
			if tt.annotated {
				tagObj, err := repo.TagObject(ref.Hash())
				require.NoError(t, err)
				commit, err = tagObj.Commit()
				require.NoError(t, err)
			} else {
				commit, err = repo.CommitObject(ref.Hash())
				require.NoError(t, err)
			}

			head, err := repo.Head()
			require.NoError(t, err)
			assert.Equal(t, head.Hash(), commit.Hash, "tag points at the release commit")
			assert.Equal(t, "Release v1.2.4", commit.Message)

			file, err := commit.File("CHANGELOG.md")
			require.NoError(t, err)
			contents, err := file.Contents()
			require.NoError(t, err)
			assert.Equal(t, bumpedSample, contents, "tagged commit carries the new entry")

			wt, err := repo.Worktree()
			require.NoError(t, err)
			status, err := wt.Status()
			require.NoError(t, err)
			assert.True(t, status.IsClean(), status.String())
		})
	}
}

func TestBump_TagAlreadyExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteChangelog(t, dir, testutil.SampleChangelog)
	testutil.InitGitRepo(t, dir)
	_, err := git.CreateTag(dir, "v1.2.4", git.TagOptions{})
	require.NoError(t, err)

	stdout, stderr, code := runCLI(t, "bump", "--tag", "--changelog", path)

	assert.Equal(t, ExitGitTag, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "tag v1.2.4 already exists")
	assert.Equal(t, testutil.SampleChangelog, testutil.ReadFile(t, path), "nothing is written when the tag exists")
}

func TestBump_TagOutsideRepository(t *testing.T) {
	t.Parallel()

	path := testutil.WriteChangelog(t, t.TempDir(), testutil.SampleChangelog)

	stdout, stderr, code := runCLI(t, "bump", "--tag", "--changelog", path)

	assert.Equal(t, ExitGitTag, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Git Error")
	assert.Equal(t, testutil.SampleChangelog, testutil.ReadFile(t, path), "nothing is written outside a repository")
}

func TestBump_DryRunSkipsTag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteChangelog(t, dir, testutil.SampleChangelog)
	testutil.InitGitRepo(t, dir)

	_, _, code := runCLI(t, "bump", "--dry-run", "--tag", "--changelog", path)
	require.Equal(t, ExitSuccess, code)

	exists, err := git.TagExists(dir, "v1.2.4")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBump_Debug(t *testing.T) {
	t.Parallel()

	path := testutil.WriteChangelog(t, t.TempDir(), testutil.SampleChangelog)

	stdout, stderr, code := runCLI(t, "--debug", "--changelog", path)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Bumped version to v1.2.4\n", stdout)
	assert.Contains(t, stderr, "bumping changelog")
	assert.Contains(t, stderr, "version bumped")
}
