package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	// bumplogBinaryPath caches the built bumplog binary path.
	bumplogBinaryPath string
	bumplogBuildOnce  sync.Once
	bumplogBuildErr   error
)

// E2EEnv provides an isolated environment for E2E testing.
// Each environment gets its own working directory and HOME, and BUMPLOG_*
// variables from the calling process are never passed through.
type E2EEnv struct {
	t       *testing.T
	tempDir string
	binDir  string
	extra   map[string]string
}

// CommandResult captures the result of running a bumplog command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment with a freshly built binary.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	env := &E2EEnv{
		t:       t,
		tempDir: t.TempDir(),
		binDir:  t.TempDir(),
		extra:   make(map[string]string),
	}
	env.installBumplog()
	return env
}

func (e *E2EEnv) installBumplog() {
	e.t.Helper()

	// Build the binary once per test session
	bumplogBuildOnce.Do(func() {
		bumplogBinaryPath, bumplogBuildErr = buildBumplog()
	})
	if bumplogBuildErr != nil {
		e.t.Fatalf("building bumplog: %v", bumplogBuildErr)
	}

	content, err := os.ReadFile(bumplogBinaryPath)
	if err != nil {
		e.t.Fatalf("reading bumplog binary: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.binDir, "bumplog"), content, 0o755); err != nil {
		e.t.Fatalf("writing bumplog binary: %v", err)
	}
}

func buildBumplog() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	// Navigate from internal/testutil/ to repo root
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "bumplog-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "bumplog")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/bumplog")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\nOutput: %s", err, output)
	}

	return binaryPath, nil
}

// SetEnv adds an environment variable to every subsequent Run.
func (e *E2EEnv) SetEnv(key, value string) {
	e.extra[key] = value
}

// Run executes bumplog with args inside the environment's working directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(filepath.Join(e.binDir, "bumplog"), args...)
	cmd.Dir = e.tempDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("running bumplog: %v", err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	return result
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + e.tempDir,
		"NO_COLOR=1",
	}

	// Safe variables from the original environment
	for _, key := range []string{"LANG", "LC_ALL", "TMPDIR"} {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	for key, val := range e.extra {
		env = append(env, key+"="+val)
	}

	return env
}

// HasLeakedEnv reports whether a BUMPLOG_* variable not set via SetEnv would reach Run.
func (e *E2EEnv) HasLeakedEnv() bool {
	for _, kv := range e.buildIsolatedEnv() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, "BUMPLOG_") {
			continue
		}
		if _, set := e.extra[key]; !set {
			return true
		}
	}
	return false
}

// TempDir returns the working directory commands run in.
func (e *E2EEnv) TempDir() string {
	return e.tempDir
}

// ChangelogPath returns the default changelog location in the environment.
func (e *E2EEnv) ChangelogPath() string {
	return filepath.Join(e.tempDir, "CHANGELOG.md")
}

// WriteChangelog writes CHANGELOG.md into the working directory.
func (e *E2EEnv) WriteChangelog(content string) string {
	e.t.Helper()
	return WriteChangelog(e.t, e.tempDir, content)
}

// ReadChangelog returns the current content of CHANGELOG.md.
func (e *E2EEnv) ReadChangelog() string {
	e.t.Helper()
	return ReadFile(e.t, e.ChangelogPath())
}

// InitGitRepo makes the working directory a repository with one commit.
func (e *E2EEnv) InitGitRepo() {
	e.t.Helper()
	InitGitRepo(e.t, e.tempDir)
}
