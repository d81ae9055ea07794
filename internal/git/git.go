// Package git tags released versions in the surrounding git repository.
// It uses the go-git library so no git CLI installation is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// defaultTaggerName and defaultTaggerEmail sign annotated tags when the
// repository has no user configured.
const (
	defaultTaggerName  = "bumplog"
	defaultTaggerEmail = "bumplog@localhost"
)

// ErrTagExists is returned when the requested tag is already present.
var ErrTagExists = git.ErrTagExists

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var (
	debugMu     sync.RWMutex
	debugLogger func(format string, args ...any)
)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	debugMu.RLock()
	logger := debugLogger
	debugMu.RUnlock()
	if logger != nil {
		logger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// IsGitRepository checks if path (or the working directory when empty) is within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository(%q): %v", path, result)
	return result
}

// TagOptions configures CreateTag.
type TagOptions struct {
	// Message makes the tag annotated. Empty creates a lightweight tag.
	Message string
	// Now stamps annotated tags. Nil means time.Now.
	Now func() time.Time
}

// CreateTag tags the current HEAD commit of the repository containing path.
// Returns ErrTagExists when the tag is already present.
func CreateTag(path, name string, opts TagOptions) (*plumbing.Reference, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	var createOpts *git.CreateTagOptions
	if opts.Message != "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		createOpts = &git.CreateTagOptions{
			Tagger:  signature(repo, now()),
			Message: opts.Message,
		}
	}

	ref, err := repo.CreateTag(name, head.Hash(), createOpts)
	if err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return nil, fmt.Errorf("tag %s: %w", name, ErrTagExists)
		}
		return nil, fmt.Errorf("creating tag %s: %w", name, err)
	}

	logDebug("[git] created tag %s at %s", name, head.Hash())
	return ref, nil
}

// CommitOptions configures CommitFile.
type CommitOptions struct {
	Message string
	// Now stamps the commit. Nil means time.Now.
	Now func() time.Time
}

// CommitFile stages file and commits it on the current branch of the
// repository containing it. Symlinks are resolved, so the file they point
// at is staged. Paths already staged in the index are committed too.
func CommitFile(file string, opts CommitOptions) (plumbing.Hash, error) {
	target, err := filepath.Abs(file)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %s: %w", file, err)
	}
	if target, err = filepath.EvalSymlinks(target); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %s: %w", file, err)
	}

	repo, err := openRepo(filepath.Dir(target))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting worktree: %w", err)
	}

	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving worktree root: %w", err)
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return plumbing.ZeroHash, fmt.Errorf("%s is outside the repository at %s", file, root)
	}

	if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("staging %s: %w", rel, err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	sig := signature(repo, now())
	hash, err := wt.Commit(opts.Message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing %s: %w", rel, err)
	}

	logDebug("[git] committed %s as %s", rel, hash)
	return hash, nil
}

// TagExists reports whether name is a tag in the repository containing path.
func TagExists(path, name string) (bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return false, err
	}

	_, err = repo.Tag(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrTagNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("looking up tag %s: %w", name, err)
	}
}

// signature builds the commit and annotated tag signature from the
// repository's user config, falling back to a fixed identity.
func signature(repo *git.Repository, when time.Time) *object.Signature {
	sig := &object.Signature{
		Name:  defaultTaggerName,
		Email: defaultTaggerEmail,
		When:  when,
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
