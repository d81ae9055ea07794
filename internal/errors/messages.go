package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// Common error messages for the bumplog CLI.
// These templates ensure consistent, actionable error messages.

// ChangelogAccess creates an error for a changelog that cannot be opened, read or written.
// The remediation depends on the underlying cause.
func ChangelogAccess(path string, err error) *CLIError {
	var remediation []string
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		remediation = []string{
			fmt.Sprintf("Create %s with a '# Changelog' heading and an initial '## v0.0.0' entry", path),
			"Run bumplog from the repository root, or pass --changelog <path>",
		}
	case stderrors.Is(err, fs.ErrPermission):
		remediation = []string{
			fmt.Sprintf("Check the permissions of %s and its directory", path),
		}
	default:
		remediation = []string{
			"Check that the disk is not full and the path is a regular file",
		}
	}
	return WrapWithMessage(err, FileAccess, "changelog is not accessible", remediation...)
}

// HeadingNotFound creates an error for a changelog without the insertion heading (strict mode).
func HeadingNotFound(heading, path string) *CLIError {
	return New(Changelog,
		fmt.Sprintf("heading %q not found in %s", heading, path),
		fmt.Sprintf("Add a line %q at the top of the changelog", heading),
		"Or set 'heading' in .bumplog.yml to the heading your changelog uses",
		"Or disable strict_heading to keep the file unchanged when the heading is missing",
	)
}

// ConfigParseError creates an error for config file parse errors.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "failed to load configuration",
		"Check the YAML syntax of .bumplog.yml",
		"Run 'bumplog config --template' to see a valid example",
	)
}

// GitNotRepository creates an error when tagging is requested outside a git repository.
func GitNotRepository(err error) *CLIError {
	return WrapWithMessage(err, Git, "cannot tag release: not a git repository",
		"Run bumplog inside a git repository",
		"Or drop --tag / set git_tag: false",
	)
}

// GitTagExists creates an error for a release whose tag is already present.
// Nothing has been written when it is returned.
func GitTagExists(tag string) *CLIError {
	return New(Git, fmt.Sprintf("tag %s already exists", tag),
		"Add a newer version entry to the changelog, or delete the tag: git tag -d "+tag,
		"Or run without --tag",
	)
}

// GitCommitFailed creates an error for a bumped changelog that could not be committed.
func GitCommitFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Git, fmt.Sprintf("committing %s", path),
		fmt.Sprintf("The changelog has already been bumped; commit %s and tag manually", path),
	)
}

// GitTagFailed creates an error for a tag that could not be created.
func GitTagFailed(tag string, err error) *CLIError {
	return WrapWithMessage(err, Git, fmt.Sprintf("creating tag %s", tag),
		fmt.Sprintf("Check whether %s already exists: git tag -l %s", tag, tag),
		"The changelog has already been bumped; commit it and tag manually if needed",
	)
}
