package cli

import "fmt"

// Exit codes for the bumplog CLI
// These codes let a release pipeline tell failure modes apart
const (
	// ExitSuccess indicates the changelog was bumped (or the query succeeded)
	ExitSuccess = 0

	// ExitNoVersion indicates no usable vX.Y.Z token was found in the changelog
	ExitNoVersion = 1

	// ExitFileAccess indicates the changelog could not be opened, read or written
	ExitFileAccess = 2

	// ExitInvalidArguments indicates invalid arguments, flags or configuration
	ExitInvalidArguments = 3

	// ExitHeadingNotFound indicates the heading was missing under strict_heading
	ExitHeadingNotFound = 4

	// ExitGitTag indicates the release commit or tag could not be created
	ExitGitTag = 5
)

// ExitError carries a process exit code up to main.
// Err, when set, is reported on stderr; a nil Err means the command
// already wrote its own output.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError returns an ExitError with no further message.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func exitWith(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
