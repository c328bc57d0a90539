package cli

import "fmt"

// Exit codes for the relmate CLI.
// When a collaborator tool runs and fails, its own exit code passes through
// verbatim; these constants only cover failures relmate detects itself.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a generic relmate failure (config, I/O)
	ExitFailure = 1

	// ExitNoBaseline indicates the changelog has no committed baseline,
	// so the release was aborted before the release tool ran
	ExitNoBaseline = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitToolNotFound indicates a collaborator command is missing from PATH
	ExitToolNotFound = 4
)

// ExitError carries a process exit code through cobra's error return path.
// Err optionally holds a structured error to display; a nil Err means the
// failure was already reported (typically by the external tool itself).
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with no message of its own.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// WrapExitError creates an ExitError carrying a displayable error.
func WrapExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
