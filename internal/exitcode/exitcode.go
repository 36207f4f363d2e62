package exitcode

import (
	"os"

	"github.com/felixgeelhaar/greenlight/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// IllegalState indicates an operation attempted from the wrong plan status
	IllegalState = 3

	// PreflightChanged indicates an execution-time race was detected
	PreflightChanged = 4

	// NotFound indicates an unknown plan id
	NotFound = 5

	// Interrupted indicates the operation was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code via its engine error code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch {
	case errors.IsIllegalState(err):
		return IllegalState
	case errors.IsPreflightChanged(err):
		return PreflightChanged
	case errors.IsNotFound(err):
		return NotFound
	case errors.IsInvalidSelection(err):
		return UsageError
	default:
		return GeneralError
	}
}
