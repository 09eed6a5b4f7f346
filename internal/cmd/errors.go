package cmd

import (
	"errors"

	oerrors "github.com/unityforge/cli/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed indicates the command layer already rendered this error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrUnknownGenre),
		errors.Is(err, oerrors.ErrUnknownFeature),
		errors.Is(err, oerrors.ErrUnknownModule):
		return ExitUnknownSelection
	case errors.Is(err, oerrors.ErrCyclicDependency):
		return ExitCyclicDependency
	case errors.Is(err, oerrors.ErrAnchorConflict):
		return ExitAnchorConflict
	case errors.Is(err, oerrors.ErrPlaceholderUnresolved):
		return ExitPlaceholderUnresolved
	default:
		return ExitGeneralError
	}
}
