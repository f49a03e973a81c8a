package commands

import "errors"

// An error type that includes an exit code
type ExitError struct {
	Code int
	Err  error
}

// Implement the error interface
func (e *ExitError) Error() string {
	return e.Err.Error()
}
func (e *ExitError) Unwrap() error {
	return e.Err
}

func ExitWithCode(code int, err error) *ExitError {
	if err == nil {
		return nil
	}
	return &ExitError{
		Code: code,
		Err:  err,
	}
}

// UsageError marks bad arguments or flags; it exits with code 2
type UsageError struct{ error }

func (e UsageError) Unwrap() error {
	return e.error
}

// ExitCode maps an error returned from a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var usageErr UsageError
	if errors.As(err, &usageErr) {
		return 2
	}

	return 1
}
