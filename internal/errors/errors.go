package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a digit mismatch between engines.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates an extraction error while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during the digit computation.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an extraction timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// ResourceError represents a failure to obtain the parallel-execution
// resources an engine requested. It carries enough context to diagnose the
// request: the worker count and the size of the result buffer involved.
type ResourceError struct {
	// Workers is the number of parallel workers that was requested.
	Workers int
	// BufferBytes is the size in bytes of the result buffer that was requested.
	BufferBytes uint64
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a formatted message describing the resource failure.
func (e ResourceError) Error() string {
	msg := fmt.Sprintf("resource error: requested %d workers, %d result buffer bytes", e.Workers, e.BufferBytes)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause of the ResourceError.
func (e ResourceError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// HandleCalculationError reports an extraction failure to the user and maps
// the error class to an application exit code.
//
// Deadline errors map to ExitErrorTimeout, cancellations to ExitErrorCanceled,
// configuration problems to ExitErrorConfig, and anything else to
// ExitErrorGeneric.
func HandleCalculationError(err error, duration time.Duration, out io.Writer) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "\nError: extraction timed out after %s.\n", duration)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "\nExtraction canceled.\n")
		return ExitErrorCanceled
	default:
		var cfgErr ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(out, "\nConfiguration error: %v\n", err)
			return ExitErrorConfig
		}
		fmt.Fprintf(out, "\nError: %v\n", err)
		return ExitErrorGeneric
	}
}
