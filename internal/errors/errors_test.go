// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--digits"),
			expected: "invalid value 42 for flag --digits",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cause       error
		expectedMsg string
		checkIs     error
		checkUnwrap bool
	}{
		{
			name:        "Error returns cause message",
			cause:       errors.New("series diverged"),
			expectedMsg: "series diverged",
		},
		{
			name:        "Unwrap returns cause",
			cause:       errors.New("original error"),
			expectedMsg: "original error",
			checkUnwrap: true,
		},
		{
			name:        "errors.Is works with wrapped error",
			cause:       context.Canceled,
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Cause: tt.cause}

			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if tt.checkUnwrap && err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         TimeoutError
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns formatted message",
			err:      TimeoutError{Operation: "extraction", Limit: 30 * time.Second},
			expected: `operation "extraction" timed out after 30s`,
		},
		{
			name:     "Error with subsecond limit",
			err:      TimeoutError{Operation: "grid launch", Limit: 500 * time.Millisecond},
			expected: `operation "grid launch" timed out after 500ms`,
		},
		{
			name:        "errors.As works with TimeoutError",
			err:         TimeoutError{Operation: "series sum", Limit: 10 * time.Second},
			expected:    `operation "series sum" timed out after 10s`,
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			if tt.checkTypeAs {
				var timeoutErr TimeoutError
				if !errors.As(err, &timeoutErr) {
					t.Error("expected error to be TimeoutError type")
				}
				if timeoutErr.Operation != tt.err.Operation {
					t.Errorf("expected Operation %q, got %q", tt.err.Operation, timeoutErr.Operation)
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "position", Message: "must be at least 1"}
	expected := `validation error for "position": must be at least 1`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	var validationErr ValidationError
	if !errors.As(error(err), &validationErr) {
		t.Error("expected error to be ValidationError type")
	}
	if validationErr.Field != "position" {
		t.Errorf("expected Field %q, got %q", "position", validationErr.Field)
	}
}

func TestResourceError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      ResourceError
		expected string
	}{
		{
			name:     "Error without cause",
			err:      ResourceError{Workers: 4800, BufferBytes: 38400},
			expected: "resource error: requested 4800 workers, 38400 result buffer bytes",
		},
		{
			name:     "Error with cause",
			err:      ResourceError{Workers: 8, BufferBytes: 64, Cause: errors.New("semaphore closed")},
			expected: "resource error: requested 8 workers, 64 result buffer bytes: semaphore closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}

	// Unwrap exposes the cause for errors.Is.
	inner := context.Canceled
	wrapped := ResourceError{Workers: 1, BufferBytes: 8, Cause: inner}
	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context %d", 1) != nil {
		t.Error("wrapping nil must return nil")
	}

	inner := errors.New("boom")
	err := WrapError(inner, "evaluating chunk %d", 7)
	if err.Error() != "evaluating chunk 7: boom" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("wrapped error lost its cause")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	if !IsContextError(context.Canceled) || !IsContextError(context.DeadlineExceeded) {
		t.Error("context errors not recognized")
	}
	if !IsContextError(CalculationError{Cause: context.Canceled}) {
		t.Error("wrapped context error not recognized")
	}
	if IsContextError(errors.New("boom")) {
		t.Error("plain error misclassified as context error")
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantOutput string
	}{
		{
			name:       "deadline exceeded maps to timeout exit",
			err:        context.DeadlineExceeded,
			wantCode:   ExitErrorTimeout,
			wantOutput: "timed out",
		},
		{
			name:       "wrapped deadline maps to timeout exit",
			err:        CalculationError{Cause: context.DeadlineExceeded},
			wantCode:   ExitErrorTimeout,
			wantOutput: "timed out",
		},
		{
			name:       "cancellation maps to canceled exit",
			err:        context.Canceled,
			wantCode:   ExitErrorCanceled,
			wantOutput: "canceled",
		},
		{
			name:       "config error maps to config exit",
			err:        NewConfigError("bad digits"),
			wantCode:   ExitErrorConfig,
			wantOutput: "Configuration error",
		},
		{
			name:       "anything else maps to generic exit",
			err:        errors.New("boom"),
			wantCode:   ExitErrorGeneric,
			wantOutput: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantOutput) {
				t.Errorf("output %q missing %q", buf.String(), tt.wantOutput)
			}
		})
	}
}

func TestExitCodes_Distinct(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorCanceled}
	seen := map[int]bool{}
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
	if HandleCalculationError(errors.New("x"), 0, io.Discard) == ExitSuccess {
		t.Error("errors must never map to the success exit code")
	}
}
