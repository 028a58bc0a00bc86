package errors

import (
	"errors"
	"fmt"
)

// Exit codes for forage-routes
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidHost    = 2
	ExitRuntimeFailed  = 3
	ExitRouteFileError = 4
	ExitConfigError    = 5
	ExitPromptFailed   = 6
)

// ForageError is the base error type for forage-routes
type ForageError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ForageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ForageError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ForageError) ExitCode() int {
	return e.Code
}

// New creates a new ForageError
func New(code int, message string) *ForageError {
	return &ForageError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ForageError
func Wrap(code int, message string, cause error) *ForageError {
	return &ForageError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InvalidHost returns an error for an input that cannot be read as a URL,
// even with an http:// prefix.
func InvalidHost(raw string, cause error) *ForageError {
	return Wrap(ExitInvalidHost, fmt.Sprintf("invalid host %q", raw), cause)
}

// NoValidHosts returns an error when every input URL was rejected.
func NoValidHosts(count int) *ForageError {
	return New(ExitInvalidHost, fmt.Sprintf("none of the %d input URLs could be parsed", count))
}

// RuntimeFailed returns an error for a sandbox runtime invocation that could
// not be started or whose result could not be parsed.
func RuntimeFailed(op string, cause error) *ForageError {
	return Wrap(ExitRuntimeFailed, fmt.Sprintf("sandbox runtime %s failed", op), cause)
}

// RouteFileUnreadable returns an error for a route file that exists but
// cannot be read.
func RouteFileUnreadable(path string, cause error) *ForageError {
	return Wrap(ExitRouteFileError, fmt.Sprintf("route file %s is unreadable", path), cause)
}

// RouteFileUnwritable returns an error for a route file that cannot be saved.
func RouteFileUnwritable(path string, cause error) *ForageError {
	return Wrap(ExitRouteFileError, fmt.Sprintf("route file %s could not be written", path), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ForageError {
	return Wrap(ExitConfigError, message, cause)
}

// PromptFailed returns an error when the confirmation prompt cannot be answered.
func PromptFailed(cause error) *ForageError {
	return Wrap(ExitPromptFailed, "confirmation prompt failed", cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ForageError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var forageErr *ForageError
	if errors.As(err, &forageErr) {
		return forageErr.ExitCode()
	}
	return ExitGeneralError
}

// HasCode reports whether any ForageError in err's chain carries code.
func HasCode(err error, code int) bool {
	var forageErr *ForageError
	if errors.As(err, &forageErr) {
		return forageErr.Code == code
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
