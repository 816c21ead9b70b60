// Package exitcode defines structured exit codes for henchman commands.
// These codes let scripts and process managers react to specific failure
// classes without parsing error messages.
//
// # Exit Code Ranges
//
//   - 0: Success
//   - 1-9: General errors (usage, internal)
//   - 10-19: Resource not found (deployment file)
//   - 20-29: Permission/access errors
//   - 50-59: Conflict/state errors (project lock held)
//   - 60-69: Supervision errors (parse, launch, child failure)
//
// A supervised command interrupted by SIGINT or SIGTERM never produces an
// exit code: henchman terminates by the same signal instead.
//
// # Usage
//
//	return exitcode.FileNotFound("compose.yml")     // Exit code 13
//	return exitcode.Wrap(exitcode.ErrParse, "invalid deployment", err)
//
//	code := exitcode.Code(err)  // Returns ErrGeneral for non-coded errors
package exitcode

import (
	"errors"
	"fmt"
)

// Exit codes for henchman commands.
const (
	// Success indicates the command completed successfully.
	Success = 0

	// General errors (1-9)
	ErrGeneral  = 1 // General/unknown error
	ErrUsage    = 2 // Invalid arguments or usage
	ErrInternal = 3 // Internal error (bug)

	// Resource not found (10-19)
	ErrFileNotFound = 13 // Deployment file or path not found

	// Permission/access errors (20-29)
	ErrPermission = 20 // Permission denied

	// Conflict/state errors (50-59)
	ErrBusy = 52 // Project lock held by another henchman

	// Supervision errors (60-69)
	ErrParse       = 60 // Deployment document malformed or invalid
	ErrLaunch      = 61 // Engine command could not be started
	ErrChildFailed = 62 // Engine command exited non-zero
)

// Error wraps an error with a specific exit code.
type Error struct {
	Code    int
	Message string
	Cause   error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new coded error.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new coded error with printf-style formatting.
func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a code and message.
func Wrap(code int, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf wraps an existing error with a code and printf-style message.
func Wrapf(code int, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithCode attaches a code to err without changing its message.
func WithCode(code int, err error) *Error {
	return &Error{Code: code, Cause: err}
}

// Code extracts the exit code from an error.
// Returns ErrGeneral (1) if the error doesn't have a code.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrGeneral
}

// Is checks if an error has a specific exit code.
func Is(err error, code int) bool {
	return Code(err) == code
}

// FileNotFound returns an error for a missing deployment file.
func FileNotFound(path string) *Error {
	return Newf(ErrFileNotFound, "file not found: %s", path)
}

// PermissionDenied returns a permission error.
func PermissionDenied(msg string) *Error {
	return New(ErrPermission, msg)
}

// Busy returns an error when the project lock is held elsewhere.
func Busy(resource string) *Error {
	return Newf(ErrBusy, "%s is busy", resource)
}

// Usage returns a usage error.
func Usage(format string, args ...interface{}) *Error {
	return Newf(ErrUsage, format, args...)
}
