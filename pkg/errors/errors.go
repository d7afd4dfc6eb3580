// Package errors provides structured error types for gridboard.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI, and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Layout errors are local and recoverable. The codes callers usually branch on:
//   - UNKNOWN_WIDGET_KIND: the requested kind has no registered metadata
//   - NO_SPACE_FOUND: first-fit exhausted its row bound
//   - MOVE_REJECTED: conflict resolution could not satisfy grid bounds
//   - INVARIANT_VIOLATION: an overlap was detected before commit (internal)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownKind, "unknown widget kind %q", kind)
//	if errors.Is(err, errors.ErrCodeMoveRejected) {
//	    // snap the widget back
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save layout %s", board)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPosition Code = "INVALID_POSITION"
	ErrCodeInvalidKind     Code = "INVALID_KIND"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeUnknownKind    Code = "UNKNOWN_WIDGET_KIND"
	ErrCodeWidgetNotFound Code = "WIDGET_NOT_FOUND"

	// Layout outcomes
	ErrCodeNoSpace      Code = "NO_SPACE_FOUND"
	ErrCodeMoveRejected Code = "MOVE_REJECTED"
	ErrCodeNotResizable Code = "NOT_RESIZABLE"

	// Gesture state errors
	ErrCodeGestureInProgress Code = "GESTURE_IN_PROGRESS"
	ErrCodeNoGesture         Code = "NO_GESTURE"

	// Storage errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInvariant   Code = "INVARIANT_VIOLATION"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether err is an expected layout outcome that the
// caller should surface to the user (snap back, "no room" toast) rather than
// treat as a failure of the program.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeMoveRejected, ErrCodeNoSpace, ErrCodeNotResizable, ErrCodeInvalidPosition:
		return true
	}
	return false
}
