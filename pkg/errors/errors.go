// Package errors provides structured error types for the seatplan
// application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the editor TUI and CLI commands
//   - Machine-readable error codes for programmatic handling
//   - User-friendly notices for the editor's status line
//   - Error wrapping with context preservation
//
// The editor core has no fatal errors: storage corruption degrades to an
// empty collection, a missing active layout aborts the operation with a
// dismissible notice, and missing per-section state defaults to zeros.
// These codes classify which degradation happened.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoActiveLayout, "no layout selected")
//	if errors.Is(err, errors.ErrCodeNoActiveLayout) {
//	    // Show a notice, abort the export
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "write layouts")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// User-recoverable editor errors
	ErrCodeNoActiveLayout Code = "NO_ACTIVE_LAYOUT"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"

	// Document errors
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"

	// Storage errors
	ErrCodeStore Code = "STORE_ERROR"

	// Export errors
	ErrCodeExport Code = "EXPORT_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
