// Package errors provides structured error types for graphclip.
//
// This package defines error codes and types that enable:
//   - Telling structural document failures apart from local, skippable ones
//   - Machine-readable error codes for the CLI and the HTTP API
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (documents, names, paths)
//   - UNSUPPORTED_*: Inputs that are well-formed but cannot be handled
//   - UNRESOLVED_*: References that could not be resolved against the host
//   - NOT_FOUND: Missing resources
//   - INTERNAL_*: Unexpected internal errors
//
// Only [ErrCodeInvalidDocument] and [ErrCodeUnsupportedVersion] abort a
// decode. [ErrCodeUnresolved] is attached to per-node and per-connection
// issues that the decoder logs and skips.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDocument, "missing graph section")
//	if errors.Is(err, errors.ErrCodeInvalidDocument) {
//	    // Refuse the paste
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "parse %s", path)
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
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Unsupported inputs
	ErrCodeUnsupportedVersion Code = "UNSUPPORTED_VERSION"

	// Reference resolution errors
	ErrCodeUnresolved Code = "UNRESOLVED_REFERENCE"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// IsStructural reports whether err rejects a whole document rather than a
// single node or connection.
func IsStructural(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidDocument, ErrCodeUnsupportedVersion, ErrCodeInvalidFormat:
		return true
	}
	return false
}
