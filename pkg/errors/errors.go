// Package errors provides structured error types for the hackerslides application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across all pipeline stages
//   - Machine-readable error codes for programmatic handling
//   - Source-line tracking for parse errors
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map to the pipeline stage that failed:
//   - PARSE_ERROR: malformed source deck (unknown keyword, bad arity, invalid slide shape)
//   - COMPILATION_ERROR: render-time contract violations
//   - COLLABORATOR_ERROR: an external tool exited non-zero or produced unreadable output
//   - INVALID_*: caller-supplied configuration failures
//
// # Usage
//
//	err := errors.NewParse(line, "Unknown keyword %s", keyword)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle parse error
//	}
//
//	// Wrap collaborator failures
//	err := errors.Wrap(errors.ErrCodeCollaborator, origErr, "convert failed for slide %d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Source parsing errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Render compilation errors
	ErrCodeCompilation Code = "COMPILATION_ERROR"

	// External tool errors
	ErrCodeCollaborator Code = "COLLABORATOR_ERROR"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidResolution Code = "INVALID_RESOLUTION"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// NoLine marks an error that has no originating source line.
const NoLine = -1

// Error is a structured error with a code, an optional 0-based source line,
// and an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Line    int    // 0-based source line, or NoLine
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface. Source lines are reported 1-based.
func (e *Error) Error() string {
	msg := e.Message
	if e.Line != NoLine {
		msg = fmt.Sprintf("Error in line %d: %s", e.Line+1, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Line:    NoLine,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewParse creates a parse error anchored at a 0-based source line.
func NewParse(line int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeParse,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Line:    NoLine,
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

// GetLine extracts the 0-based source line from an error.
// Returns NoLine if the error is not an *Error or carries no line.
func GetLine(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Line
	}
	return NoLine
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (with line prefix) without the code.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Line != NoLine {
			return fmt.Sprintf("Error in line %d: %s", e.Line+1, e.Message)
		}
		return e.Message
	}
	return err.Error()
}
