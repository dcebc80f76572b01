// Package errors provides structured error types for seqgram.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - Line-accurate reporting of syntax errors
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention that mirrors the
// pipeline stage that produced them:
//   - SYNTAX_*: the input text does not match the statement grammar
//   - MODEL_*: the statements do not describe a drawable diagram
//   - LAYOUT_*: geometry could not be computed (internal invariant violations)
//   - INVALID_*: bad options or configuration
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.Syntax(errors.ErrCodeMalformedLine, 3, "missing arrow")
//	if errors.IsSyntax(err) {
//	    fmt.Println("bad line", errors.LineOf(err))
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Syntax errors (parser)
	ErrCodeMalformedLine      Code = "SYNTAX_MALFORMED_LINE"
	ErrCodeEmptyParticipant   Code = "SYNTAX_EMPTY_PARTICIPANT"
	ErrCodeParticipantTooLong Code = "SYNTAX_PARTICIPANT_TOO_LONG"
	ErrCodeInvalidCharacter   Code = "SYNTAX_INVALID_CHARACTER"

	// Model errors (model builder)
	ErrCodeNoParticipants Code = "MODEL_NO_PARTICIPANTS"

	// Layout errors (layout engine)
	ErrCodeDegenerateSpan Code = "LAYOUT_DEGENERATE_SPAN"
	ErrCodeInvalidLayout  Code = "LAYOUT_INVALID_CONFIG"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// ExpectedPattern is the statement grammar quoted in syntax error messages.
const ExpectedPattern = "<participant> -> <participant> : <message text>"

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Line    int    // 1-based input line, 0 when not tied to a line
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
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

// Syntax creates an Error bound to an input line.
func Syntax(code Code, line int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
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

// LineOf returns the input line an error refers to, or 0.
func LineOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Line
	}
	return 0
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Line > 0 {
			return fmt.Sprintf("line %d: %s", e.Line, e.Message)
		}
		return e.Message
	}
	return err.Error()
}

// IsSyntax reports whether err was produced by the parser.
func IsSyntax(err error) bool { return hasPrefix(err, "SYNTAX_") }

// IsModel reports whether err was produced by the model builder.
func IsModel(err error) bool { return hasPrefix(err, "MODEL_") }

// IsLayout reports whether err was produced by the layout engine.
func IsLayout(err error) bool { return hasPrefix(err, "LAYOUT_") }

func hasPrefix(err error, prefix string) bool {
	return strings.HasPrefix(string(GetCode(err)), prefix)
}
