// Package errors provides structured error types for screenforge.
//
// Every error that crosses a package boundary towards a host carries a
// machine-readable [Code], so the CLI, the session protocol and tests can
// tell a fatal phase failure from a recoverable one without string matching.
//
// # Error Codes
//
//   - INVALID_*: input documents (catalog, tokens, options) failed validation
//   - MISSING_ROLE, REGENERATE_CLEANUP: fatal, abort the running batch
//   - FONT_LOAD, COMPOSER_BUILD, DANGLING_FLOW_EDGE: recoverable, recorded
//     and reported but the batch continues
//   - CANCELLED, BUSY, UNKNOWN_COMMAND: orchestration outcomes
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCatalog, "duplicate screen id %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidCatalog) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeRegenerateCleanup, cause, "remove page %q", name)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidTokens  Code = "INVALID_TOKENS"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Fatal batch errors
	ErrCodeMissingRole       Code = "MISSING_ROLE"
	ErrCodeRegenerateCleanup Code = "REGENERATE_CLEANUP"

	// Recoverable errors
	ErrCodeFontLoad         Code = "FONT_LOAD"
	ErrCodeComposerBuild    Code = "COMPOSER_BUILD"
	ErrCodeDanglingFlowEdge Code = "DANGLING_FLOW_EDGE"

	// Orchestration
	ErrCodeCancelled      Code = "CANCELLED"
	ErrCodeBusy           Code = "BUSY"
	ErrCodeUnknownCommand Code = "UNKNOWN_COMMAND"

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

// Coder is implemented by typed errors of other packages that map onto a
// Code without being an *Error themselves.
type Coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a Coder with a
// matching code.
func Is(err error, code Code) bool {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Code == code {
				return true
			}
		case Coder:
			if e.Code() == code {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if nothing in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case Coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether err describes a failure the batch is allowed
// to continue past.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeFontLoad, ErrCodeComposerBuild, ErrCodeDanglingFlowEdge:
		return true
	}
	return false
}
