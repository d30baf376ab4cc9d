// Package errors provides structured error types for fknode.
//
// Every failure that crosses a package boundary in the interop layer carries
// a machine-readable [Code], so command handlers can branch on the kind of
// failure (report and continue, abort, fall back) without string matching.
//
// # Error Codes
//
// The interop layer taxonomy:
//   - NO_SUCH_PATH: the project root does not exist
//   - NO_MANIFEST: no supported manifest was found at the root
//   - UNPARSABLE_MAIN_FILE: a manifest exists but is malformed or incomplete
//   - UNSUPPORTED_OPERATION: the ecosystem cannot perform the operation
//   - AMBIGUOUS_ENVIRONMENT: more than one Node-family lockfile coexists
//   - ADVISORY_LOOKUP_FAILURE: one advisory query failed (isolated per package)
//   - NOT_IMPLEMENTED: an explicitly unimplemented generator path
//   - AUDIT_INCONCLUSIVE: the audit exited non-zero but yielded no records
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoManifest, "no manifest in %s", root)
//	if errors.Is(err, errors.ErrCodeNoManifest) {
//	    // Report and continue with the next project
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUnparsableMainFile, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Environment and manifest errors
	ErrCodeNoSuchPath           Code = "NO_SUCH_PATH"
	ErrCodeNoManifest           Code = "NO_MANIFEST"
	ErrCodeUnparsableMainFile   Code = "UNPARSABLE_MAIN_FILE"
	ErrCodeAmbiguousEnvironment Code = "AMBIGUOUS_ENVIRONMENT"

	// Operation errors
	ErrCodeUnsupportedOperation Code = "UNSUPPORTED_OPERATION"
	ErrCodeNotImplemented       Code = "NOT_IMPLEMENTED"

	// Audit errors
	ErrCodeAdvisoryLookup    Code = "ADVISORY_LOOKUP_FAILURE"
	ErrCodeAuditInconclusive Code = "AUDIT_INCONCLUSIVE"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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
// It unwraps the error chain looking for an *Error with a matching code,
// so a code attached anywhere in the chain is found.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
