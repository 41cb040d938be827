// Package errors provides structured errors with stable machine-readable codes.
//
// Every fatal condition raised during specification loading, pillar access or
// remote execution carries one of the ErrCode constants so callers can branch
// on the class of failure without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants
const (
	// ErrCodeSchema indicates a malformed or unrecognized field in the
	// argument specification document.
	ErrCodeSchema = "SCHEMA_ERROR"

	// ErrCodeUnknownEnum indicates a deferred choices reference that does not
	// match any registered enumeration.
	ErrCodeUnknownEnum = "UNKNOWN_ENUM"

	// ErrCodeConflict indicates two argument identifiers in one command group
	// normalized to the same flag name.
	ErrCodeConflict = "FLAG_CONFLICT"

	// ErrCodeValidation indicates a path, content or checksum validation
	// failure.
	ErrCodeValidation = "VALIDATION_ERROR"

	// ErrCodeUndefinedPillar indicates a pillar key that could not be
	// resolved while fail-on-undefined was requested.
	ErrCodeUndefinedPillar = "UNDEFINED_PILLAR"

	// ErrCodeSaltFailure indicates a salt state or function run that exited
	// non-zero.
	ErrCodeSaltFailure = "SALT_FAILURE"

	// ErrCodeTeardown indicates a teardown step failure on a node.
	ErrCodeTeardown = "TEARDOWN_FAILURE"

	// ErrCodeRateLimit indicates the caller exceeded the request rate limit.
	ErrCodeRateLimit = "RATE_LIMIT_EXCEEDED"

	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// StructuredError is an error with a stable code and optional wrapped cause.
type StructuredError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StructuredError) Unwrap() error {
	return e.Err
}

// New creates a StructuredError with the given code and message.
func New(code, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf creates a StructuredError with a formatted message.
func Newf(code, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StructuredError wrapping an underlying cause.
func Wrap(code, message string, err error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of err if it is (or wraps) a StructuredError,
// or ErrCodeInternal otherwise.
func CodeOf(err error) string {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err is (or wraps) a StructuredError with the code.
func HasCode(err error, code string) bool {
	var se *StructuredError
	return errors.As(err, &se) && se.Code == code
}
