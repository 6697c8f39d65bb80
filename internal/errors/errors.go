package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeLookupFailure        = "LOOKUP_FAILURE"
	CodeDegenerateComparison = "DEGENERATE_COMPARISON"
	CodeSchemaMismatch       = "SCHEMA_MISMATCH"
	CodeIOFailure            = "IO_FAILURE"
	CodeStoreError           = "STORE_ERROR"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// LookupFailure covers a requested key absent from a result store or
// metadata registry. Callers never default a missing key to a sentinel.
func LookupFailure(format string, args ...interface{}) *AppError {
	return New(CodeLookupFailure, fmt.Sprintf(format, args...))
}

// DegenerateComparison covers comparisons with no defined answer,
// e.g. a relative difference against a zero baseline.
func DegenerateComparison(format string, args ...interface{}) *AppError {
	return New(CodeDegenerateComparison, fmt.Sprintf(format, args...))
}

// SchemaMismatch covers reshaping requests naming rows, columns or
// quadrant cells the table does not actually have.
func SchemaMismatch(format string, args ...interface{}) *AppError {
	return New(CodeSchemaMismatch, fmt.Sprintf(format, args...))
}

func IOFailure(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeIOFailure,
		Message: message,
		Cause:   cause,
	}
}

func StoreError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeStoreError,
		Message: message,
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
