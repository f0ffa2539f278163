// Package errors defines the error taxonomy the search engine propagates.
package errors

import (
	"errors"
	"fmt"
)

// Error codes, one per kind named in the error handling design.
const (
	CodeUnknown         = "UNKNOWN_ERROR"
	CodeAllocation      = "ALLOCATION_ERROR"
	CodeDeserialization = "DESERIALIZATION_ERROR"
	CodeIO              = "IO_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUserStop        = "USER_STOP"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeConfigError     = "CONFIG_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Common error instances, one per taxonomy entry.
var (
	ErrAllocation      = New(CodeAllocation, "allocation failed")
	ErrDeserialization = New(CodeDeserialization, "checkpoint deserialization failed")
	ErrIO              = New(CodeIO, "checkpoint io failed")
	ErrInternal        = New(CodeInternal, "internal invariant violation")
	ErrUserStop        = New(CodeUserStop, "search stopped by lifecycle collaborator")
	ErrInvalidInput    = New(CodeInvalidInput, "invalid input")
	ErrConfigError     = New(CodeConfigError, "configuration error")
)

// IsAllocationError reports whether err is (or wraps) an allocation error.
func IsAllocationError(err error) bool { return errors.Is(err, ErrAllocation) }

// IsUserStop reports whether err is (or wraps) a clean user-requested stop.
func IsUserStop(err error) bool { return errors.Is(err, ErrUserStop) }

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
