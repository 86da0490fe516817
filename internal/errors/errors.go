// Package errors carries the typed error taxonomy for report synthesis.
// Per-item failures (one chart, one analysis) are logged and skipped at
// the call site and never reach this package; AppError covers the
// failures that change control flow.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an error for handling policy
type ErrorType string

const (
	// ErrTypeConfig marks soft configuration problems that fall back
	// to defaults (missing template, unreadable config file)
	ErrTypeConfig ErrorType = "CONFIG"
	// ErrTypeValidation marks rejected inputs
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeStorage marks fatal output failures (cannot create the
	// output directory, write failed); these abort the invocation
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeRender marks chart rasterization failures
	ErrTypeRender ErrorType = "RENDER"
)

// AppError is an application error with a handling classification
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a typed application error
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
