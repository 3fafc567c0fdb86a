// Package errors provides application-level error types and utilities.
// It defines the error kinds the billing core surfaces to callers:
// not-found lookups, invalid state transitions, validation failures, and
// audit-storage unavailability.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation_error"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeInvalidState     ErrorType = "invalid_state"
	ErrorTypeAuditUnavailable ErrorType = "audit_unavailable"
	ErrorTypeInternal         ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, message, details)
}

// NewInvalidStateError creates an error for a transition the entity's
// current state disallows.
func NewInvalidStateError(message string, details ...string) *AppError {
	return newError(ErrorTypeInvalidState, message, details)
}

// NewAuditUnavailableError creates an error for audit-storage failures.
func NewAuditUnavailableError(message string, details ...string) *AppError {
	return newError(ErrorTypeAuditUnavailable, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, message, details)
}

func newError(errType ErrorType, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Details: detail,
	}
}

// IsNotFound reports whether err is (or wraps) a not-found AppError.
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsInvalidState reports whether err is (or wraps) an invalid-state AppError.
func IsInvalidState(err error) bool {
	return isType(err, ErrorTypeInvalidState)
}

// IsAuditUnavailable reports whether err is (or wraps) an audit-unavailable AppError.
func IsAuditUnavailable(err error) bool {
	return isType(err, ErrorTypeAuditUnavailable)
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
