package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures by how the engine is allowed to react to
// them: transport failures are swallowed, template failures propagate,
// persistence failures propagate from loads and are logged from per-user
// writes, scheduling failures are logged only.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeTransport   ErrorType = "TRANSPORT"
	ErrorTypeTemplate    ErrorType = "TEMPLATE"
	ErrorTypePersistence ErrorType = "PERSISTENCE"
	ErrorTypeScheduling  ErrorType = "SCHEDULING"
	ErrorTypeInternal    ErrorType = "INTERNAL"
)

// AppError is the application error carried across layer boundaries.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewTransportError creates a best-effort delivery error (push, SMS)
func NewTransportError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeTransport, Message: message, Cause: cause}
}

// NewTemplateError creates a template-fetch or email-delivery error;
// these must surface to the caller of the email branch.
func NewTemplateError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeTemplate, Message: message, Cause: cause}
}

// NewPersistenceError creates a storage error
func NewPersistenceError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypePersistence, Message: message, Cause: cause}
}

// NewSchedulingError creates a deferred-invocation scheduling error
func NewSchedulingError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeScheduling, Message: message, Cause: cause}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Cause: cause}
}

// IsType checks whether err (or anything it wraps) is an AppError of the
// given type.
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetType extracts the error type, defaulting to INTERNAL for plain errors.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
