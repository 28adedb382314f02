package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures so callers can pick a fallback or a status code
type ErrorType string

const (
	// ErrorTypeValidation is user input that cannot be processed (400)
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUpstream is a failed or rejected call to the completion service
	ErrorTypeUpstream ErrorType = "UPSTREAM"

	// ErrorTypeParse is a model response without a usable JSON object
	ErrorTypeParse ErrorType = "PARSE"

	// ErrorTypeDatastore is a failed property query
	ErrorTypeDatastore ErrorType = "DATASTORE"

	// ErrorTypeInternal is anything not absorbed by a stage fallback (500)
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewUpstreamError creates a new completion service error
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeUpstream, Message: message, Err: err}
}

// NewParseError creates a new model-output parse error
func NewParseError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParse, Message: message, Err: err}
}

// NewDatastoreError creates a new datastore error
func NewDatastoreError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeDatastore, Message: message, Err: err}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// TypeOf returns the type of the first AppError in err's chain, or
// ErrorTypeInternal when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries an AppError of type t
func IsType(err error, t ErrorType) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
