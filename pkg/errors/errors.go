package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeInvalidFormat ErrorType = "invalid_format"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeExtraction    ErrorType = "extraction"
	ErrorTypeStorage       ErrorType = "storage"
	ErrorTypeTooLarge      ErrorType = "too_large"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause attaches cause so errors.Is can match it, without changing the
// client-facing message.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewInvalidFormatError is returned for missing or unsupported file formats.
func NewInvalidFormatError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeInvalidFormat,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewExtractionError wraps a parser failure. The cause text is part of Message
// so clients see what went wrong.
func NewExtractionError(message string, cause error) *AppError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &AppError{
		Type:       ErrorTypeExtraction,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewStorageError creates a new disk write/read error
func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewTooLargeError creates a new request-size error
func NewTooLargeError(message string, limit int64) *AppError {
	return &AppError{
		Type:       ErrorTypeTooLarge,
		Message:    message,
		Details:    fmt.Sprintf("limit %d bytes", limit),
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := As(err); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// ClientMessage returns the text to show an API client. Internal errors are
// reduced to a generic message.
func ClientMessage(err error) string {
	appErr, ok := As(err)
	if !ok || appErr.Type == ErrorTypeInternal {
		return "Internal server error"
	}
	return appErr.Message
}
