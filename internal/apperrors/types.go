// Package apperrors defines the gateway's error taxonomy. Upstream failures
// are translated once, at the client boundary, and carried to the handler
// layer with their HTTP status attached.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeRateLimit     ErrorType = "RATE_LIMIT_ERROR"
	ErrorTypeUpstream      ErrorType = "UPSTREAM_ERROR"
	ErrorTypeUnavailable   ErrorType = "UPSTREAM_UNAVAILABLE"
	ErrorTypeSerialization ErrorType = "SERIALIZATION_ERROR"
)

// Error is a structured application error with the HTTP status it maps to.
type Error struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	Err        error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the caller may reasonably retry the request.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeUnavailable:
		return true
	case ErrorTypeUpstream:
		return e.StatusCode >= 500
	default:
		return false
	}
}

func NewValidation(message string) *Error {
	return &Error{Type: ErrorTypeValidation, Message: message, StatusCode: http.StatusBadRequest}
}

func NewNotFound(message string) *Error {
	return &Error{Type: ErrorTypeNotFound, Message: message, StatusCode: http.StatusNotFound}
}

func NewRateLimit(message string) *Error {
	return &Error{Type: ErrorTypeRateLimit, Message: message, StatusCode: http.StatusTooManyRequests}
}

func NewUpstream(message string, err error) *Error {
	return &Error{Type: ErrorTypeUpstream, Message: message, StatusCode: http.StatusServiceUnavailable, Err: err}
}

func NewUnavailable(message string, err error) *Error {
	return &Error{Type: ErrorTypeUnavailable, Message: message, StatusCode: http.StatusServiceUnavailable, Err: err}
}

func NewSerialization(message string, err error) *Error {
	return &Error{Type: ErrorTypeSerialization, Message: message, StatusCode: http.StatusInternalServerError, Err: err}
}

// StatusFor extracts the HTTP status for an error, defaulting to 500.
func StatusFor(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
