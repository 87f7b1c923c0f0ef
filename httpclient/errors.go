package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the request exceeded its deadline.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a transport failure (refused, DNS, reset).
	ErrCodeConnection
	// ErrCodeNotFound indicates a 404 response.
	ErrCodeNotFound
	// ErrCodeClient indicates any other 4xx response.
	ErrCodeClient
	// ErrCodeServer indicates a 5xx response.
	ErrCodeServer
	// ErrCodeValidation indicates the request could not be built.
	ErrCodeValidation
	// ErrCodeUnexpected indicates a non-2xx status outside 4xx/5xx.
	ErrCodeUnexpected
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	case ErrCodeValidation:
		return "validation"
	default:
		return "unexpected"
	}
}

// Error is a classified HTTP client error.
type Error struct {
	// StatusCode is the HTTP status code (0 for transport errors).
	StatusCode int
	Code       ErrorCode
	Message    string
	// Body is the response body for status errors.
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewValidationError creates a request-building error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode converts a status code into a typed error, nil for 2xx.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	e := &Error{StatusCode: statusCode, Message: fmt.Sprintf("HTTP %d", statusCode), Body: body}
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 404:
		e.Code = ErrCodeNotFound
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeClient
	case statusCode >= 500:
		e.Code = ErrCodeServer
	default:
		e.Code = ErrCodeUnexpected
	}
	return e
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsNotFound checks if an error is a 404 error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
