package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status code returned to the client.
	HTTPStatus int `json:"-"`
	// Upstream carries the upstream status and body for classified upstream failures.
	Upstream *UpstreamDetail `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// UpstreamDetail is the upstream response echoed back for diagnosis.
type UpstreamDetail struct {
	Status int
	// Body is the decoded JSON body, or the raw text when it was not JSON.
	Body any
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// NotReady is returned before the first successful endpoint resolution.
func NotReady(what string) *AppError {
	return &AppError{
		Code: ErrCodeNotReady, Message: fmt.Sprintf("%s is not yet available.", what),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
	}
}

// ServiceUnavailable creates an error for a dependency that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// Timeout creates an error for an operation that exceeded its deadline.
func Timeout(message string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: message,
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
	}
}

// UpstreamStatus creates an error for an upstream non-success status.
func UpstreamStatus(message string, status int, body any) *AppError {
	return &AppError{
		Code: ErrCodeUpstreamStatus, Message: message,
		HTTPStatus: http.StatusBadGateway,
		Upstream:   &UpstreamDetail{Status: status, Body: body},
	}
}

// ShapeMismatch creates an error for a successful upstream reply without usable text.
func ShapeMismatch(message string, status int, body any) *AppError {
	return &AppError{
		Code: ErrCodeShapeMismatch, Message: message,
		HTTPStatus: http.StatusBadGateway,
		Upstream:   &UpstreamDetail{Status: status, Body: body},
	}
}

// Unreachable creates an error for an upstream that could not be contacted.
func Unreachable(message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUpstreamUnreachable, Message: message,
		HTTPStatus: http.StatusBadGateway, Retryable: true, Cause: cause,
	}
}

// NotFound creates an error for a resource that was not found.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// Validation creates an error for input that failed validation.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidInput creates an error for a single invalid field.
func InvalidInput(field, reason string) *AppError {
	e := &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest,
	}
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// MissingField creates an error for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// Internal creates an error for an unclassified server failure.
func Internal(cause error) *AppError {
	msg := "Unexpected server error"
	if cause != nil {
		msg = fmt.Sprintf("Unexpected server error: %v", cause)
	}
	return &AppError{
		Code: ErrCodeInternal, Message: msg,
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
