package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON body returned to clients on failure.
type ErrorResponse struct {
	Error          string         `json:"error"`
	Code           ErrorCode      `json:"code"`
	Retryable      bool           `json:"retryable,omitempty"`
	UpstreamStatus *int           `json:"upstream_status,omitempty"`
	UpstreamBody   any            `json:"upstream_body,omitempty"`
	Details        map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	resp := ErrorResponse{
		Error:     e.Message,
		Code:      e.Code,
		Retryable: e.Retryable,
		Details:   e.Details,
	}
	if e.Upstream != nil {
		status := e.Upstream.Status
		resp.UpstreamStatus = &status
		resp.UpstreamBody = e.Upstream.Body
	}
	return resp
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Wrap returns err as an AppError, classifying anything else as internal.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
