package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Availability errors
const (
	// ErrCodeNotReady indicates the upstream endpoint has not been resolved yet.
	ErrCodeNotReady ErrorCode = "NOT_READY"
	// ErrCodeServiceUnavailable indicates a dependency is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Upstream errors
const (
	// ErrCodeUpstreamStatus indicates the upstream answered with a non-success status.
	ErrCodeUpstreamStatus ErrorCode = "UPSTREAM_STATUS"
	// ErrCodeShapeMismatch indicates the upstream answered successfully with an unknown body shape.
	ErrCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"
	// ErrCodeUpstreamUnreachable indicates the upstream could not be contacted.
	ErrCodeUpstreamUnreachable ErrorCode = "UPSTREAM_UNREACHABLE"
)

// Request errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// ErrCodeInternal indicates an unclassified server error.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeNotReady:            true,
	ErrCodeServiceUnavailable:  true,
	ErrCodeTimeout:             true,
	ErrCodeUpstreamUnreachable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
