// Package errors provides the application error type shared by the relay
// and registry services: machine-readable codes, HTTP status mapping,
// retryable detection and the JSON error body sent to clients.
package errors
