// Package resilience provides retry with exponential backoff for calls to
// backing services that may not be reachable yet.
package resilience
