// Package observability wires OpenTelemetry metrics and tracing (OTLP over
// HTTP) and a Prometheus collector for HTTP traffic.
//
// Forwarding instruments live in Metrics; spans are started with StartSpan.
// Both work against the global no-op providers until Init* is called, so
// callers never need to check whether telemetry is enabled.
package observability
