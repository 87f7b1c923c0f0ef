// Package server provides the HTTP server shared by the relay and the
// registry API: a Gin engine behind an h2c handler with lifecycle
// management through the component package.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery answering with the standard error body
//   - RequestID: request ID generation and propagation into the logger context
//   - CORS: cross-origin headers and preflight handling
//   - BodySizeLimit: request body size limits
//   - RequestLogger: request logging with duration tracking
//   - Metrics: Prometheus request counters and latency histograms
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /alive: liveness probe
//   - /ready: readiness probe
//   - /metrics: Prometheus exposition
package server
