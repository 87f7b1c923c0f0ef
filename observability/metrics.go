package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the relay's OpenTelemetry instruments. A nil *Metrics
// records nothing.
type Metrics struct {
	attempts        metric.Int64Counter
	attemptDuration metric.Float64Histogram
	outcomes        metric.Int64Counter
	refreshes       metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	attempts, err := meter.Int64Counter("voxrelay.upstream.attempts",
		metric.WithDescription("Upstream submission attempts by encoding and result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxrelay.upstream.attempts counter: %w", err)
	}

	attemptDuration, err := meter.Float64Histogram("voxrelay.upstream.duration",
		metric.WithDescription("Duration of upstream submission attempts"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxrelay.upstream.duration histogram: %w", err)
	}

	outcomes, err := meter.Int64Counter("voxrelay.transcriptions",
		metric.WithDescription("Transcription requests by final outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxrelay.transcriptions counter: %w", err)
	}

	refreshes, err := meter.Int64Counter("voxrelay.endpoint.refreshes",
		metric.WithDescription("Endpoint registry refreshes by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxrelay.endpoint.refreshes counter: %w", err)
	}

	return &Metrics{
		attempts:        attempts,
		attemptDuration: attemptDuration,
		outcomes:        outcomes,
		refreshes:       refreshes,
	}, nil
}

// RecordAttempt records one upstream attempt.
func (m *Metrics) RecordAttempt(ctx context.Context, model, encoding, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("encoding", encoding),
		attribute.String("result", result),
	))
	m.attemptDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("encoding", encoding),
	))
}

// RecordOutcome records the final outcome of a transcription request.
func (m *Metrics) RecordOutcome(ctx context.Context, model, outcome string) {
	if m == nil {
		return
	}
	m.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("outcome", outcome),
	))
}

// RecordRefresh records one endpoint registry refresh.
func (m *Metrics) RecordRefresh(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.refreshes.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
