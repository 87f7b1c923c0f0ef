package transcription

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/voxrelay/endpoint"
	"github.com/kbukum/voxrelay/httpclient"
	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/observability"
)

// Forwarder submits outbound requests to the upstream service.
type Forwarder struct {
	client  *httpclient.Adapter
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewForwarder creates a Forwarder. metrics may be nil.
func NewForwarder(cfg Config, log *logger.Logger, metrics *observability.Metrics, opts ...httpclient.Option) (*Forwarder, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{
		Timeout:          cfg.Timeout,
		MaxResponseBytes: cfg.MaxResponseBytes,
		Headers:          map[string]string{"Accept": "application/json"},
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Forwarder{client: client, log: log.WithComponent("forwarder"), metrics: metrics}, nil
}

// shouldFallback reports whether a status means the upstream rejected the
// body encoding rather than the request.
func shouldFallback(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusUnsupportedMediaType
}

// Forward posts req to addr as JSON and, if the upstream answers 400 or
// 415, once more as a form. At most two calls are made.
func (f *Forwarder) Forward(ctx context.Context, addr endpoint.Address, req *OutboundRequest) Outcome {
	target := addr.Join(req.Model().Path())

	out, fallback := f.attempt(ctx, target, req, EncodingJSON, req)
	if !fallback {
		out.Attempts = 1
		return out
	}

	f.log.WithContext(ctx).Info("Upstream rejected JSON body, retrying as form", logger.Fields(
		logger.FieldModel, string(req.Model()),
		logger.FieldStatus, out.Status,
	))
	out, _ = f.attempt(ctx, target, req, EncodingForm, httpclient.Form(req.Form()))
	out.Attempts = 2
	return out
}

func (f *Forwarder) attempt(ctx context.Context, target string, req *OutboundRequest, enc Encoding, body any) (Outcome, bool) {
	ctx, span := observability.StartSpan(ctx, "transcription.upstream",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("voxrelay.model", string(req.Model())),
			attribute.String("voxrelay.encoding", string(enc)),
			attribute.String("url.full", target),
		),
	)

	start := time.Now()
	resp, err := f.client.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: target, Body: body})
	d := time.Since(start)

	out, fallback := classify(resp, err, enc)
	if out.Status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", out.Status))
	}
	observability.EndSpan(span, out.Err)

	result := out.Kind.String()
	if out.Status != 0 {
		result = statusClass(out.Status)
	}
	f.metrics.RecordAttempt(ctx, string(req.Model()), string(enc), result, d)

	fields := logger.Fields(
		logger.FieldModel, string(req.Model()),
		logger.FieldEncoding, string(enc),
		logger.FieldStatus, out.Status,
		logger.FieldDuration, d.Milliseconds(),
		"outcome", out.Kind.String(),
	)
	log := f.log.WithContext(ctx)
	if out.Err != nil {
		fields[logger.FieldError] = out.Err.Error()
		log.Warn("Upstream attempt failed", fields)
	} else {
		log.Debug("Upstream attempt completed", fields)
	}
	return out, fallback && enc == EncodingJSON
}

// classify turns a transport result into an Outcome. The second return
// reports whether the status allows a fallback attempt.
func classify(resp *httpclient.Response, err error, enc Encoding) (Outcome, bool) {
	out := Outcome{Encoding: enc}
	if resp == nil {
		out.Err = err
		if httpclient.IsTimeout(err) {
			out.Kind = KindTimeout
		} else {
			out.Kind = KindUnreachable
		}
		return out, false
	}

	reply := ParseReply(resp.Body)
	out.Status = resp.StatusCode
	if !resp.IsSuccess() {
		out.Kind = KindUpstreamError
		out.Body = reply.Body
		out.Err = err
		return out, shouldFallback(resp.StatusCode)
	}

	if text, ok := reply.Text(); ok {
		out.Kind = KindSuccess
		out.Text = text
		return out, false
	}
	out.Kind = KindShapeMismatch
	out.Body = reply.Body
	return out, false
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
