package transcription

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/voxrelay/endpoint"
	apperrors "github.com/kbukum/voxrelay/errors"
	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/observability"
)

const (
	msgUpstreamError = "Transcription service error"
	msgShapeMismatch = "Unexpected response shape from transcription service"
	msgTimeout       = "Transcription service timed out"
	msgUnreachable   = "Failed to connect to the transcription service"
)

// Resolver provides the current upstream address.
type Resolver interface {
	Current() (endpoint.Address, bool)
}

// Sender forwards an outbound request to an address.
type Sender interface {
	Forward(ctx context.Context, addr endpoint.Address, req *OutboundRequest) Outcome
}

// Result is a successful transcription.
type Result struct {
	Text     string
	Model    Model
	Encoding Encoding
	Attempts int
}

// Service validates requests, forwards them and maps outcomes to
// application errors.
type Service struct {
	resolver Resolver
	sender   Sender
	log      *logger.Logger
	metrics  *observability.Metrics
}

// NewService creates a Service. metrics may be nil.
func NewService(resolver Resolver, sender Sender, log *logger.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		resolver: resolver,
		sender:   sender,
		log:      log.WithComponent("transcription"),
		metrics:  metrics,
	}
}

// Endpoint returns the current upstream address.
func (s *Service) Endpoint() (endpoint.Address, bool) {
	return s.resolver.Current()
}

// Transcribe forwards audio to the upstream pipeline named by modelName.
// Cancellation of ctx is not passed upstream; each attempt is bounded by
// the forwarder timeout only.
func (s *Service) Transcribe(ctx context.Context, modelName string, audio []byte) (*Result, error) {
	addr, ok := s.resolver.Current()
	if !ok {
		s.metrics.RecordOutcome(ctx, modelName, KindNotReady.String())
		return nil, apperrors.NotReady("Upstream endpoint")
	}

	if modelName == "" || len(audio) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeMissingField, ErrMissingInput, http.StatusBadRequest)
	}
	model, err := ParseModel(modelName)
	if err != nil {
		return nil, err
	}
	req, err := NewOutboundRequest(model, audio)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "transcription.Transcribe")
	out := s.sender.Forward(context.WithoutCancel(ctx), addr, req)
	appErr := toAppError(out)
	var spanErr error
	if appErr != nil {
		spanErr = appErr
	}
	observability.EndSpan(span, spanErr)
	s.metrics.RecordOutcome(ctx, string(model), out.Kind.String())

	if appErr != nil {
		s.log.WithContext(ctx).Warn("Transcription failed", logger.Fields(
			logger.FieldModel, string(model),
			"outcome", out.Kind.String(),
			"attempts", out.Attempts,
			logger.FieldStatus, out.Status,
		))
		return nil, appErr
	}

	s.log.WithContext(ctx).Info("Transcription completed", logger.Fields(
		logger.FieldModel, string(model),
		logger.FieldEncoding, string(out.Encoding),
		"attempts", out.Attempts,
	))
	return &Result{Text: out.Text, Model: model, Encoding: out.Encoding, Attempts: out.Attempts}, nil
}

// toAppError maps a non-success outcome. Errors from the form attempt are
// suffixed so the caller can tell which encoding failed.
func toAppError(out Outcome) *apperrors.AppError {
	suffix := ""
	if out.Encoding == EncodingForm {
		suffix = " (form)"
	}
	switch out.Kind {
	case KindSuccess:
		return nil
	case KindNotReady:
		return apperrors.NotReady("Upstream endpoint")
	case KindUpstreamError:
		return apperrors.UpstreamStatus(msgUpstreamError+suffix, out.Status, out.Body).WithCause(out.Err)
	case KindShapeMismatch:
		return apperrors.ShapeMismatch(msgShapeMismatch+suffix, out.Status, out.Body)
	case KindTimeout:
		return apperrors.Timeout(msgTimeout).WithCause(out.Err)
	case KindUnreachable:
		return apperrors.Unreachable(fmt.Sprintf("%s: %v", msgUnreachable, out.Err), out.Err)
	default:
		return apperrors.Internal(fmt.Errorf("unknown outcome %s", out.Kind))
	}
}
