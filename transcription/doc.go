// Package transcription forwards transcription requests to the upstream
// speech service and normalizes its replies.
//
// A request is built from raw audio and a Model into an OutboundRequest
// with a fixed parameter set. The Forwarder submits it as JSON and, when
// the upstream rejects the encoding with 400 or 415, once more as a form.
// The reply is reduced to plain text or classified into an Outcome, which
// the Service maps to an errors.AppError.
//
//	svc := transcription.NewService(cache, forwarder, log, metrics)
//	res, err := svc.Transcribe(ctx, "transcribe", audio)
package transcription
