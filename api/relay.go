package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voxrelay/endpoint"
	apperrors "github.com/kbukum/voxrelay/errors"
	"github.com/kbukum/voxrelay/server"
	"github.com/kbukum/voxrelay/transcription"
	"github.com/kbukum/voxrelay/validation"
)

// urlNotAvailable is the placeholder returned before an endpoint is known.
const urlNotAvailable = "URL not available"

// Transcriber is the transcription facade used by the relay.
type Transcriber interface {
	Transcribe(ctx context.Context, model string, audio []byte) (*transcription.Result, error)
	Endpoint() (endpoint.Address, bool)
}

// TranscribeRequest is the body of POST /transcribe-audio. Audio may be
// sent as audio_base64 or audio.
type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64" validate:"omitempty,base64"`
	Audio       string `json:"audio" validate:"omitempty,base64"`
	Model       string `json:"model" validate:"max=64"`
}

func (r TranscribeRequest) audio() string {
	if r.AudioBase64 != "" {
		return r.AudioBase64
	}
	return r.Audio
}

// TranscribeResponse is the success body of POST /transcribe-audio.
type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}

// EndpointResponse carries the upstream URL.
type EndpointResponse struct {
	URL string `json:"ngrok_url"`
}

// RelayHandler serves the relay routes.
type RelayHandler struct {
	svc     Transcriber
	name    string
	started time.Time
}

// NewRelayHandler creates the relay handler.
func NewRelayHandler(svc Transcriber, serviceName string) *RelayHandler {
	return &RelayHandler{svc: svc, name: serviceName, started: time.Now()}
}

// Register mounts the relay routes on r.
func (h *RelayHandler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.POST("/transcribe-audio", h.Transcribe)
	r.GET("/get_ngrok_url", h.GetEndpoint)
}

// Index reports service status and the supported models.
func (h *RelayHandler) Index(c *gin.Context) {
	_, known := h.svc.Endpoint()
	c.JSON(http.StatusOK, gin.H{
		"service":        h.name,
		"status":         "ok",
		"endpoint_known": known,
		"models":         transcription.Models(),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// Transcribe handles POST /transcribe-audio.
func (h *RelayHandler) Transcribe(c *gin.Context) {
	if _, ok := h.svc.Endpoint(); !ok {
		server.RespondWithError(c, apperrors.NotReady("Upstream endpoint"))
		return
	}

	var req TranscribeRequest
	// A malformed body is handled like an empty one.
	_ = c.ShouldBindJSON(&req)

	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	var audio []byte
	if encoded := strings.TrimSpace(req.audio()); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			server.RespondWithError(c, apperrors.InvalidInput("audio_base64", "must be base64 encoded"))
			return
		}
		audio = decoded
	}

	res, err := h.svc.Transcribe(c.Request.Context(), req.Model, audio)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TranscribeResponse{Transcription: res.Text})
}

// GetEndpoint returns the cached upstream URL, or 503 before the first
// successful refresh.
func (h *RelayHandler) GetEndpoint(c *gin.Context) {
	addr, ok := h.svc.Endpoint()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, EndpointResponse{URL: urlNotAvailable})
		return
	}
	c.JSON(http.StatusOK, EndpointResponse{URL: addr.String()})
}
