package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/voxrelay/errors"
	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/registry"
	"github.com/kbukum/voxrelay/server"
	"github.com/kbukum/voxrelay/validation"
)

// SetEndpointRequest is the body of POST /set_ngrok_url.
type SetEndpointRequest struct {
	URL string `json:"ngrok_url" validate:"required,httpurl"`
}

// SetEndpointResponse confirms an update.
type SetEndpointResponse struct {
	URL    string `json:"ngrok_url"`
	Status string `json:"status"`
}

// RegistryHandler serves the registry API backed by a Store.
type RegistryHandler struct {
	store registry.Store
	log   *logger.Logger
}

// NewRegistryHandler creates the registry handler.
func NewRegistryHandler(store registry.Store, log *logger.Logger) *RegistryHandler {
	return &RegistryHandler{store: store, log: log.WithComponent("registry-api")}
}

// Register mounts the registry routes on r.
func (h *RegistryHandler) Register(r gin.IRouter) {
	r.GET("/", h.Status)
	r.GET("/get_ngrok_url", h.Get)
	r.POST("/set_ngrok_url", h.Set)
}

// Status answers {"status":"ok"}.
func (h *RegistryHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get returns the stored URL or 404.
func (h *RegistryHandler) Get(c *gin.Context) {
	url, err := h.store.Get(c.Request.Context())
	if errors.Is(err, registry.ErrNotFound) || (err == nil && strings.TrimSpace(url) == "") {
		server.RespondWithError(c, apperrors.NotFound("ngrok_url"))
		return
	}
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, EndpointResponse{URL: url})
}

// Set validates and stores a new URL.
func (h *RegistryHandler) Set(c *gin.Context) {
	var req SetEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Request body must be a JSON object").WithCause(err))
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.store.Set(c.Request.Context(), req.URL); err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	h.log.WithContext(c.Request.Context()).Info("Endpoint updated", logger.Fields(logger.FieldEndpoint, req.URL))
	c.JSON(http.StatusOK, SetEndpointResponse{URL: req.URL, Status: "updated"})
}
