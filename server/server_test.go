package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/voxrelay/errors"
	"github.com/kbukum/voxrelay/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.MaxBodySize != "64MB" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.WriteTimeout < 120*time.Second {
		t.Errorf("write timeout %s shorter than upstream timeout", cfg.WriteTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"port", Config{Port: 70000}},
		{"timeout", Config{ReadTimeout: -time.Second}},
		{"body size", Config{MaxBodySize: "lots"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"app error", apperrors.Timeout("Transcription service timed out"), http.StatusGatewayTimeout, "TIMEOUT"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"upstream", apperrors.UpstreamStatus("Transcription service error", 500, "bad"), http.StatusBadGateway, "UPSTREAM_STATUS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			RespondWithError(c, tt.err)

			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body["code"] != tt.wantBody {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

func TestServer_Lifecycle(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	cfg.Port = 0

	s := New(cfg, logger.Nop())
	s.ApplyDefaults("test", nil)
	s.Engine().GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	comp := NewComponent(s)
	if h := comp.Health(context.Background()); h.Status != "unhealthy" {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = comp.Stop(context.Background()) }()

	resp, err := http.Get("http://" + s.Addr() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("expected request id header")
	}

	resp, err = http.Get("http://" + s.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected metrics 200, got %d", resp.StatusCode)
	}

	if h := comp.Health(context.Background()); h.Status != "healthy" {
		t.Errorf("expected healthy, got %s", h.Status)
	}
}
