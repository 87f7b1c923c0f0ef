package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voxrelay/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func checker(statuses ...component.HealthStatus) HealthChecker {
	return func(context.Context) []component.Health {
		out := make([]component.Health, len(statuses))
		for i, s := range statuses {
			out[i] = component.Health{Name: "c", Status: s}
		}
		return out
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checker    HealthChecker
		wantStatus string
		wantCode   int
	}{
		{"no checker", nil, "healthy", http.StatusOK},
		{"all healthy", checker(component.StatusHealthy), "healthy", http.StatusOK},
		{"degraded", checker(component.StatusHealthy, component.StatusDegraded), "degraded", http.StatusOK},
		{"unhealthy wins", checker(component.StatusDegraded, component.StatusUnhealthy), "unhealthy", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", Health("svc", tt.checker))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body["status"] != tt.wantStatus || body["service"] != "svc" {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	r := gin.New()
	r.GET("/ready", Readiness("svc", checker(component.StatusDegraded)))
	r.GET("/down", Readiness("svc", checker(component.StatusUnhealthy)))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("degraded should be ready, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", http.NoBody))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy should not be ready, got %d", rec.Code)
	}
}

func TestLiveness(t *testing.T) {
	r := gin.New()
	r.GET("/alive", Liveness("svc"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alive", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestVersion(t *testing.T) {
	r := gin.New()
	r.GET("/version", Version("voxrelay"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Service string `json:"service"`
		Build   struct {
			Version string `json:"version"`
		} `json:"build"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Service != "voxrelay" || body.Build.Version == "" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
