package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/voxrelay/registry"
)

type fakeAPI struct {
	mu     sync.Mutex
	value  string
	status int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/get_ngrok_url":
		if f.value == "" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"URL not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"ngrok_url": f.value})
	case r.Method == http.MethodPost && r.URL.Path == "/set_ngrok_url":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.value = body["ngrok_url"]
		_ = json.NewEncoder(w).Encode(map[string]string{"ngrok_url": f.value, "status": "updated"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newStore(t *testing.T, api *fakeAPI) *Store {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	s, err := New(registry.RemoteConfig{URL: srv.URL + "/", Timeout: time.Second})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	api := &fakeAPI{}
	s := newStore(t, api)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := s.Get(ctx); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "https://abc.ngrok.app"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx)
	if err != nil || got != "https://abc.ngrok.app" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestStore_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		wantNotFound bool
	}{
		{"service unavailable", http.StatusServiceUnavailable, true},
		{"server error", http.StatusInternalServerError, false},
		{"bad gateway", http.StatusBadGateway, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, &fakeAPI{status: tt.status})
			_, err := s.Get(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, registry.ErrNotFound) != tt.wantNotFound {
				t.Errorf("ErrNotFound = %v, want %v (err: %v)", !tt.wantNotFound, tt.wantNotFound, err)
			}
		})
	}
}

func TestStore_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	s, _ := New(registry.RemoteConfig{URL: addr, Timeout: time.Second})
	if _, err := s.Get(context.Background()); err == nil || errors.Is(err, registry.ErrNotFound) {
		t.Errorf("expected transport error, got %v", err)
	}
}
