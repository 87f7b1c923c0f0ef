package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestAdapter_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/get_ngrok_url" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("v") != "1" {
			t.Errorf("expected query v=1, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ngrok_url":"https://abc.ngrok.app"}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/get_ngrok_url",
		Query:  map[string]string{"v": "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("unexpected headers %v", resp.Headers)
	}
	if !strings.Contains(string(resp.Body), "abc.ngrok.app") {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestAdapter_Do_JSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["num_beams"] != float64(1) {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := New(Config{})
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   srv.URL + "/transcribe",
		Body:   map[string]any{"num_beams": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_FormBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("use_chunked") != "true" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
	}))
	defer srv.Close()

	c, _ := New(Config{})
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   srv.URL,
		Body:   Form(url.Values{"use_chunked": {"true"}}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_StatusErrorKeepsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		_, _ = w.Write([]byte("use form"))
	}))
	defer srv.Close()

	c, _ := New(Config{})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: srv.URL, Body: "x"})
	if err == nil {
		t.Fatal("expected status error")
	}
	if resp == nil || resp.StatusCode != http.StatusUnsupportedMediaType || string(resp.Body) != "use form" {
		t.Fatalf("expected response alongside error, got %+v", resp)
	}
	if StatusCode(err) != http.StatusUnsupportedMediaType {
		t.Errorf("expected status 415 on error, got %d", StatusCode(err))
	}
}

func TestAdapter_Do_ClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, _ := New(Config{Timeout: 50 * time.Millisecond})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestAdapter_Do_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c, _ := New(Config{Timeout: time.Second})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: addr})
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAdapter_MaxResponseBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("a", 100))
	}))
	defer srv.Close()

	c, _ := New(Config{MaxResponseBytes: 10})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Body) != 10 {
		t.Errorf("expected 10 bytes, got %d", len(resp.Body))
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
		isNil  bool
	}{
		{200, 0, true},
		{204, 0, true},
		{400, ErrCodeClient, false},
		{404, ErrCodeNotFound, false},
		{415, ErrCodeClient, false},
		{503, ErrCodeServer, false},
		{302, ErrCodeUnexpected, false},
	}
	for _, tt := range tests {
		err := ClassifyStatusCode(tt.status, nil)
		if tt.isNil {
			if err != nil {
				t.Errorf("status %d: expected nil, got %v", tt.status, err)
			}
			continue
		}
		if err == nil || err.Code != tt.want {
			t.Errorf("status %d: expected %s, got %v", tt.status, tt.want, err)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if err := (&Config{Timeout: time.Second, MaxResponseBytes: -1}).Validate(); err == nil {
		t.Error("expected error for negative max_response_bytes")
	}
}
