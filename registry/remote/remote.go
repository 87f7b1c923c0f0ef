// Package remote reads and writes the endpoint through the registry HTTP
// API served by cmd/registryd.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/voxrelay/httpclient"
	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/registry"
)

const (
	getPath = "/get_ngrok_url"
	setPath = "/set_ngrok_url"
)

func init() {
	registry.RegisterFactory(registry.ProviderRemote, func(_ context.Context, cfg registry.Config, _ *logger.Logger) (registry.Store, error) {
		return New(cfg.Remote)
	})
}

type urlBody struct {
	URL string `json:"ngrok_url"`
}

// Store talks to a registry API.
type Store struct {
	client *httpclient.Adapter
}

var _ registry.Store = (*Store)(nil)

// New creates a Store for the API at cfg.URL.
func New(cfg registry.RemoteConfig, opts ...httpclient.Option) (*Store, error) {
	client, err := httpclient.New(httpclient.Config{
		BaseURL: strings.TrimRight(cfg.URL, "/"),
		Timeout: cfg.Timeout,
		Headers: map[string]string{"Accept": "application/json"},
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("remote registry: %w", err)
	}
	return &Store{client: client}, nil
}

// Get fetches the endpoint. 404 and 503 mean nothing is stored.
func (s *Store) Get(ctx context.Context) (string, error) {
	resp, err := s.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: getPath})
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusNotFound, http.StatusServiceUnavailable:
			return "", registry.ErrNotFound
		}
		return "", fmt.Errorf("remote registry get: %w", err)
	}

	var body urlBody
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", fmt.Errorf("remote registry get: decoding response: %w", err)
	}
	if strings.TrimSpace(body.URL) == "" {
		return "", registry.ErrNotFound
	}
	return body.URL, nil
}

// Set stores the endpoint.
func (s *Store) Set(ctx context.Context, value string) error {
	_, err := s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   setPath,
		Body:   urlBody{URL: value},
	})
	if err != nil {
		return fmt.Errorf("remote registry set: %w", err)
	}
	return nil
}

// Ping checks that the API answers its status route.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/"}); err != nil {
		return fmt.Errorf("remote registry ping: %w", err)
	}
	return nil
}

// Close releases idle connections.
func (s *Store) Close(context.Context) error {
	s.client.Close()
	return nil
}
