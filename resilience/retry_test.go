package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestRetry(t *testing.T) {
	errTemp := errors.New("temporary")

	tests := []struct {
		name      string
		failUntil int
		attempts  int
		wantCalls int
		wantErr   bool
	}{
		{"first attempt", 0, 3, 1, false},
		{"after retries", 2, 3, 3, false},
		{"exhausted", 5, 3, 3, true},
		{"single attempt", 1, 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			v, err := Retry(context.Background(), fastConfig(tt.attempts), func(context.Context) (string, error) {
				calls++
				if calls <= tt.failUntil {
					return "", errTemp
				}
				return "ok", nil
			})
			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
			if tt.wantErr {
				if !errors.Is(err, errTemp) {
					t.Errorf("expected last error, got %v", err)
				}
				return
			}
			if err != nil || v != "ok" {
				t.Errorf("got %q, %v", v, err)
			}
		})
	}
}

func TestRetry_RetryIfStops(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastConfig(5)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	err := RetryFunc(context.Background(), cfg, func(context.Context) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("expected one call with permanent error, got %d, %v", calls, err)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Hour, MaxBackoff: time.Hour}
	cfg.OnRetry = func(int, error, time.Duration) { cancel() }

	err := RetryFunc(ctx, cfg, func(context.Context) error { return errors.New("down") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff_Capped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffFactor: 2}
	cfg.ApplyDefaults()
	for attempt, want := range map[int]time.Duration{1: time.Second, 2: 2 * time.Second, 3: 3 * time.Second, 6: 3 * time.Second} {
		if got := cfg.backoff(attempt); got != want {
			t.Errorf("attempt %d: expected %v, got %v", attempt, want, got)
		}
	}
}
