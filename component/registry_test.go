package component

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}
func (m *mockComponent) Stop(context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return m.stopErr
}
func (m *mockComponent) Health(context.Context) Health { return m.health }

func TestRegisterDuplicate(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	if err := r.Register(&mockComponent{name: "mongo", events: &events}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "mongo", events: &events}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestStartStopOrder(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	for _, name := range []string{"registry", "endpoint", "server"} {
		_ = r.Register(&mockComponent{name: name, events: &events})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := "start:registry,start:endpoint,start:server,stop:server,stop:endpoint,stop:registry"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("unexpected order:\n got %s\nwant %s", got, want)
	}
}

func TestStartFailureStopsStarted(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", events: &events})
	_ = r.Register(&mockComponent{name: "b", events: &events, startErr: fmt.Errorf("boom")})
	_ = r.Register(&mockComponent{name: "c", events: &events})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start b") {
		t.Fatalf("expected start failure for b, got %v", err)
	}
	want := "start:a,start:b,stop:a"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("unexpected events %s, want %s", got, want)
	}
}

func TestStopAllCollectsErrors(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", events: &events, stopErr: fmt.Errorf("x")})
	_ = r.Register(&mockComponent{name: "b", events: &events, stopErr: fmt.Errorf("y")})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !strings.Contains(err.Error(), "stop a") || !strings.Contains(err.Error(), "stop b") {
		t.Errorf("expected both failures, got %v", err)
	}
}

func TestHealthAllAndGet(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", events: &events, health: Health{Name: "a", Status: StatusHealthy}})
	_ = r.Register(&mockComponent{name: "b", events: &events, health: Health{Name: "b", Status: StatusDegraded}})

	hs := r.HealthAll(context.Background())
	if len(hs) != 2 || hs[1].Status != StatusDegraded {
		t.Errorf("unexpected health %v", hs)
	}
	if r.Get("a") == nil {
		t.Error("expected component a")
	}
	if r.Get("zzz") != nil {
		t.Error("expected nil for unknown component")
	}
}
