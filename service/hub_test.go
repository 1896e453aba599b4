package service

import (
	"errors"
	"testing"
)

// fakeService records lifecycle calls into a shared trace
type fakeService struct {
	name     string
	deps     []string
	trace    *[]string
	initErr  error
	startErr error
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init() error {
	*f.trace = append(*f.trace, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.trace = append(*f.trace, "start:"+f.name)
	return f.startErr
}

func (f *fakeService) Stop() error {
	*f.trace = append(*f.trace, "stop:"+f.name)
	return nil
}

func assertTrace(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected trace %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected trace %v, got %v", want, got)
		}
	}
}

func TestHubOrdersByDependency(t *testing.T) {
	var trace []string
	hub := NewHub()
	// Register out of dependency order on purpose
	hub.Register(&fakeService{name: "pose-feed", deps: []string{"audio"}, trace: &trace})
	hub.Register(&fakeService{name: "audio", trace: &trace})

	if err := hub.InitAll(); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := hub.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	hub.StopAll()

	assertTrace(t, trace, []string{
		"init:audio", "init:pose-feed",
		"start:audio", "start:pose-feed",
		"stop:pose-feed", "stop:audio",
	})
}

func TestHubInitFailureUnwindsPrefix(t *testing.T) {
	var trace []string
	hub := NewHub()
	hub.Register(&fakeService{name: "a", trace: &trace})
	hub.Register(&fakeService{name: "b", deps: []string{"a"}, trace: &trace, initErr: errors.New("no device")})
	hub.Register(&fakeService{name: "c", deps: []string{"b"}, trace: &trace})

	if err := hub.InitAll(); err == nil {
		t.Fatal("Expected InitAll to fail")
	}

	assertTrace(t, trace, []string{"init:a", "init:b", "stop:a"})
}

func TestHubStartFailureStopsStartedOnly(t *testing.T) {
	var trace []string
	hub := NewHub()
	hub.Register(&fakeService{name: "a", trace: &trace})
	hub.Register(&fakeService{name: "b", deps: []string{"a"}, trace: &trace, startErr: errors.New("bind failed")})

	if err := hub.InitAll(); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := hub.StartAll(); err == nil {
		t.Fatal("Expected StartAll to fail")
	}

	assertTrace(t, trace, []string{"init:a", "init:b", "start:a", "start:b", "stop:a"})
}

func TestHubRejectsDuplicateName(t *testing.T) {
	var trace []string
	hub := NewHub()
	if err := hub.Register(&fakeService{name: "audio", trace: &trace}); err != nil {
		t.Fatalf("First Register failed: %v", err)
	}
	if err := hub.Register(&fakeService{name: "audio", trace: &trace}); err == nil {
		t.Fatal("Expected duplicate Register to fail")
	}
}

func TestHubRejectsUnknownDependency(t *testing.T) {
	var trace []string
	hub := NewHub()
	hub.Register(&fakeService{name: "a", deps: []string{"missing"}, trace: &trace})

	if err := hub.InitAll(); err == nil {
		t.Fatal("Expected InitAll to report unregistered dependency")
	}
}

func TestHubRejectsDependencyCycle(t *testing.T) {
	var trace []string
	hub := NewHub()
	hub.Register(&fakeService{name: "a", deps: []string{"b"}, trace: &trace})
	hub.Register(&fakeService{name: "b", deps: []string{"a"}, trace: &trace})

	if err := hub.InitAll(); err == nil {
		t.Fatal("Expected InitAll to detect cycle")
	}
	if len(trace) != 0 {
		t.Errorf("Expected no lifecycle calls on cycle, got %v", trace)
	}
}

func TestHubStopAllIsIdempotent(t *testing.T) {
	var trace []string
	hub := NewHub()
	hub.Register(&fakeService{name: "a", trace: &trace})

	hub.InitAll()
	hub.StartAll()
	hub.StopAll()
	hub.StopAll()

	assertTrace(t, trace, []string{"init:a", "start:a", "stop:a"})
}
