package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-driven time source. Tests advance it
// explicitly, usually one tick interval per StepFrame, so scheduled
// actions and charge fractions become deterministic
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward and returns the resulting instant
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// SetTime jumps the clock to an absolute instant
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
