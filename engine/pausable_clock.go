package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides pausable game time with pause duration tracking
// The underlying TimeProvider is swappable so tests run on virtual time
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider

	realStartTime time.Time // When clock was created (real time)
	gameStartTime time.Time // Game time epoch (adjusted for pauses)

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a clock over the given time source
func NewPausableClock(provider TimeProvider) *PausableClock {
	now := provider.Now()
	return &PausableClock{
		provider:      provider,
		realStartTime: now,
		gameStartTime: now,
	}
}

// Now returns current game time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		// During pause: frozen at the pause point
		return pc.gameStartTime.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}

	realElapsed := pc.provider.Now().Sub(pc.realStartTime)
	gameElapsed := realElapsed - pc.totalPausedTime
	return pc.gameStartTime.Add(gameElapsed)
}

// RealTime returns the time source's wall clock (unaffected by pause)
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.provider.Now()
	}
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
	}
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}
