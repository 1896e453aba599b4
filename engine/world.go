package engine

import (
	"sync"
	"sync/atomic"

	"github.com/avindel/handcast/core"
	"github.com/avindel/handcast/event"
)

// System is the per-tick simulation unit
// Systems that also implement event.Handler are auto-registered with the
// router by the clock scheduler
type System interface {
	// Name returns the unique system identifier
	Name() string

	// Priority orders system updates within a tick, lower runs first
	Priority() int

	// Update advances the system by one frame
	Update()
}

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Global resources (time, config, ledger, event queue, telemetry)
	Resources *Resource

	Components ComponentStore

	// Direct pointers for the PushEvent hot path
	eventQueue  *event.Queue
	frameSource *atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new world with empty stores and default resources
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		Resources:    newResource(),
		Components:   newComponentStore(),
		systems:      make([]System, 0),
	}
	w.eventQueue = w.Resources.Event.Queue
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.Components.removeEntity(e)
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	w.Components.clear()
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems
// Used by ClockScheduler for event handler auto-registration
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems sequentially under the update lock
func (w *World) Update() {
	w.RunSafe(func() {
		w.UpdateLocked()
	})
}

// UpdateLocked runs all systems assuming the caller already holds the lock
func (w *World) UpdateLocked() {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update()
	}
}

// FrameNumber returns the current authoritative frame index
func (w *World) FrameNumber() int64 {
	if w.frameSource == nil {
		return 0
	}
	return w.frameSource.Load()
}

// SetEventMetadata wires the frame counter for PushEvent
// Called once during scheduler construction
func (w *World) SetEventMetadata(f *atomic.Int64) {
	w.frameSource = f
}

// PushEvent emits a game event tagged with the current frame
// This is the hot path for all system communication
func (w *World) PushEvent(eventType event.EventType, payload any) {
	if w.eventQueue == nil {
		return
	}

	var frame int64
	if w.frameSource != nil {
		frame = w.frameSource.Load()
	}

	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   frame,
	})
}
