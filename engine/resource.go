package engine

import (
	"time"

	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/gesture"
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/spell"
	"github.com/avindel/handcast/status"
	"github.com/avindel/handcast/vmath"
)

// Resource holds singleton simulation resources, initialized with the world
// and accessed via World.Resources
type Resource struct {
	Time     *TimeResource
	Config   *ConfigResource
	Ledger   *LedgerResource
	Cast     *CastResource
	Event    *EventQueueResource
	Schedule *Schedule

	// Telemetry
	Status *status.Registry
}

func newResource() *Resource {
	return &Resource{
		Time:     &TimeResource{},
		Config:   defaultConfigResource(),
		Ledger:   NewLedgerResource(),
		Cast:     &CastResource{},
		Event:    &EventQueueResource{Queue: event.NewQueue()},
		Schedule: NewSchedule(),
		Status:   status.NewRegistry(),
	}
}

// TimeResource wraps time data for systems
// Updated by the ClockScheduler at the start of every tick
type TimeResource struct {
	// GameTime is the current time in the game world (affected by pause)
	GameTime time.Time

	// RealTime is the wall-clock time (unaffected by pause)
	RealTime time.Time

	// DeltaTime is the duration since the last update
	DeltaTime time.Duration

	// FrameNumber is the current frame count
	FrameNumber int64
}

// Update modifies TimeResource fields in-place (zero allocation)
// Must be called under the world update lock
func (tr *TimeResource) Update(gameTime, realTime time.Time, deltaTime time.Duration, frameNumber int64) {
	tr.GameTime = gameTime
	tr.RealTime = realTime
	tr.DeltaTime = deltaTime
	tr.FrameNumber = frameNumber
}

// ConfigResource holds static simulation configuration
type ConfigResource struct {
	SimWidth  float64
	SimHeight float64

	// MinConfidence is the pose score below which a frame counts as no hand
	MinConfidence float64
}

func defaultConfigResource() *ConfigResource {
	return &ConfigResource{
		SimWidth:      parameter.SimWidth,
		SimHeight:     parameter.SimHeight,
		MinConfidence: parameter.PoseMinConfidence,
	}
}

// EventQueueResource exposes the event queue to producers outside the world
type EventQueueResource struct {
	Queue *event.Queue
}

// CastState is the cast machine's externally visible state
type CastState int

const (
	CastIdle CastState = iota
	CastCharging
)

// CastResource is the cast machine's published state, written once per tick
// by the CastSystem and read by the renderer and HUD
// Combo lives here because casts increment it; scheduled decays and the
// combat multiplier read it on the same tick goroutine
type CastResource struct {
	// Gesture is this cycle's classification, PrevGesture the one before
	Gesture     gesture.Gesture
	PrevGesture gesture.Gesture

	// Hand is the last known wrist position in simulation units
	Hand    vmath.Vec2F
	HasHand bool

	State       CastState
	ActiveSpell spell.Spell
	ChargeStart time.Time

	// ChargeFraction is min(elapsed/chargeTime, 1), advisory only
	ChargeFraction float64

	// Combo is the decaying cast counter driving the damage multiplier
	Combo int
}

// ComboMultiplier returns the damage multiplier for the current combo count
func (cr *CastResource) ComboMultiplier() float64 {
	return 1 + parameter.CombatComboDamageStep*float64(cr.Combo)
}

// Reset returns the cast state to idle and clears the combo
func (cr *CastResource) Reset() {
	*cr = CastResource{}
}
