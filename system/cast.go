package system

import (
	"sync/atomic"

	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/gesture"
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/spell"
	"github.com/avindel/handcast/vmath"
)

// CastSystem is the charge/release state machine
// Consumes pose frames, classifies the gesture and tracks the cast
// lifecycle: fist then a trigger gesture opens a charge session, palm
// releases it as a cast. A session stays open across lost or unknown
// gestures; only a palm release or a session reset closes it
type CastSystem struct {
	world   *engine.World
	catalog *spell.Catalog
	enabled bool

	// gen invalidates stale scheduled combo decays after a reset
	gen uint64

	statCasts  *atomic.Int64
	statFrames *atomic.Int64
}

// NewCastSystem creates the cast state machine over a spell catalog
func NewCastSystem(world *engine.World, catalog *spell.Catalog) *CastSystem {
	s := &CastSystem{
		world:      world,
		catalog:    catalog,
		statCasts:  world.Resources.Status.Ints.Get("cast.casts"),
		statFrames: world.Resources.Status.Ints.Get("cast.pose_frames"),
	}
	s.Init()
	return s
}

// Init resets session state for a new game
func (s *CastSystem) Init() {
	s.enabled = true
	s.gen++
	s.world.Resources.Cast.Reset()
}

// Name returns the system's name
func (s *CastSystem) Name() string { return "cast" }

// Priority runs the cast machine before combat consumes cast events
func (s *CastSystem) Priority() int { return parameter.PriorityCast }

// EventTypes returns the event types CastSystem handles
func (s *CastSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventPoseFrame,
		event.EventSessionReset,
	}
}

// HandleEvent processes pose frames as they arrive
// Transitions are evaluated per detection cycle, which is independent of
// the tick cadence; unchanged or stale gestures are tolerated
func (s *CastSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventSessionReset {
		s.Init()
		return
	}
	if !s.enabled {
		return
	}
	if ev.Type == event.EventPoseFrame {
		if p, ok := ev.Payload.(*event.PoseFramePayload); ok {
			s.observe(p.Frame)
			event.PoseFramePayloadPool.Put(p)
		}
	}
}

// Update publishes the advisory charge fraction once per tick
func (s *CastSystem) Update() {
	if !s.enabled {
		return
	}

	cast := s.world.Resources.Cast
	if cast.State != engine.CastCharging {
		cast.ChargeFraction = 0
		return
	}

	elapsed := s.world.Resources.Time.GameTime.Sub(cast.ChargeStart)
	chargeTime := cast.ActiveSpell.ChargeTime
	if chargeTime <= 0 {
		cast.ChargeFraction = 1
		return
	}
	cast.ChargeFraction = vmath.Clamp(float64(elapsed)/float64(chargeTime), 0, 1)
}

// observe runs one detection cycle through the state machine
func (s *CastSystem) observe(frame gesture.Frame) {
	s.statFrames.Add(1)

	cast := s.world.Resources.Cast
	cfg := s.world.Resources.Config

	g := gesture.None
	if frame.Score >= cfg.MinConfidence {
		g = gesture.Classify(frame.Landmarks)
	}

	if g != gesture.None {
		if hand, ok := frame.Hand(); ok {
			// Landmarks are normalized camera coordinates
			cast.Hand = vmath.Vec2F{
				X: hand.X * cfg.SimWidth,
				Y: hand.Y * cfg.SimHeight,
			}
			cast.HasHand = true
		}
	}

	cast.PrevGesture = cast.Gesture
	cast.Gesture = g

	switch cast.State {
	case engine.CastIdle:
		s.tryCharge(cast)
	case engine.CastCharging:
		if g == gesture.Palm {
			s.release(cast)
		}
	}
}

// tryCharge opens a charge session on a fist-to-trigger transition
// Unbound gestures are silent no-ops; an unaffordable spell gets a denial
// cue so the player knows the gesture was read
func (s *CastSystem) tryCharge(cast *engine.CastResource) {
	if cast.PrevGesture != gesture.Fist {
		return
	}

	sp, ok := s.catalog.ByTrigger(cast.Gesture)
	if !ok {
		return
	}
	if !s.world.Resources.Ledger.CanAfford(sp.ManaCost) {
		s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{
			Kind:  event.SoundDenied,
			Spell: sp.ID,
		})
		return
	}

	cast.State = engine.CastCharging
	cast.ActiveSpell = sp
	cast.ChargeStart = s.world.Resources.Time.GameTime
	cast.ChargeFraction = 0
}

// release completes the session: one mana deduction, one cast event, one
// combo increment with an independent decay timer
// An early release is honored at full damage; charge time is cosmetic
func (s *CastSystem) release(cast *engine.CastResource) {
	sp := cast.ActiveSpell

	cast.State = engine.CastIdle
	cast.ChargeFraction = 0

	// Affordability was checked at charge start and mana only regenerates
	// in between; the re-check guards the invariant, never double-charges
	if !s.world.Resources.Ledger.Spend(sp.ManaCost) {
		return
	}

	cast.Combo++
	s.statCasts.Add(1)
	s.scheduleComboDecay(cast)

	origin := vmath.Vec2F{
		X: parameter.CombatSpawnFallbackX,
		Y: parameter.CombatSpawnFallbackY,
	}
	if cast.HasHand {
		origin = cast.Hand
	}

	s.world.PushEvent(event.EventSpellCast, &event.SpellCastPayload{
		Spell:  sp,
		Origin: origin,
		Combo:  cast.Combo,
	})
}

// scheduleComboDecay queues one independent decrement after the combo
// window. Decays stack per cast; a new cast never resets pending ones
func (s *CastSystem) scheduleComboDecay(cast *engine.CastResource) {
	gen := s.gen
	fireAt := s.world.Resources.Time.GameTime.Add(parameter.CombatComboWindow)
	s.world.Resources.Schedule.At(fireAt, func() {
		if s.gen != gen {
			return
		}
		if cast.Combo > 0 {
			cast.Combo--
		}
	})
}

var _ engine.System = (*CastSystem)(nil)
var _ event.Handler = (*CastSystem)(nil)
