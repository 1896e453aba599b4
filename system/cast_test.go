package system

import (
	"testing"
	"time"

	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/gesture"
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/spell"
	"github.com/avindel/handcast/vmath"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testRig is a deterministic single-stepped simulation harness
type testRig struct {
	world     *engine.World
	scheduler *engine.ClockScheduler
	clock     *engine.MockTimeProvider
	catalog   *spell.Catalog
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	clock := engine.NewMockTimeProvider(testEpoch)
	world := engine.NewWorld()
	scheduler, _ := engine.NewClockScheduler(world, engine.NewPausableClock(clock), parameter.TickInterval)

	return &testRig{
		world:     world,
		scheduler: scheduler,
		clock:     clock,
		catalog:   spell.Default(),
	}
}

// step advances the mock clock one tick and processes it
func (r *testRig) step() {
	r.clock.Advance(parameter.TickInterval)
	r.scheduler.StepFrame()
}

// stepFor advances whole ticks until at least d has elapsed
func (r *testRig) stepFor(d time.Duration) {
	ticks := int(d/parameter.TickInterval) + 1
	for i := 0; i < ticks; i++ {
		r.step()
	}
}

// pose pushes one synthesized gesture frame into the event queue
func (r *testRig) pose(g gesture.Gesture) {
	p := event.PoseFramePayloadPool.Get().(*event.PoseFramePayload)
	p.Frame = gesture.SynthesizeFrame(g, vmath.Vec2F{X: 0.25, Y: 0.5})
	r.world.PushEvent(event.EventPoseFrame, p)
}

// gestureStep pushes a gesture frame and processes one tick
func (r *testRig) gestureStep(g gesture.Gesture) {
	r.pose(g)
	r.step()
}

func TestCastChargeAndRelease(t *testing.T) {
	r := newTestRig(t)
	cast := NewCastSystem(r.world, r.catalog)
	r.world.AddSystem(cast)
	r.scheduler.RegisterHandlers()

	cr := r.world.Resources.Cast

	r.gestureStep(gesture.Fist)
	if cr.State != engine.CastIdle {
		t.Fatal("Fist alone must not open a charge")
	}

	r.gestureStep(gesture.Point)
	if cr.State != engine.CastCharging {
		t.Fatal("Expected charging after fist then point")
	}
	if cr.ActiveSpell.ID != spell.Fireball {
		t.Errorf("Expected fireball charging, got %s", cr.ActiveSpell.ID)
	}

	// Mana is not deducted until release
	if r.world.Resources.Ledger.Mana() != parameter.ManaMax {
		t.Errorf("Mana deducted at charge start: %d", r.world.Resources.Ledger.Mana())
	}

	r.gestureStep(gesture.Palm)
	if cr.State != engine.CastIdle {
		t.Fatal("Expected idle after palm release")
	}
	if got := r.world.Resources.Ledger.Mana(); got != parameter.ManaMax-20 {
		t.Errorf("Expected mana %d after fireball, got %d", parameter.ManaMax-20, got)
	}
	if cr.Combo != 1 {
		t.Errorf("Expected combo 1 after release, got %d", cr.Combo)
	}
	if r.world.Resources.Ledger.Casts() != 1 {
		t.Errorf("Expected 1 recorded cast, got %d", r.world.Resources.Ledger.Casts())
	}
}

func TestCastRequiresFistFirst(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	// Trigger gestures without a preceding fist stay idle
	r.gestureStep(gesture.Point)
	r.gestureStep(gesture.Peace)
	r.gestureStep(gesture.Rock)

	if r.world.Resources.Cast.State != engine.CastIdle {
		t.Error("Charge opened without a fist transition")
	}
}

func TestCastFistMustImmediatelyPrecedeTrigger(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	r.gestureStep(gesture.Fist)
	r.gestureStep(gesture.Unknown)
	r.gestureStep(gesture.Point)

	if r.world.Resources.Cast.State != engine.CastIdle {
		t.Error("Stale fist opened a charge through an intervening gesture")
	}
}

func TestCastInsufficientMana(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	r.world.Resources.Ledger.Spend(parameter.ManaMax - 10) // leaves 10, fireball costs 20

	r.gestureStep(gesture.Fist)
	r.gestureStep(gesture.Point)

	if r.world.Resources.Cast.State != engine.CastIdle {
		t.Error("Unaffordable spell opened a charge")
	}

	// The read gesture is acknowledged with a denial cue
	var denied *event.SoundRequestPayload
	for _, ev := range r.world.Resources.Event.Queue.Consume() {
		if ev.Type == event.EventSoundRequest {
			denied, _ = ev.Payload.(*event.SoundRequestPayload)
		}
	}
	if denied == nil {
		t.Fatal("Expected a sound request for the denied cast")
	}
	if denied.Kind != event.SoundDenied {
		t.Errorf("Expected SoundDenied, got kind %d", denied.Kind)
	}
	if denied.Spell != spell.Fireball {
		t.Errorf("Expected fireball denial, got %v", denied.Spell)
	}
}

func TestCastSurvivesLostTracking(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	cr := r.world.Resources.Cast

	r.gestureStep(gesture.Fist)
	r.gestureStep(gesture.Peace)
	if cr.State != engine.CastCharging {
		t.Fatal("Expected charging")
	}

	// Lost hand, unknown shapes and a new fist never cancel the session
	r.gestureStep(gesture.None)
	r.gestureStep(gesture.Unknown)
	r.gestureStep(gesture.Fist)
	if cr.State != engine.CastCharging {
		t.Fatal("Charge session closed without a palm release")
	}
	if cr.ActiveSpell.ID != spell.Frostlance {
		t.Errorf("Active spell changed mid-session: %s", cr.ActiveSpell.ID)
	}

	r.gestureStep(gesture.Palm)
	if cr.State != engine.CastIdle {
		t.Error("Palm failed to release after lost tracking")
	}
	if got := r.world.Resources.Ledger.Mana(); got != parameter.ManaMax-15 {
		t.Errorf("Expected frostlance cost 15 deducted, got mana %d", got)
	}
}

func TestCastLowConfidenceIsNoHand(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	cr := r.world.Resources.Cast

	r.gestureStep(gesture.Fist)

	// A confident-shape frame below the score threshold reads as None,
	// breaking the fist-then-trigger adjacency
	p := event.PoseFramePayloadPool.Get().(*event.PoseFramePayload)
	p.Frame = gesture.SynthesizeFrame(gesture.Point, vmath.Vec2F{X: 0.25, Y: 0.5})
	p.Frame.Score = 0.2
	r.world.PushEvent(event.EventPoseFrame, p)
	r.step()

	if cr.Gesture != gesture.None {
		t.Errorf("Expected None for low-confidence frame, got %v", cr.Gesture)
	}
	if cr.State != engine.CastIdle {
		t.Error("Low-confidence frame opened a charge")
	}
}

func TestCastChargeFractionAdvisory(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	cr := r.world.Resources.Cast

	r.gestureStep(gesture.Fist)
	r.gestureStep(gesture.Point) // fireball, 800ms charge

	r.stepFor(400 * time.Millisecond)
	if cr.ChargeFraction < 0.4 || cr.ChargeFraction > 0.6 {
		t.Errorf("Expected midway charge fraction, got %v", cr.ChargeFraction)
	}

	// The fraction saturates at 1 and the charge stays open
	r.stepFor(time.Second)
	if cr.ChargeFraction != 1 {
		t.Errorf("Expected saturated charge fraction, got %v", cr.ChargeFraction)
	}
	if cr.State != engine.CastCharging {
		t.Error("Full charge must not auto-release or cancel")
	}

	// An instant release is honored at full damage terms (mana still paid)
	r.gestureStep(gesture.Palm)
	if cr.State != engine.CastIdle || cr.Combo != 1 {
		t.Errorf("Release failed: state=%v combo=%d", cr.State, cr.Combo)
	}
}

func TestComboStacksAndDecaysIndependently(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	cr := r.world.Resources.Cast

	castOnce := func(trigger gesture.Gesture) {
		r.gestureStep(gesture.Fist)
		r.gestureStep(trigger)
		r.gestureStep(gesture.Palm)
	}

	castOnce(gesture.Point)
	firstCastTime := r.world.Resources.Time.GameTime

	// Second cast one second later
	r.stepFor(time.Second)
	castOnce(gesture.Peace)
	secondCastTime := r.world.Resources.Time.GameTime

	if cr.Combo != 2 {
		t.Fatalf("Expected combo 2, got %d", cr.Combo)
	}
	if got := cr.ComboMultiplier(); got != 1.2 {
		t.Errorf("Expected multiplier 1.2, got %v", got)
	}

	// First decay fires 5000ms after the first cast, second one second later
	elapsed := r.world.Resources.Time.GameTime.Sub(firstCastTime)
	r.stepFor(parameter.CombatComboWindow - elapsed)
	if cr.Combo != 1 {
		t.Errorf("Expected combo 1 after first window, got %d", cr.Combo)
	}

	remaining := parameter.CombatComboWindow - r.world.Resources.Time.GameTime.Sub(secondCastTime)
	r.stepFor(remaining)
	if cr.Combo != 0 {
		t.Errorf("Expected combo 0 after second window, got %d", cr.Combo)
	}
	if got := cr.ComboMultiplier(); got != 1.0 {
		t.Errorf("Expected baseline multiplier, got %v", got)
	}
}

func TestSessionResetCancelsPendingDecay(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	cr := r.world.Resources.Cast

	r.gestureStep(gesture.Fist)
	r.gestureStep(gesture.Point)
	r.gestureStep(gesture.Palm)
	if cr.Combo != 1 {
		t.Fatalf("Expected combo 1, got %d", cr.Combo)
	}
	staleDeadline := r.world.Resources.Time.GameTime.Add(parameter.CombatComboWindow)

	r.world.PushEvent(event.EventSessionReset, nil)
	r.step()
	if cr.Combo != 0 || cr.State != engine.CastIdle {
		t.Fatalf("Reset incomplete: combo=%d state=%v", cr.Combo, cr.State)
	}

	// Build a new combo, then let the stale pre-reset decay deadline pass:
	// the old timer must not touch the new combo
	r.gestureStep(gesture.Fist)
	r.gestureStep(gesture.Point)
	r.gestureStep(gesture.Palm)
	if cr.Combo != 1 {
		t.Fatalf("Expected combo 1 after reset, got %d", cr.Combo)
	}

	// Cross the stale deadline but stay short of the new cast's window
	r.stepFor(staleDeadline.Sub(r.world.Resources.Time.GameTime))
	if cr.Combo != 1 {
		t.Errorf("Stale decay from before the reset fired: combo=%d", cr.Combo)
	}
}

func TestCastEventCarriesOriginAndCombo(t *testing.T) {
	r := newTestRig(t)
	r.world.AddSystem(NewCastSystem(r.world, r.catalog))
	r.scheduler.RegisterHandlers()

	r.gestureStep(gesture.Fist)
	r.gestureStep(gesture.Point)
	r.gestureStep(gesture.Palm)

	// The cast event is pending in the queue for next tick's dispatch
	events := r.world.Resources.Event.Queue.Consume()
	var castEv *event.GameEvent
	for i := range events {
		if events[i].Type == event.EventSpellCast {
			castEv = &events[i]
		}
	}
	if castEv == nil {
		t.Fatal("Expected a spell cast event")
	}

	p, ok := castEv.Payload.(*event.SpellCastPayload)
	if !ok {
		t.Fatalf("Unexpected payload type %T", castEv.Payload)
	}
	if p.Spell.ID != spell.Fireball || p.Combo != 1 {
		t.Errorf("Bad payload: spell=%s combo=%d", p.Spell.ID, p.Combo)
	}

	// Wrist at normalized (0.25, 0.5) maps into simulation units
	wantX := 0.25 * parameter.SimWidth
	wantY := 0.5 * parameter.SimHeight
	if p.Origin.X != wantX || p.Origin.Y != wantY {
		t.Errorf("Expected origin (%v, %v), got (%v, %v)", wantX, wantY, p.Origin.X, p.Origin.Y)
	}
}
