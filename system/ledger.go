package system

import (
	"sync/atomic"
	"time"

	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/parameter"
)

// LedgerSystem drives mana regeneration on the paused-aware game clock and
// mirrors the ledger into the status registry every tick. Regen ticks are
// rescheduled from their own deadline so the cadence does not drift
type LedgerSystem struct {
	world   *engine.World
	enabled bool

	// gen invalidates queued regen ticks after a reset
	gen       uint64
	scheduled bool

	statMana    *atomic.Int64
	statXP      *atomic.Int64
	statLevel   *atomic.Int64
	statCombo   *atomic.Int64
	statHits    *atomic.Int64
	statDefeats *atomic.Int64
}

// NewLedgerSystem creates the resource bookkeeper
func NewLedgerSystem(world *engine.World) *LedgerSystem {
	s := &LedgerSystem{
		world:       world,
		statMana:    world.Resources.Status.Ints.Get("ledger.mana"),
		statXP:      world.Resources.Status.Ints.Get("ledger.experience"),
		statLevel:   world.Resources.Status.Ints.Get("ledger.level"),
		statCombo:   world.Resources.Status.Ints.Get("ledger.combo"),
		statHits:    world.Resources.Status.Ints.Get("ledger.hits"),
		statDefeats: world.Resources.Status.Ints.Get("ledger.defeats"),
	}
	s.Init()
	return s
}

// Init resets the ledger to session defaults and restarts regen
func (s *LedgerSystem) Init() {
	s.enabled = true
	s.gen++
	s.scheduled = false
	s.world.Resources.Ledger.Reset()
}

// Name returns the system's name
func (s *LedgerSystem) Name() string { return "ledger" }

// Priority runs the ledger after combat so mirrored values include this
// frame's rewards
func (s *LedgerSystem) Priority() int { return parameter.PriorityLedger }

// EventTypes returns the event types LedgerSystem handles
func (s *LedgerSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSessionReset,
	}
}

// HandleEvent processes session resets
func (s *LedgerSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventSessionReset {
		s.Init()
	}
}

// Update mirrors the ledger into the status registry and arms the regen
// timer on the first frame after a reset. Scheduling is deferred to here
// because game time is only valid once the clock has ticked
func (s *LedgerSystem) Update() {
	if !s.enabled {
		return
	}

	if !s.scheduled {
		s.scheduleRegen(s.world.Resources.Time.GameTime.Add(parameter.ManaRegenInterval))
		s.scheduled = true
	}

	ledger := s.world.Resources.Ledger
	s.statMana.Store(int64(ledger.Mana()))
	s.statXP.Store(int64(ledger.Experience()))
	s.statLevel.Store(int64(ledger.Level()))
	s.statCombo.Store(int64(s.world.Resources.Cast.Combo))
	s.statHits.Store(int64(ledger.Hits()))
	s.statDefeats.Store(int64(ledger.Defeats()))
}

func (s *LedgerSystem) scheduleRegen(fireAt time.Time) {
	gen := s.gen
	s.world.Resources.Schedule.At(fireAt, func() {
		if s.gen != gen {
			return
		}
		s.world.Resources.Ledger.AddMana(parameter.ManaRegenAmount)
		s.scheduleRegen(fireAt.Add(parameter.ManaRegenInterval))
	})
}

var _ engine.System = (*LedgerSystem)(nil)
var _ event.Handler = (*LedgerSystem)(nil)
