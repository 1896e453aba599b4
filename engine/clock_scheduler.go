package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/avindel/handcast/core"
	"github.com/avindel/handcast/event"
)

// ClockScheduler advances the simulation on a fixed tick
// Per-tick sequence: time resource update, due scheduled actions, event
// dispatch, systems in priority order. Handles pause-aware scheduling
// without busy-wait and corrects for drift when ticks run late
type ClockScheduler struct {
	world  *World
	clock  *PausableClock
	router *event.Router

	tickInterval     time.Duration
	lastGameTickTime time.Time // Last tick in game time
	nextTickDeadline time.Time // Next tick deadline for drift correction

	frameCounter atomic.Int64
	tickCount    atomic.Uint64
	mu           sync.RWMutex

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Frame notification for the render loop
	updateDone chan struct{}

	// Cached metric pointers
	statTicks *atomic.Int64
	statLost  *atomic.Int64
}

// NewClockScheduler creates a scheduler with the specified tick interval
// Returns the scheduler and the updateDone channel the render loop waits on
func NewClockScheduler(world *World, clock *PausableClock, tickInterval time.Duration) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)

	cs := &ClockScheduler{
		world:            world,
		clock:            clock,
		router:           event.NewRouter(world.Resources.Event.Queue),
		tickInterval:     tickInterval,
		lastGameTickTime: clock.Now(),
		stopChan:         make(chan struct{}),
		updateDone:       updateDone,
		statTicks:        world.Resources.Status.Ints.Get("engine.ticks"),
		statLost:         world.Resources.Status.Ints.Get("engine.events_lost"),
	}

	world.SetEventMetadata(&cs.frameCounter)

	return cs, updateDone
}

// RegisterHandlers wires every system that implements event.Handler into
// the router. Must be called after all systems are added and before Start
func (cs *ClockScheduler) RegisterHandlers() {
	for _, s := range cs.world.Systems() {
		if h, ok := s.(event.Handler); ok {
			cs.router.Register(h)
		}
	}
}

// Router exposes the event router for non-system handlers
func (cs *ClockScheduler) Router() *event.Router {
	return cs.router
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the loop, drops pending scheduled actions and clears the world
// No damage or resource event is emitted after Stop returns
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
		cs.world.Resources.Schedule.Clear()
		_ = cs.world.Resources.Event.Queue.Consume()
		cs.world.Clear()
	})
}

// Pause freezes game time; scheduled actions and charge timers freeze with it
func (cs *ClockScheduler) Pause() { cs.clock.Pause() }

// Resume continues game time
func (cs *ClockScheduler) Resume() { cs.clock.Resume() }

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// StepFrame advances exactly one tick at the clock's current game time
// Used by tests (with a mock time provider) and headless drivers
func (cs *ClockScheduler) StepFrame() {
	cs.processTick(cs.clock.Now())
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
	cs.lastGameTickTime = cs.clock.Now()
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleepDuration = cs.tickInterval * 2
		} else {
			gameNow := cs.clock.Now()

			cs.mu.RLock()
			deadline := cs.nextTickDeadline
			cs.mu.RUnlock()

			if !gameNow.Before(deadline) {
				cs.processTick(gameNow)

				cs.mu.Lock()
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

				// Resynchronize when far behind instead of burst-ticking
				maxBehind := cs.tickInterval * 2
				if gameNow.Sub(cs.nextTickDeadline) > maxBehind {
					cs.nextTickDeadline = gameNow.Add(cs.tickInterval)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				select {
				case cs.updateDone <- struct{}{}:
				default:
				}

				sleepDuration = deadline.Sub(cs.clock.Now())
				if sleepDuration < 0 {
					sleepDuration = 0
				}
			} else {
				sleepDuration = deadline.Sub(gameNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}

// processTick runs one full simulation frame under the world update lock
func (cs *ClockScheduler) processTick(gameNow time.Time) {
	frame := cs.frameCounter.Add(1)

	cs.mu.Lock()
	dt := gameNow.Sub(cs.lastGameTickTime)
	cs.lastGameTickTime = gameNow
	cs.mu.Unlock()

	cs.world.RunSafe(func() {
		cs.world.Resources.Time.Update(gameNow, cs.clock.RealTime(), dt, frame)
		cs.world.Resources.Schedule.RunDue(gameNow)
		cs.router.DispatchAll()
		cs.world.UpdateLocked()
	})

	cs.tickCount.Add(1)
	cs.statTicks.Add(1)
	cs.statLost.Store(int64(cs.world.Resources.Event.Queue.Overwrites()))
}
