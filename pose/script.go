package pose

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/gesture"
	"github.com/avindel/handcast/vmath"
)

// Step is one scripted gesture held for a number of frames
type Step struct {
	Gesture gesture.Gesture
	Frames  int
}

// DefaultScript cycles one full cast: close the fist, hold the trigger
// through a charge, open the palm to release, then rest
func DefaultScript() []Step {
	return []Step{
		{gesture.Fist, 6},
		{gesture.Point, 20},
		{gesture.Palm, 4},
		{gesture.None, 10},
	}
}

// Script replays a fixed gesture sequence at camera cadence, looping
// forever. Used for demo mode and soak runs without a detector attached
type Script struct {
	world    *engine.World
	steps    []Step
	interval time.Duration
	wrist    vmath.Vec2F

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	produced atomic.Uint64

	statProduced *atomic.Int64
}

// NewScript creates a scripted pose source
// A nil or empty steps slice falls back to DefaultScript
func NewScript(world *engine.World, steps []Step, interval time.Duration) *Script {
	if len(steps) == 0 {
		steps = DefaultScript()
	}
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &Script{
		world:        world,
		steps:        steps,
		interval:     interval,
		wrist:        vmath.Vec2F{X: 0.25, Y: 0.5},
		stopCh:       make(chan struct{}),
		statProduced: world.Resources.Status.Ints.Get("pose.frames"),
	}
}

// Name returns the service identifier
func (s *Script) Name() string { return "pose-script" }

// Dependencies returns the services required before this one
func (s *Script) Dependencies() []string { return nil }

// Init is a no-op, the script has no external resources
func (s *Script) Init() error { return nil }

// Start launches the replay loop
func (s *Script) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	s.wg.Add(1)
	go s.run()
	return nil
}

// Stop halts the replay loop
func (s *Script) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	close(s.stopCh)
	s.wg.Wait()
	return nil
}

// FramesProduced returns the number of frames pushed so far
func (s *Script) FramesProduced() uint64 { return s.produced.Load() }

// FramesDropped always returns zero, scripted frames are well-formed
func (s *Script) FramesDropped() uint64 { return 0 }

func (s *Script) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	step, held := 0, 0
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
		}

		s.emit(s.steps[step].Gesture)

		held++
		if held >= s.steps[step].Frames {
			held = 0
			step = (step + 1) % len(s.steps)
		}
	}
}

func (s *Script) emit(g gesture.Gesture) {
	p := event.PoseFramePayloadPool.Get().(*event.PoseFramePayload)
	p.Frame = gesture.SynthesizeFrame(g, s.wrist)

	s.world.PushEvent(event.EventPoseFrame, p)
	s.produced.Add(1)
	s.statProduced.Add(1)
}

var _ Source = (*Script)(nil)
