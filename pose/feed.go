package pose

import (
	"bufio"
	"encoding/json"
	"net"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/event"
	"github.com/avindel/handcast/gesture"
	"github.com/avindel/handcast/vmath"
)

// maxLineBytes bounds one wire frame. A full landmark set serializes to
// roughly 1.5KB, anything past this is garbage
const maxLineBytes = 64 * 1024

// wireFrame is the JSON shape produced by the external pose process, one
// object per line
type wireFrame struct {
	Landmarks [][3]float64 `json:"landmarks"`
	Score     float64      `json:"score"`
}

// Feed accepts newline-delimited JSON pose frames over TCP and pushes them
// into the event queue. Multiple detector connections are accepted, frames
// interleave in arrival order
type Feed struct {
	addr  string
	world *engine.World
	log   *zap.Logger

	listener net.Listener

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	produced atomic.Uint64
	dropped  atomic.Uint64

	statProduced *atomic.Int64
	statDropped  *atomic.Int64
}

// NewFeed creates a TCP pose feed listening on addr
func NewFeed(addr string, world *engine.World, log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{
		addr:         addr,
		world:        world,
		log:          log,
		stopCh:       make(chan struct{}),
		statProduced: world.Resources.Status.Ints.Get("pose.frames"),
		statDropped:  world.Resources.Status.Ints.Get("pose.dropped"),
	}
}

// Name returns the service identifier
func (f *Feed) Name() string { return "pose-feed" }

// Dependencies returns the services required before this one
func (f *Feed) Dependencies() []string { return nil }

// Init binds the listen socket
func (f *Feed) Init() error {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return err
	}
	f.listener = ln
	f.log.Info("pose feed listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Start launches the accept loop
func (f *Feed) Start() error {
	if !f.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	f.wg.Add(1)
	go f.acceptLoop()
	return nil
}

// Stop halts the feed and closes all connections
func (f *Feed) Stop() error {
	if !f.running.CompareAndSwap(true, false) {
		return nil
	}

	close(f.stopCh)

	if f.listener != nil {
		f.listener.Close()
	}

	f.wg.Wait()
	return nil
}

// FramesProduced returns the number of frames pushed so far
func (f *Feed) FramesProduced() uint64 { return f.produced.Load() }

// FramesDropped returns the number of malformed inputs discarded
func (f *Feed) FramesDropped() uint64 { return f.dropped.Load() }

// Addr returns the bound listen address, valid after Init
func (f *Feed) Addr() string {
	if f.listener == nil {
		return f.addr
	}
	return f.listener.Addr().String()
}

// acceptLoop handles incoming detector connections
func (f *Feed) acceptLoop() {
	defer f.wg.Done()

	for {
		select {
		case <-f.stopCh:
			return
		default:
		}

		conn, err := f.listener.Accept()
		if err != nil {
			select {
			case <-f.stopCh:
				return
			default:
				continue
			}
		}

		f.wg.Add(1)
		go f.readLoop(conn)
	}
}

// readLoop decodes one connection's frame stream until EOF or stop
func (f *Feed) readLoop(conn net.Conn) {
	defer f.wg.Done()
	defer conn.Close()

	// Close the connection when the feed stops so the scanner unblocks
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-f.stopCh:
			conn.Close()
		case <-done:
		}
	}()

	f.log.Debug("detector connected", zap.String("remote", conn.RemoteAddr().String()))

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var wf wireFrame
		if err := json.Unmarshal(line, &wf); err != nil {
			f.dropped.Add(1)
			f.statDropped.Add(1)
			continue
		}

		f.push(&wf)
	}

	f.log.Debug("detector disconnected", zap.String("remote", conn.RemoteAddr().String()))
}

// push converts one wire frame and emits it
// An unexpected landmark count is forwarded as-is: the classifier treats
// incomplete sets as no hand, matching a detector that lost tracking
func (f *Feed) push(wf *wireFrame) {
	lm := make(gesture.Landmarks, len(wf.Landmarks))
	for i, p := range wf.Landmarks {
		lm[i] = vmath.Vec3F{X: p[0], Y: p[1], Z: p[2]}
	}

	p := event.PoseFramePayloadPool.Get().(*event.PoseFramePayload)
	p.Frame = gesture.Frame{
		Landmarks: lm,
		Score:     wf.Score,
	}

	f.world.PushEvent(event.EventPoseFrame, p)
	f.produced.Add(1)
	f.statProduced.Add(1)
}

var _ Source = (*Feed)(nil)
