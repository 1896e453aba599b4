package event

import (
	"sync/atomic"

	"github.com/avindel/handcast/parameter"
)

// slot pairs an event with its publication flag. Producers set ready only
// after the event write completes; the consumer never reads a slot whose
// flag is down
type slot struct {
	ev    GameEvent
	ready atomic.Bool
}

// Queue is the lock-free MPSC ring between producers (pose goroutine,
// systems during a tick) and the single consumer (the clock scheduler's
// dispatch phase). When producers outrun the consumer the oldest unread
// events are overwritten; Overwrites counts how many were lost
type Queue struct {
	ring       [parameter.EventQueueSize]slot
	head       atomic.Uint64 // next unread
	tail       atomic.Uint64 // next write
	overwrites atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push claims a slot by CAS on the tail, writes the event, then raises the
// ready flag. Safe from any goroutine
func (q *Queue) Push(ev GameEvent) {
	var at uint64
	for {
		at = q.tail.Load()
		if q.tail.CompareAndSwap(at, at+1) {
			break
		}
	}

	s := &q.ring[at&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Full ring: drag head forward past the overwritten events
	head := q.head.Load()
	if at+1-head > parameter.EventQueueSize {
		if q.head.CompareAndSwap(head, at+1-parameter.EventQueueSize) {
			q.overwrites.Add(at + 1 - parameter.EventQueueSize - head)
		}
	}
}

// Consume drains every ready event in FIFO order
// Single-consumer: only the tick goroutine calls this
func (q *Queue) Consume() []GameEvent {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if head == tail {
			return nil
		}

		pending := tail - head
		if pending > parameter.EventQueueSize {
			// Producers lapped us between loads
			head = tail - parameter.EventQueueSize
			pending = parameter.EventQueueSize
		}

		out := make([]GameEvent, 0, pending)
		for i := uint64(0); i < pending; i++ {
			s := &q.ring[(head+i)&parameter.EventBufferMask]
			if !s.ready.Load() {
				break // writer mid-flight, stop at the gap
			}
			out = append(out, s.ev)
			s.ready.Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Overwrites reports how many unread events were lost to ring overflow
func (q *Queue) Overwrites() uint64 {
	return q.overwrites.Load()
}
