package engine

import (
	"container/heap"
	"sync"
	"time"
)

// Schedule is a fire-time priority queue for delayed simulation actions
// (combo decay, target respawn, mana regen). Actions run on the tick
// goroutine when game time passes their deadline, so virtual time in tests
// advances them deterministically.
//
// Actions scheduled with equal deadlines fire in scheduling order.
type Schedule struct {
	mu    sync.Mutex
	items scheduleHeap
	seq   uint64
}

type scheduledAction struct {
	fireAt time.Time
	seq    uint64 // Tie-break: preserve scheduling order at equal deadlines
	fn     func()
}

// NewSchedule creates an empty schedule
func NewSchedule() *Schedule {
	s := &Schedule{}
	heap.Init(&s.items)
	return s
}

// At enqueues fn to run once game time reaches t
func (s *Schedule) At(t time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	heap.Push(&s.items, scheduledAction{fireAt: t, seq: s.seq, fn: fn})
}

// RunDue pops and executes every action with a deadline at or before now
// Actions may reschedule themselves; a rescheduled deadline before now
// fires within the same call
func (s *Schedule) RunDue(now time.Time) {
	for {
		s.mu.Lock()
		if s.items.Len() == 0 || s.items[0].fireAt.After(now) {
			s.mu.Unlock()
			return
		}
		a := heap.Pop(&s.items).(scheduledAction)
		s.mu.Unlock()

		a.fn()
	}
}

// Len returns the number of pending actions
func (s *Schedule) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Len()
}

// Clear drops all pending actions without running them
// Called on session stop so no timer fires after cancellation
func (s *Schedule) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
}

type scheduleHeap []scheduledAction

func (h scheduleHeap) Len() int { return len(h) }

func (h scheduleHeap) Less(i, j int) bool {
	if h[i].fireAt.Equal(h[j].fireAt) {
		return h[i].seq < h[j].seq
	}
	return h[i].fireAt.Before(h[j].fireAt)
}

func (h scheduleHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scheduleHeap) Push(x any) {
	*h = append(*h, x.(scheduledAction))
}

func (h *scheduleHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
