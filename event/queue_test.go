package event

import (
	"sync"
	"testing"

	"github.com/avindel/handcast/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()

	for i := 0; i < 10; i++ {
		q.Push(GameEvent{Type: EventSpellCast, Frame: int64(i)})
	}

	events := q.Consume()
	if len(events) != 10 {
		t.Fatalf("Expected 10 events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Frame != int64(i) {
			t.Errorf("Event %d out of order: frame %d", i, ev.Frame)
		}
	}

	if rest := q.Consume(); rest != nil {
		t.Errorf("Expected empty queue after consume, got %d events", len(rest))
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(GameEvent{Type: EventPoseFrame})
			}
		}()
	}
	wg.Wait()

	total := 0
	for {
		events := q.Consume()
		if len(events) == 0 {
			break
		}
		total += len(events)
	}

	if total != producers*perProducer {
		t.Errorf("Expected %d events, got %d", producers*perProducer, total)
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()

	overfill := parameter.EventQueueSize + 100
	for i := 0; i < overfill; i++ {
		q.Push(GameEvent{Type: EventSpellCast, Frame: int64(i)})
	}

	events := q.Consume()
	if len(events) == 0 {
		t.Fatal("Expected events after overflow")
	}
	if len(events) > parameter.EventQueueSize {
		t.Fatalf("Consumed more than capacity: %d", len(events))
	}

	last := events[len(events)-1]
	if last.Frame != int64(overfill-1) {
		t.Errorf("Expected newest event frame %d, got %d", overfill-1, last.Frame)
	}
}

func TestQueueCountsOverwrites(t *testing.T) {
	q := NewQueue()

	for i := 0; i < parameter.EventQueueSize; i++ {
		q.Push(GameEvent{Type: EventSpellCast})
	}
	if got := q.Overwrites(); got != 0 {
		t.Fatalf("Expected no overwrites while the ring has room, got %d", got)
	}

	const extra = 100
	for i := 0; i < extra; i++ {
		q.Push(GameEvent{Type: EventSpellCast})
	}
	if got := q.Overwrites(); got != extra {
		t.Errorf("Expected %d overwrites, got %d", extra, got)
	}

	// Draining resets pressure, not the lifetime counter
	q.Consume()
	q.Push(GameEvent{Type: EventSpellCast})
	if got := q.Overwrites(); got != extra {
		t.Errorf("Expected counter unchanged after drain, got %d", got)
	}
}

type recordingHandler struct {
	types []EventType
	seen  []GameEvent
}

func (h *recordingHandler) HandleEvent(ev GameEvent) { h.seen = append(h.seen, ev) }
func (h *recordingHandler) EventTypes() []EventType  { return h.types }

func TestRouterDispatchByType(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	casts := &recordingHandler{types: []EventType{EventSpellCast}}
	hits := &recordingHandler{types: []EventType{EventProjectileHit}}
	both := &recordingHandler{types: []EventType{EventSpellCast, EventProjectileHit}}

	r.Register(casts)
	r.Register(hits)
	r.Register(both)

	q.Push(GameEvent{Type: EventSpellCast})
	q.Push(GameEvent{Type: EventProjectileHit})
	q.Push(GameEvent{Type: EventSpellCast})

	r.DispatchAll()

	if len(casts.seen) != 2 {
		t.Errorf("Expected 2 cast events, got %d", len(casts.seen))
	}
	if len(hits.seen) != 1 {
		t.Errorf("Expected 1 hit event, got %d", len(hits.seen))
	}
	if len(both.seen) != 3 {
		t.Errorf("Expected 3 events for dual handler, got %d", len(both.seen))
	}

	if n := r.HandlerCount(EventSpellCast); n != 2 {
		t.Errorf("Expected 2 handlers for cast events, got %d", n)
	}
}
