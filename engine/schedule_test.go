package engine

import (
	"testing"
	"time"
)

var scheduleEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestScheduleFiresInDeadlineOrder(t *testing.T) {
	s := NewSchedule()
	var fired []int

	s.At(scheduleEpoch.Add(300*time.Millisecond), func() { fired = append(fired, 3) })
	s.At(scheduleEpoch.Add(100*time.Millisecond), func() { fired = append(fired, 1) })
	s.At(scheduleEpoch.Add(200*time.Millisecond), func() { fired = append(fired, 2) })

	s.RunDue(scheduleEpoch.Add(time.Second))

	if len(fired) != 3 || fired[0] != 1 || fired[1] != 2 || fired[2] != 3 {
		t.Errorf("Expected firing order [1 2 3], got %v", fired)
	}
}

func TestScheduleHoldsFutureActions(t *testing.T) {
	s := NewSchedule()
	count := 0

	s.At(scheduleEpoch.Add(500*time.Millisecond), func() { count++ })

	s.RunDue(scheduleEpoch.Add(499 * time.Millisecond))
	if count != 0 {
		t.Fatal("Action fired before its deadline")
	}

	s.RunDue(scheduleEpoch.Add(500 * time.Millisecond))
	if count != 1 {
		t.Fatalf("Expected 1 firing at the deadline, got %d", count)
	}

	// Already popped, never fires again
	s.RunDue(scheduleEpoch.Add(time.Hour))
	if count != 1 {
		t.Errorf("Action fired twice: %d", count)
	}
}

func TestScheduleEqualDeadlinesPreserveOrder(t *testing.T) {
	s := NewSchedule()
	at := scheduleEpoch.Add(100 * time.Millisecond)
	var fired []int

	for i := 0; i < 5; i++ {
		i := i
		s.At(at, func() { fired = append(fired, i) })
	}

	s.RunDue(at)

	for i, v := range fired {
		if v != i {
			t.Fatalf("Expected scheduling order preserved, got %v", fired)
		}
	}
}

func TestScheduleReschedulingAction(t *testing.T) {
	s := NewSchedule()
	count := 0

	// Repeating action rescheduling from its own deadline
	var tick func(fireAt time.Time)
	tick = func(fireAt time.Time) {
		s.At(fireAt, func() {
			count++
			tick(fireAt.Add(100 * time.Millisecond))
		})
	}
	tick(scheduleEpoch.Add(100 * time.Millisecond))

	// One RunDue far in the future drains every intermediate repetition
	s.RunDue(scheduleEpoch.Add(450 * time.Millisecond))
	if count != 4 {
		t.Errorf("Expected 4 repetitions by 450ms, got %d", count)
	}
}

func TestScheduleClear(t *testing.T) {
	s := NewSchedule()
	count := 0

	for i := 0; i < 3; i++ {
		s.At(scheduleEpoch.Add(time.Duration(i)*time.Millisecond), func() { count++ })
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Expected empty schedule after Clear, got %d", s.Len())
	}

	s.RunDue(scheduleEpoch.Add(time.Hour))
	if count != 0 {
		t.Errorf("Cleared actions fired: %d", count)
	}
}
