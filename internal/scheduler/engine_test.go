package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{Key: "later", Kind: KindStatusExpiry, At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{Key: "sooner", Kind: KindStatusExpiry, At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.Key != "sooner" || second.Key != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.Key, second.Key)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestScheduleReplacesPendingKey(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{Key: "status", Kind: KindStatusExpiry, At: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Event{Key: "status", Kind: KindStatusExpiry, At: now.Add(15 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", engine.Pending())
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Key != "status" || !ev.At.Equal(now.Add(15*time.Millisecond)) {
		t.Fatalf("unexpected event: %+v", ev)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("replaced event fired again: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancel(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	if err := engine.Schedule(Event{Key: "k", Kind: KindStatusExpiry, At: time.Now().Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !engine.Cancel("k") {
		t.Fatal("expected cancel to find the event")
	}
	if engine.Cancel("k") {
		t.Fatal("second cancel should report nothing pending")
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("canceled event fired: %+v", ev)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		key := string(rune('a' + i))
		if err := engine.Schedule(Event{Key: key, Kind: KindStatusExpiry, At: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{Key: "bad"}); !errors.Is(err, ErrInvalidTriggerTime) {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	if err := engine.Schedule(Event{At: time.Now()}); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Event{Key: "late", At: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestNextMidnight(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 2, 9, 9, 30, 0, 0, time.Local), time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)},
		{time.Date(2026, 2, 28, 23, 59, 59, 0, time.Local), time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)},
		{time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local), time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		if got := NextMidnight(tt.in); !got.Equal(tt.want) {
			t.Errorf("NextMidnight(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScheduleDayBoundaryFiresWithFakeClock(t *testing.T) {
	engine := NewEngine(1)
	start := time.Date(2026, 2, 9, 23, 59, 0, 0, time.Local)
	// The loop sees a clock that has already passed midnight.
	engine.now = func() time.Time { return start.Add(2 * time.Minute) }
	engine.Start()
	defer engine.Stop()

	if err := engine.ScheduleDayBoundary(start); err != nil {
		t.Fatalf("schedule day boundary: %v", err)
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Kind != KindDayBoundary || !ev.At.Equal(NextMidnight(start)) {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
