// Package scheduler fires keyed, time-based events for the UI loop.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrMissingKey         = errors.New("scheduler: event key is required")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

type EventKind string

const (
	// KindDayBoundary fires at local midnight so the tracker can reconcile.
	KindDayBoundary EventKind = "day_boundary"
	// KindStatusExpiry clears a transient status message.
	KindStatusExpiry EventKind = "status_expiry"
)

// Event is delivered on C once At has passed. Scheduling an event with a key
// that is already pending replaces the pending one.
type Event struct {
	Key  string
	Kind EventKind
	At   time.Time
}

type entry struct {
	event Event
	index int
}

type eventQueue []*entry

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	return q[i].event.At.Before(q[j].event.At)
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

type Engine struct {
	mu      sync.Mutex
	queue   eventQueue
	byKey   map[string]*entry
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
	now     func() time.Time
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(eventQueue, 0),
		byKey:  make(map[string]*entry),
		out:    make(chan Event, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

// C is closed after Stop returns.
func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev Event) error {
	if ev.Key == "" {
		return ErrMissingKey
	}
	if ev.At.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	if existing, ok := e.byKey[ev.Key]; ok {
		existing.event = ev
		heap.Fix(&e.queue, existing.index)
	} else {
		item := &entry{event: ev}
		heap.Push(&e.queue, item)
		e.byKey[ev.Key] = item
	}
	e.signalWakeup()
	return nil
}

// ScheduleDayBoundary arms the next local midnight after now.
func (e *Engine) ScheduleDayBoundary(now time.Time) error {
	return e.Schedule(Event{Key: string(KindDayBoundary), Kind: KindDayBoundary, At: NextMidnight(now)})
}

// Cancel removes a pending event and reports whether one existed.
func (e *Engine) Cancel(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.byKey[key]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, item.index)
	delete(e.byKey, key)
	e.signalWakeup()
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// NextMidnight returns the start of the local day after t.
func NextMidnight(t time.Time) time.Time {
	local := t.Local()
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.Local)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.At.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range e.popDue(e.now()) {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Event{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Event
	for len(e.queue) > 0 && !e.queue[0].event.At.After(now) {
		item := heap.Pop(&e.queue).(*entry)
		delete(e.byKey, item.event.Key)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
