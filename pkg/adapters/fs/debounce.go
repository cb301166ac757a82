package fs

import (
	"sync"
	"time"

	"github.com/aretw0/quire/pkg/core"
)

// debouncer coalesces bursts of events for the same key into one emission.
// The window starts at the first event of a burst; later events only update
// what will be emitted.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	event core.Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules e for emission. A CREATE followed by MODIFY in the same
// window is still reported as CREATE.
func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[e.Key]; ok {
		if !(p.event.Type == core.EventCreate && e.Type == core.EventModify) {
			p.event.Type = e.Type
		}
		p.event.Timestamp = e.Timestamp
		return
	}

	p := &pendingEvent{event: e}
	d.pending[e.Key] = p
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		current, ok := d.pending[e.Key]
		if !ok || current != p || d.stopped {
			d.mu.Unlock()
			return
		}
		delete(d.pending, e.Key)
		out := current.event
		d.mu.Unlock()

		emit(out)
	})
}

// stopAndWait drops pending events and waits up to timeout for in-flight emissions.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
