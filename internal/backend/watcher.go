// Package backend watches the browser session for tab changes. A single
// poller fetches the tab list on an interval; a websocket push event, if
// a stream is attached, forces the next fetch immediately.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/tabnav/tabnav/internal/logging/events"
	"github.com/tabnav/tabnav/internal/session"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindTabs Kind = iota
)

// Event conveys an updated tab snapshot or an error from a poll. A
// failed poll that still has a cached snapshot carries both: stale data
// plus the error that made it stale.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Lister is the slice of the session client the watcher polls.
type Lister interface {
	Targets(ctx context.Context) ([]session.Tab, error)
	LastTargets() ([]session.Tab, bool)
}

// Watcher polls the session endpoint at a fixed interval and publishes
// events. The refresh channel, typically a stream's event feed, cuts
// the wait short when the browser pushes a target change.
type Watcher struct {
	lister   Lister
	interval time.Duration
	refresh  <-chan session.StreamEvent

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher polling lister every interval.
// A nil refresh channel disables push-triggered refreshes.
func NewWatcher(lister Lister, interval time.Duration, refresh <-chan session.StreamEvent) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		lister:   lister,
		interval: interval,
		refresh:  refresh,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events
// channel is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	throttle := newThrottle(250 * time.Millisecond)

	emit := func() bool {
		if !throttle.wait(w.ctx) {
			return false
		}
		snapshot := w.fetch()
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- snapshot:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case evt, ok := <-w.refresh:
			if !ok {
				// stream gone; interval polling continues
				w.refresh = nil
				events.Backend.StreamDetach(nil)
				continue
			}
			events.Backend.StreamEvent(evt.Method, evt.TargetID)
			if !emit() {
				return
			}
		}
	}
}

// fetch runs one enumeration, falling back to the cached snapshot when
// the endpoint fails.
func (w *Watcher) fetch() Event {
	tabs, err := w.lister.Targets(w.ctx)
	if err == nil {
		events.Backend.PollSuccess(len(tabs))
		return Event{Kind: KindTabs, Data: session.Snapshot{Tabs: tabs}}
	}
	events.Backend.PollError(err)
	if stale, ok := w.lister.LastTargets(); ok {
		events.Backend.PollStale(len(stale))
		return Event{Kind: KindTabs, Data: session.Snapshot{Tabs: stale, Stale: true}, Err: err}
	}
	return Event{Kind: KindTabs, Err: err}
}
