// Package dispatcher folds backend watcher events into the tab store
// and announces the outcome on the application bus.
package dispatcher

import (
	"github.com/tabnav/tabnav/internal/backend"
	"github.com/tabnav/tabnav/internal/event"
	"github.com/tabnav/tabnav/internal/session"
	"github.com/tabnav/tabnav/internal/state"
)

// Result reports which stores an event updated.
type Result struct {
	TabsUpdated bool
	Err         error
}

type Dispatcher struct {
	tabs state.TabStore
	bus  *event.Bus
}

func New(tabs state.TabStore, bus *event.Bus) *Dispatcher {
	return &Dispatcher{tabs: tabs, bus: bus}
}

// Handle applies one backend event. A stale snapshot still updates the
// store; its error is reported alongside so the UI can show both the
// last known tabs and the reason they may be out of date.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		if d.bus != nil {
			d.bus.Publish(event.BackendError, evt.Err)
		}
	}
	if evt.Kind != backend.KindTabs {
		return res
	}
	snapshot, ok := evt.Data.(session.Snapshot)
	if !ok {
		return res
	}
	d.tabs.SetEntries(snapshot.Tabs)
	d.tabs.SetStale(snapshot.Stale)
	// /json/list orders by focus recency, frontmost first
	if len(snapshot.Tabs) > 0 {
		d.tabs.SetCurrent(snapshot.Tabs[0].ID)
	} else {
		d.tabs.SetCurrent("")
	}
	res.TabsUpdated = true
	if d.bus != nil {
		d.bus.Publish(event.TabsUpdated, snapshot)
	}
	return res
}
