package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/backend"
)

// backendEventMsg carries one watcher (or out-of-band refresh) event
// into the Bubble Tea loop. fromWatcher distinguishes events that must
// re-arm the watcher wait from injected refreshes.
type backendEventMsg struct {
	event       backend.Event
	fromWatcher bool
}

type backendDoneMsg struct{}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt, fromWatcher: true}
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if eventMsg.fromWatcher && m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent folds the event into the store and rebuilds the
// filtered item list the selection model tracks.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.data.Handle(evt)
	if res.Err != nil {
		m.errMsg = res.Err.Error()
	} else {
		m.errMsg = ""
	}
	if res.TabsUpdated {
		m.refreshItems()
	}
}

// refreshItems pushes the store contents, filtered by the applied
// query, into the selection model.
func (m *Model) refreshItems() {
	m.sel.SetItems(filterTabs(m.tabs.Entries(), m.query))
	m.syncViewport()
}
