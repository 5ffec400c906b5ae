package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/backend"
	"github.com/tabnav/tabnav/internal/logging/events"
	"github.com/tabnav/tabnav/internal/session"
	"github.com/tabnav/tabnav/internal/ui/command"
)

const actionTimeout = 5 * time.Second

// actionResultMsg reports the outcome of an asynchronous tab action.
type actionResultMsg struct {
	name    string
	info    string
	err     error
	quit    bool
	refresh bool
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		events.Action.Error(result.err)
		return nil
	}
	m.errMsg = ""
	if result.info != "" && m.verbose {
		m.setInfo(result.info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.info)
	if result.quit {
		return tea.Quit
	}
	if result.refresh {
		return m.refreshCmd()
	}
	return nil
}

// refreshCmd fetches the tab list out of band, ahead of the watcher's
// next poll.
func (m *Model) refreshCmd() tea.Cmd {
	client, ok := m.client.(interface {
		Targets(ctx context.Context) ([]session.Tab, error)
	})
	if !ok || m.client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		tabs, err := client.Targets(ctx)
		if err != nil {
			return backendEventMsg{event: backend.Event{Kind: backend.KindTabs, Err: err}}
		}
		return backendEventMsg{event: backend.Event{
			Kind: backend.KindTabs,
			Data: session.Snapshot{Tabs: tabs},
		}}
	}
}

func (m *Model) activateCurrent() {
	tab, ok := m.sel.Current()
	if !ok {
		return
	}
	events.UI.Enter(tab.ID, tab.Title)
	client := m.client
	m.enqueue(m.cmdBus.Execute(command.Request{
		Name:   "tab.activate",
		Target: tab.ID,
		Run: func() tea.Msg {
			events.Tab.Activate(tab.ID)
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			if err := client.Activate(ctx, tab.ID); err != nil {
				return actionResultMsg{name: "tab.activate", err: err}
			}
			return actionResultMsg{name: "tab.activate", info: fmt.Sprintf("Activated %s", tab.Title), quit: true}
		},
	}))
}

func (m *Model) closeSelectedOrCurrent() {
	m.closeTabs(m.sel.SelectedOrCurrent())
}

func (m *Model) closeAllSelected() {
	ids := m.sel.SelectedIDs()
	if len(ids) == 0 {
		m.setInfo("no tabs selected")
		return
	}
	var targets []session.Tab
	for _, t := range m.sel.Items() {
		for _, id := range ids {
			if t.ID == id {
				targets = append(targets, t)
			}
		}
	}
	m.closeTabs(targets)
}

func (m *Model) closeTabs(targets []session.Tab) {
	if len(targets) == 0 {
		return
	}
	ids := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = t.ID
	}
	m.sel.Clear()
	client := m.client
	m.enqueue(m.cmdBus.Execute(command.Request{
		Name:   "tab.close",
		Target: strings.Join(ids, ","),
		Run: func() tea.Msg {
			events.Tab.Close(ids)
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			for _, id := range ids {
				if err := client.Close(ctx, id); err != nil {
					return actionResultMsg{name: "tab.close", err: err}
				}
			}
			return actionResultMsg{
				name:    "tab.close",
				info:    fmt.Sprintf("Closed %d tab(s)", len(ids)),
				refresh: true,
			}
		},
	}))
}

func (m *Model) copySelectedURLs() {
	targets := m.sel.SelectedOrCurrent()
	if len(targets) == 0 {
		return
	}
	ids := make([]string, len(targets))
	urls := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = t.ID
		urls[i] = t.URL
	}
	events.Tab.CopyURL(ids)
	if err := clipboard.WriteAll(strings.Join(urls, "\n")); err != nil {
		m.errMsg = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Copied %d URL(s)", len(urls)))
}

func (m *Model) duplicateCurrent() {
	tab, ok := m.sel.Current()
	if !ok {
		return
	}
	m.enqueue(m.openCmd("tab.duplicate", tab.URL))
}

func (m *Model) reload() {
	events.Tab.Reload()
	m.enqueue(m.refreshCmd())
}

// openCmd opens target in a new tab; duplication is opening the URL of
// an existing tab.
func (m *Model) openCmd(name, target string) tea.Cmd {
	client := m.client
	return m.cmdBus.Execute(command.Request{
		Name:   name,
		Target: target,
		Run: func() tea.Msg {
			events.Tab.Open(target)
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			tab, err := client.Open(ctx, target)
			if err != nil {
				return actionResultMsg{name: name, err: err}
			}
			info := fmt.Sprintf("Opened %s", tab.URL)
			if tab.URL == "" {
				info = "Opened new tab"
			}
			return actionResultMsg{name: name, info: info, refresh: true}
		},
	})
}
