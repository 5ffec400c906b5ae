package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/input/keymap"
	"github.com/tabnav/tabnav/internal/logging/events"
	"github.com/tabnav/tabnav/internal/mode"
)

// actionSpec is one named UI action the keymap can bind.
type actionSpec struct {
	description string
	modes       []mode.Mode
	run         func()
}

var allModes = []mode.Mode{mode.Normal, mode.Search, mode.Command, mode.Visual}

// actionTable names every bindable action. The keymap overlay refers to
// these names.
func (m *Model) actionTable() map[string]actionSpec {
	normalVisual := []mode.Mode{mode.Normal, mode.Visual}
	return map[string]actionSpec{
		"cursor.down":           {"move the cursor down", normalVisual, func() { m.sel.MoveDown(1); m.syncViewport() }},
		"cursor.up":             {"move the cursor up", normalVisual, func() { m.sel.MoveUp(1); m.syncViewport() }},
		"cursor.first":          {"jump to the first tab", normalVisual, func() { m.sel.MoveToFirst(); m.syncViewport() }},
		"cursor.last":           {"jump to the last tab", normalVisual, func() { m.sel.MoveToLast(); m.syncViewport() }},
		"cursor.half-page-down": {"move half a page down", normalVisual, func() { m.sel.MoveDown(m.halfPage()); m.syncViewport() }},
		"cursor.half-page-up":   {"move half a page up", normalVisual, func() { m.sel.MoveUp(m.halfPage()); m.syncViewport() }},
		"select.visual":         {"toggle visual selection", normalVisual, func() { m.controller.ToggleVisual() }},
		"select.toggle":         {"mark the current tab", normalVisual, func() { m.sel.ToggleCurrent() }},
		"select.all":            {"select every tab", normalVisual, func() { m.sel.SelectAll() }},
		"mode.search":           {"filter tabs", []mode.Mode{mode.Normal}, m.enterSearch},
		"mode.command":          {"open the command line", []mode.Mode{mode.Normal}, m.enterCommand},
		"mode.escape":           {"leave the current mode", allModes, m.escape},
		"mode.enter":            {"confirm", allModes, m.enter},
		"tab.close":             {"close the selected tabs", normalVisual, m.closeSelectedOrCurrent},
		"tab.close-selected":    {"close every selected tab", normalVisual, m.closeAllSelected},
		"tab.copy-url":          {"copy the selected tab URLs", normalVisual, m.copySelectedURLs},
		"tab.duplicate":         {"duplicate the current tab", []mode.Mode{mode.Normal}, m.duplicateCurrent},
		"tabs.reload":           {"reload the tab list", []mode.Mode{mode.Normal}, m.reload},
		"help.toggle":           {"toggle the key help overlay", normalVisual, m.toggleHelp},
		"app.quit":              {"quit", []mode.Mode{mode.Normal}, func() { events.UI.Quit("binding"); m.enqueue(tea.Quit) }},
	}
}

// defaultBindings is the built-in key table, applied before any keymap
// overlay.
var defaultBindings = []struct {
	keys   string
	action string
}{
	{"j", "cursor.down"},
	{"Down", "cursor.down"},
	{"k", "cursor.up"},
	{"Up", "cursor.up"},
	{"gg", "cursor.first"},
	{"Home", "cursor.first"},
	{"G", "cursor.last"},
	{"End", "cursor.last"},
	{"Ctrl+d", "cursor.half-page-down"},
	{"Ctrl+u", "cursor.half-page-up"},
	{"v", "select.visual"},
	{"Space", "select.toggle"},
	{"x", "select.toggle"},
	{"Ctrl+a", "select.all"},
	{"/", "mode.search"},
	{":", "mode.command"},
	{"Escape", "mode.escape"},
	{"Enter", "mode.enter"},
	{"dd", "tab.close"},
	{"D", "tab.close-selected"},
	{"yy", "tab.copy-url"},
	{"o", "tab.duplicate"},
	{"r", "tabs.reload"},
	{"?", "help.toggle"},
	{"q", "app.quit"},
}

func (m *Model) registerBindings() {
	actions := m.actionTable()
	for _, b := range defaultBindings {
		spec, ok := actions[b.action]
		if !ok {
			continue
		}
		if err := m.dispatcher.Register(b.keys, spec.run, spec.description, spec.modes...); err != nil {
			events.Key.KeymapError(err)
		}
	}
}

// loadKeymapOverlay layers the user keymap file over the defaults.
// Unknown action names and malformed sequences are reported, not fatal.
func (m *Model) loadKeymapOverlay() error {
	file, err := keymap.LoadFile(m.keymapPath)
	if err != nil {
		return err
	}
	actions := m.actionTable()
	bound, skipped := 0, 0
	for _, fb := range file.Bindings {
		spec, ok := actions[fb.Action]
		if !ok {
			events.Key.KeymapError(fmt.Errorf("keymap %s: unknown action %q", m.keymapPath, fb.Action))
			skipped++
			continue
		}
		_, modes, err := keymap.ParseEntry(fb)
		if err != nil {
			events.Key.KeymapError(err)
			skipped++
			continue
		}
		description := fb.Description
		if description == "" {
			description = spec.description
		}
		if len(modes) == 0 {
			modes = spec.modes
		}
		if err := m.dispatcher.Register(fb.Keys, spec.run, description, modes...); err != nil {
			events.Key.KeymapError(err)
			skipped++
			continue
		}
		bound++
	}
	events.Key.KeymapReload(m.keymapPath, bound, skipped)
	if skipped > 0 {
		m.setInfo(fmt.Sprintf("keymap: %d binding(s) skipped", skipped))
	}
	return nil
}

// keymapReloadMsg signals the keymap file changed on disk.
type keymapReloadMsg struct{}

func waitForKeymapReload(w *keymap.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Reloads(); !ok {
			return nil
		}
		return keymapReloadMsg{}
	}
}

func (m *Model) handleKeymapReloadMsg(tea.Msg) tea.Cmd {
	m.dispatcher.ResetBindings()
	m.registerBindings()
	if err := m.loadKeymapOverlay(); err != nil {
		m.errMsg = err.Error()
	}
	if m.keymapWatcher == nil {
		return nil
	}
	return waitForKeymapReload(m.keymapWatcher)
}

func (m *Model) enterSearch() {
	if !m.controller.EnterSearch() {
		return
	}
	m.searchInput.SetValue(m.query)
	m.searchInput.CursorEnd()
	m.enqueue(m.searchInput.Focus())
}

func (m *Model) enterCommand() {
	if !m.controller.EnterCommand() {
		return
	}
	m.cmdInput.Reset()
	m.enqueue(m.cmdInput.Focus())
}

// escape walks back one layer at a time: text entry, visual selection,
// help overlay, applied filter, then the popup itself.
func (m *Model) escape() {
	prev := m.dispatcher.Mode()
	if m.controller.Exit() {
		switch prev {
		case mode.Search:
			m.searchInput.Reset()
			m.searchInput.Blur()
			m.applyFilter("")
			events.Filter.Cleared()
		case mode.Command:
			m.cmdInput.Reset()
			m.cmdInput.Blur()
		}
		return
	}
	if m.showHelp {
		m.toggleHelp()
		return
	}
	if m.query != "" {
		m.searchInput.Reset()
		m.applyFilter("")
		events.Filter.Cleared()
		return
	}
	events.UI.Quit("escape")
	m.enqueue(tea.Quit)
}

func (m *Model) enter() {
	switch m.dispatcher.Mode() {
	case mode.Search:
		m.query = m.searchInput.Value()
		m.searchInput.Blur()
		m.dispatcher.SetMode(mode.Normal)
		events.Filter.Apply(m.query, m.sel.Len())
	case mode.Command:
		line := m.cmdInput.Value()
		m.cmdInput.Reset()
		m.cmdInput.Blur()
		m.dispatcher.SetMode(mode.Normal)
		m.enqueue(m.executeCommand(line))
	default:
		m.activateCurrent()
	}
}

func (m *Model) toggleHelp() {
	m.showHelp = !m.showHelp
	events.UI.Help(m.showHelp)
}
