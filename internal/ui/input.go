package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/input/key"
	"github.com/tabnav/tabnav/internal/logging/events"
	"github.com/tabnav/tabnav/internal/mode"
)

// namedFromTea maps Bubble Tea's lowercase key names to the dispatcher's
// canonical named keys.
var namedFromTea = map[string]string{
	"enter":     "Enter",
	"esc":       "Escape",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"f1":        "F1",
	"f2":        "F2",
	"f3":        "F3",
	"f4":        "F4",
	"f5":        "F5",
	"f6":        "F6",
	"f7":        "F7",
	"f8":        "F8",
	"f9":        "F9",
	"f10":       "F10",
	"f11":       "F11",
	"f12":       "F12",
}

// keyEventFromTea converts a Bubble Tea key message into the raw event
// shape the dispatcher consumes. Multi-rune paste input is not
// dispatchable.
func keyEventFromTea(msg tea.KeyMsg) (key.Event, bool) {
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return key.Event{}, false
		}
		return key.Event{Key: string(msg.Runes), Alt: msg.Alt}, true
	}
	if msg.Type == tea.KeySpace {
		return key.Event{Key: " ", Alt: msg.Alt}, true
	}

	// Named keys and control chords render like "ctrl+shift+tab".
	var ev key.Event
	parts := strings.Split(msg.String(), "+")
	base := parts[len(parts)-1]
	for _, part := range parts[:len(parts)-1] {
		switch part {
		case "ctrl":
			ev.Ctrl = true
		case "alt":
			ev.Alt = true
		case "meta":
			ev.Meta = true
		case "shift":
			ev.Shift = true
		default:
			return key.Event{}, false
		}
	}
	if named, ok := namedFromTea[base]; ok {
		ev.Key = named
		return ev, true
	}
	if len([]rune(base)) == 1 {
		ev.Key = base
		return ev, true
	}
	return key.Event{}, false
}

// handleKeyMsg feeds the press to the modal dispatcher first; presses
// the dispatcher does not consume fall through to the active text-entry
// field when one owns the keyboard.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		events.UI.Quit("ctrl+c")
		return tea.Quit
	}

	if ev, ok := keyEventFromTea(keyMsg); ok {
		if m.dispatcher.HandleKey(ev) {
			return nil
		}
	}

	switch m.dispatcher.Mode() {
	case mode.Search:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilter(m.searchInput.Value())
		return cmd
	case mode.Command:
		var cmd tea.Cmd
		m.cmdInput, cmd = m.cmdInput.Update(msg)
		return cmd
	}
	return nil
}
