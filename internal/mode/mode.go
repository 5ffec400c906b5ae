// Package mode names the interaction modes and coordinates transitions
// between them. The dispatcher owns the current mode; the controller
// applies the transition rules that tie mode changes to the selection
// model (visual mode is both a dispatch scope and a selection state).
package mode

// Mode is an interaction mode. Bindings are scoped to modes and the
// dispatcher only resolves sequences while in a binding's mode.
type Mode string

const (
	// Normal is the default mode: keys drive navigation and commands.
	Normal Mode = "normal"
	// Search is the filter-entry mode; printable keys edit the query.
	Search Mode = "search"
	// Command is the ex-style command-line mode.
	Command Mode = "command"
	// Visual is the range-selection mode anchored by the selection model.
	Visual Mode = "visual"
)

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	switch m {
	case Normal, Search, Command, Visual:
		return true
	}
	return false
}

func (m Mode) String() string { return string(m) }

// TextEntry reports whether the mode routes printable keys into a text
// field instead of the binding table.
func (m Mode) TextEntry() bool {
	return m == Search || m == Command
}
