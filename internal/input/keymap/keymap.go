// Package keymap holds the binding registry consulted by the key
// dispatcher. The registry keeps at most one binding per exact sequence
// and preserves registration order for help listings. It is owned by
// the dispatcher and mutated only from the UI goroutine.
package keymap

import (
	"github.com/tabnav/tabnav/internal/input/key"
	"github.com/tabnav/tabnav/internal/mode"
)

// Binding ties a key sequence to a handler. Modes scopes the binding;
// an empty Modes slice means normal mode only.
type Binding struct {
	Sequence    key.Sequence
	Handler     func()
	Description string
	Modes       []mode.Mode
}

// ActiveIn reports whether the binding participates in dispatch while m
// is the current mode.
func (b *Binding) ActiveIn(m mode.Mode) bool {
	if len(b.Modes) == 0 {
		return m == mode.Normal
	}
	for _, bm := range b.Modes {
		if bm == m {
			return true
		}
	}
	return false
}

// HelpEntry is one row of a help listing.
type HelpEntry struct {
	Keys        string
	Description string
}

// Map is the ordered binding registry.
type Map struct {
	bindings []*Binding
}

// NewMap returns an empty registry.
func NewMap() *Map {
	return &Map{}
}

// Set registers b, silently replacing any existing binding with an equal
// sequence. Replacement keeps the original registration position so help
// listings stay stable.
func (m *Map) Set(b Binding) {
	for i, existing := range m.bindings {
		if existing.Sequence.Equal(b.Sequence) {
			m.bindings[i] = &b
			return
		}
	}
	m.bindings = append(m.bindings, &b)
}

// Delete removes the binding with an equal sequence. Removing an
// unregistered sequence is a no-op.
func (m *Map) Delete(seq key.Sequence) {
	for i, existing := range m.bindings {
		if existing.Sequence.Equal(seq) {
			m.bindings = append(m.bindings[:i], m.bindings[i+1:]...)
			return
		}
	}
}

// Lookup returns the binding exactly matching seq and active in md.
func (m *Map) Lookup(seq key.Sequence, md mode.Mode) (*Binding, bool) {
	for _, b := range m.bindings {
		if b.ActiveIn(md) && b.Sequence.Equal(seq) {
			return b, true
		}
	}
	return nil, false
}

// HasPrefix reports whether seq is a proper prefix of at least one
// binding active in md.
func (m *Map) HasPrefix(seq key.Sequence, md mode.Mode) bool {
	for _, b := range m.bindings {
		if b.ActiveIn(md) && len(b.Sequence) > len(seq) && b.Sequence.HasPrefix(seq) {
			return true
		}
	}
	return false
}

// Len reports the number of registered bindings.
func (m *Map) Len() int { return len(m.bindings) }

// Bindings returns a snapshot of the registry in registration order.
func (m *Map) Bindings() []Binding {
	out := make([]Binding, len(m.bindings))
	for i, b := range m.bindings {
		out[i] = *b
	}
	return out
}

// HelpFor lists the bindings active in md in registration order.
func (m *Map) HelpFor(md mode.Mode) []HelpEntry {
	var out []HelpEntry
	for _, b := range m.bindings {
		if !b.ActiveIn(md) {
			continue
		}
		out = append(out, HelpEntry{Keys: b.Sequence.String(), Description: b.Description})
	}
	return out
}
