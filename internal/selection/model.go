// Package selection tracks the cursor and the multi-select set over an
// ordered item list that is replaced wholesale on every refresh. Visual
// mode keeps the selected set equal to the inclusive anchor-to-cursor
// span, recomputed from scratch on every cursor move, so jumps select
// whole ranges exactly like range selection in a modal editor.
package selection

import (
	"github.com/tabnav/tabnav/internal/event"
	"github.com/tabnav/tabnav/internal/logging/events"
)

// Model owns cursor, selection, and visual state for items of type T.
// The id function must yield a stable unique identifier per item.
type Model[T any] struct {
	bus *event.Bus
	id  func(T) string

	items        []T
	cursor       int
	selected     map[string]struct{}
	visual       bool
	visualAnchor int
}

// NewModel returns an empty model publishing on bus. A nil bus disables
// notifications; the model stays usable standalone.
func NewModel[T any](bus *event.Bus, id func(T) string) *Model[T] {
	return &Model[T]{
		bus:      bus,
		id:       id,
		selected: make(map[string]struct{}),
	}
}

// SetItems replaces the item list wholesale, clamping the cursor into
// the new bounds (0 when the list is empty). With visual mode active the
// anchor-to-cursor range is recomputed against the new items. A
// cursor-moved notification is always published, even when the clamped
// index is unchanged, so consumers re-render after every refresh.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.clampCursor()
	if m.visual {
		m.recomputeRange()
	}
	events.Selection.Items(len(m.items), m.cursor)
	m.publishCursor()
}

// MoveDown moves the cursor count items toward the end, clamped to the
// last item with no wraparound.
func (m *Model[T]) MoveDown(count int) {
	m.moveTo(m.cursor + count)
}

// MoveUp moves the cursor count items toward the start, clamped to the
// first item with no wraparound.
func (m *Model[T]) MoveUp(count int) {
	m.moveTo(m.cursor - count)
}

// MoveToFirst jumps to index 0.
func (m *Model[T]) MoveToFirst() {
	m.moveTo(0)
}

// MoveToLast jumps to the final item.
func (m *Model[T]) MoveToLast() {
	m.moveTo(len(m.items) - 1)
}

// moveTo is the shared cursor-move routine: clamp, recompute the visual
// range when active, and publish the cursor position unconditionally.
func (m *Model[T]) moveTo(index int) {
	m.cursor = index
	m.clampCursor()
	if m.visual {
		m.recomputeRange()
	}
	events.Selection.Cursor(m.cursor)
	m.publishCursor()
}

// ToggleVisual flips visual mode. Entering records the anchor at the
// cursor, drops any previous selection, and selects the one-item range
// immediately; leaving clears the selection. The resulting id list is
// always published, possibly empty.
func (m *Model[T]) ToggleVisual() {
	m.visual = !m.visual
	if m.visual {
		m.visualAnchor = m.cursor
		m.selected = make(map[string]struct{})
		m.recomputeRange()
	} else {
		m.selected = make(map[string]struct{})
	}
	events.Selection.Visual(m.visual, m.visualAnchor)
	m.publishSelection()
}

// ToggleCurrent toggles set membership for the item under the cursor.
// No-op when the list is empty. Inside visual mode the next cursor move
// overwrites the set again; the toggle still applies immediately.
func (m *Model[T]) ToggleCurrent() {
	item, ok := m.Current()
	if !ok {
		return
	}
	id := m.id(item)
	if _, selected := m.selected[id]; selected {
		delete(m.selected, id)
		events.Selection.Toggle(id, false)
	} else {
		m.selected[id] = struct{}{}
		events.Selection.Toggle(id, true)
	}
	m.publishSelection()
}

// Clear empties the selection and forces visual mode off. This is the
// only operation that exits visual mode without toggling it.
func (m *Model[T]) Clear() {
	m.selected = make(map[string]struct{})
	m.visual = false
	events.Selection.Clear()
	m.publishSelection()
}

// SelectAll adds every item's id to the selection without touching
// visual mode.
func (m *Model[T]) SelectAll() {
	for _, item := range m.items {
		m.selected[m.id(item)] = struct{}{}
	}
	events.Selection.All(len(m.selected))
	m.publishSelection()
}

// Current returns the item under the cursor.
func (m *Model[T]) Current() (T, bool) {
	if len(m.items) == 0 || m.cursor < 0 || m.cursor >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor], true
}

// CursorIndex returns the clamped cursor position (0 when empty).
func (m *Model[T]) CursorIndex() int { return m.cursor }

// IsVisual reports whether visual mode is active.
func (m *Model[T]) IsVisual() bool { return m.visual }

// Len reports the item count.
func (m *Model[T]) Len() int { return len(m.items) }

// Items returns a copy of the current item list.
func (m *Model[T]) Items() []T {
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// IsSelected reports membership of id in the selected set.
func (m *Model[T]) IsSelected(id string) bool {
	_, ok := m.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in display order. Ids whose items
// vanished in a refresh stay in the set but have no display position, so
// they are omitted here until a recompute or clear prunes them.
func (m *Model[T]) SelectedIDs() []string {
	if len(m.selected) == 0 {
		return nil
	}
	out := make([]string, 0, len(m.selected))
	for _, item := range m.items {
		if id := m.id(item); m.IsSelected(id) {
			out = append(out, id)
		}
	}
	return out
}

// SelectedOrCurrent returns the selected items in display order, falling
// back to the item under the cursor when nothing is selected.
func (m *Model[T]) SelectedOrCurrent() []T {
	if len(m.selected) > 0 {
		out := make([]T, 0, len(m.selected))
		for _, item := range m.items {
			if m.IsSelected(m.id(item)) {
				out = append(out, item)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	if item, ok := m.Current(); ok {
		return []T{item}
	}
	return nil
}

func (m *Model[T]) clampCursor() {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
}

// recomputeRange replaces the selected set with the inclusive
// anchor-to-cursor span. The anchor may point past the end after a
// shrink; the span is clamped instead of mutating the anchor, so a later
// growth restores the original span.
func (m *Model[T]) recomputeRange() {
	m.selected = make(map[string]struct{})
	if len(m.items) == 0 {
		return
	}
	lo, hi := m.visualAnchor, m.cursor
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi >= len(m.items) {
		hi = len(m.items) - 1
	}
	for i := lo; i <= hi; i++ {
		m.selected[m.id(m.items[i])] = struct{}{}
	}
}

func (m *Model[T]) publishCursor() {
	if m.bus != nil {
		m.bus.Publish(event.CursorMoved, m.cursor)
	}
}

func (m *Model[T]) publishSelection() {
	if m.bus != nil {
		m.bus.Publish(event.SelectionChanged, m.SelectedIDs())
	}
}
