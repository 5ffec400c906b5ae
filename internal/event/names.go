package event

// Event names published on the application bus.
const (
	// CursorMoved carries the new cursor index (int). Published on every
	// cursor move and on every item refresh, even when the clamped index
	// is unchanged.
	CursorMoved = "cursor.moved"

	// SelectionChanged carries the selected tab IDs ([]string) in display
	// order. Published whenever the selected set or visual state changes.
	SelectionChanged = "selection.changed"

	// ModeChanged carries the new interaction mode name (string).
	ModeChanged = "mode.changed"

	// TabsUpdated carries the latest tab snapshot ([]session.Tab) after a
	// poll or a push event has been folded into the store.
	TabsUpdated = "tabs.updated"

	// BackendError carries an error from the session bridge.
	BackendError = "backend.error"
)
