// Package ui contains the Bubble Tea program that powers the tab popup.
// The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own key handling, filtering,
// rendering, and backend sync.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each tea.Msg through a typed handler registry so every
//     message kind is handled by a focused function (key presses, window
//     resizes, backend events, action results, keymap reloads).
//   - Key presses are translated into key events and resolved by the modal
//     dispatcher (internal/input), which buffers multi-key chords and runs
//     the bound action. Actions that need asynchronous work enqueue tea.Cmd
//     values, drained at the end of the Update that produced them. Keys the
//     dispatcher does not claim fall through to the active text input in
//     search and command modes.
//
// State ownership:
//   - Cursor, marks, and visual ranges live in internal/selection, which
//     publishes changes on the event bus.
//   - The tab store is provided by internal/state and kept in sync by the
//     data dispatcher, so the filtered item list always reflects current
//     browser data.
//   - Browser actions run through the internal/ui/command bus so every
//     request and result is traced uniformly.
//
// Backend interactions:
//   - A backend.Watcher polls the DevTools endpoint (nudged by push events
//     from the discovery stream); Update waits for those events and hands
//     them to applyBackendEvent, which refreshes the tab store and the
//     on-screen list.
//   - Tab actions (activate, close, open) run as tea.Cmd values against the
//     DevTools client; their actionResultMsg either quits, surfaces an
//     error, or triggers an immediate refetch.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (key resolution, filtering, backend sync) without
// needing to reason about the entire TUI at once.
package ui
