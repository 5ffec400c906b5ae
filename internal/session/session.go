// Package session talks to a browser's remote-debugging endpoint: tab
// enumeration and the activate/close/open verbs over the plain JSON
// HTTP surface, plus a websocket stream of target lifecycle events used
// to refresh ahead of the next poll.
package session

import "errors"

// Tab is one page target as reported by the endpoint. ID is stable for
// the lifetime of the target.
type Tab struct {
	ID    string
	Title string
	URL   string
	Type  string
	// Attached reports that another debugging client holds the target's
	// websocket; such tabs can still be activated and closed.
	Attached bool
}

// Snapshot is the result of one tab enumeration.
type Snapshot struct {
	Tabs []Tab
	// Stale marks a snapshot served from cache after a failed fetch.
	Stale bool
}

// Version is the endpoint handshake.
type Version struct {
	Browser              string
	ProtocolVersion      string
	WebSocketDebuggerURL string
}

// ErrNoEndpoint is returned when the client has no endpoint configured.
var ErrNoEndpoint = errors.New("no debugging endpoint configured")

// CloneTabs produces an independent copy of tabs. Empty input clones to
// nil.
func CloneTabs(tabs []Tab) []Tab {
	if len(tabs) == 0 {
		return nil
	}
	dup := make([]Tab, len(tabs))
	copy(dup, tabs)
	return dup
}
