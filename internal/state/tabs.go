// Package state holds the shared tab store fed by the backend watcher
// and read by the UI. The store clones on both read and write so
// callers can never alias its internal slices.
package state

import "github.com/tabnav/tabnav/internal/session"

// TabStore keeps the latest tab snapshot and the id of the tab the
// browser reported as frontmost.
type TabStore interface {
	Entries() []session.Tab
	SetEntries([]session.Tab)
	Current() string
	SetCurrent(string)
	Stale() bool
	SetStale(bool)
}

type tabStore struct {
	entries []session.Tab
	current string
	stale   bool
}

// NewTabStore returns an empty store.
func NewTabStore() TabStore {
	return &tabStore{}
}

func (s *tabStore) Entries() []session.Tab {
	return session.CloneTabs(s.entries)
}

func (s *tabStore) SetEntries(entries []session.Tab) {
	s.entries = session.CloneTabs(entries)
}

func (s *tabStore) Current() string {
	return s.current
}

func (s *tabStore) SetCurrent(current string) {
	s.current = current
}

func (s *tabStore) Stale() bool {
	return s.stale
}

func (s *tabStore) SetStale(stale bool) {
	s.stale = stale
}
