package ui

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/tabnav/tabnav/internal/logging/events"
	"github.com/tabnav/tabnav/internal/session"
)

// applyFilter narrows the visible tabs to those matching query and
// refreshes the selection model. An empty query restores the full list.
func (m *Model) applyFilter(query string) {
	m.query = query
	m.refreshItems()
	if strings.TrimSpace(query) != "" {
		events.Filter.Append(query)
	}
}

// filterTabs matches query fuzzily against title and URL, preserving
// the snapshot order of the matches. When fuzzy matching finds nothing
// a plain substring pass over title, URL, and id runs as a fallback.
func filterTabs(tabs []session.Tab, query string) []session.Tab {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return tabs
	}
	labels := make([]string, len(tabs))
	for i, tab := range tabs {
		labels[i] = tab.Title + " " + tab.URL
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]session.Tab, 0, len(matches))
		for idx, tab := range tabs {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, tab)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]session.Tab, 0, len(tabs))
	for _, tab := range tabs {
		if strings.Contains(strings.ToLower(tab.Title), lower) ||
			strings.Contains(strings.ToLower(tab.URL), lower) ||
			strings.Contains(strings.ToLower(tab.ID), lower) {
			filtered = append(filtered, tab)
		}
	}
	return filtered
}
