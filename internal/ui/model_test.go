package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tabnav/tabnav/internal/backend"
	"github.com/tabnav/tabnav/internal/input/keymap"
	"github.com/tabnav/tabnav/internal/mode"
	"github.com/tabnav/tabnav/internal/session"
)

// fakeClient records every browser verb the UI issues.
type fakeClient struct {
	mu        sync.Mutex
	tabs      []session.Tab
	activated []string
	closed    []string
	opened    []string

	activateErr error
	closeErr    error
}

func (f *fakeClient) Activate(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activated = append(f.activated, id)
	return nil
}

func (f *fakeClient) Close(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closed = append(f.closed, id)
	remaining := f.tabs[:0]
	for _, tab := range f.tabs {
		if tab.ID != id {
			remaining = append(remaining, tab)
		}
	}
	f.tabs = remaining
	return nil
}

func (f *fakeClient) Open(ctx context.Context, target string) (session.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab := session.Tab{ID: "new", Title: "New Tab", URL: target, Type: "page"}
	f.opened = append(f.opened, target)
	f.tabs = append(f.tabs, tab)
	return tab, nil
}

// Targets lets the model's out-of-band refresh fetch the updated list.
func (f *fakeClient) Targets(ctx context.Context) ([]session.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]session.Tab(nil), f.tabs...), nil
}

func fixtureTabs() []session.Tab {
	return []session.Tab{
		{ID: "t1", Title: "GitHub", URL: "https://github.com/", Type: "page"},
		{ID: "t2", Title: "Go Packages", URL: "https://pkg.go.dev/", Type: "page"},
		{ID: "t3", Title: "Docs", URL: "https://docs.example.com/", Type: "page"},
	}
}

func newTestHarness(t *testing.T, tabs []session.Tab, opts ...func(*Options)) (*Harness, *fakeClient) {
	t.Helper()
	fc := &fakeClient{tabs: tabs}
	options := Options{Client: fc, Width: 80, Height: 20}
	for _, opt := range opts {
		opt(&options)
	}
	m, err := NewModel(options)
	require.NoError(t, err)
	h := NewHarness(m)
	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindTabs,
		Data: session.Snapshot{Tabs: tabs},
	}})
	return h, fc
}

func TestNavigation_CursorMoves(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	require.Equal(t, 0, m.sel.CursorIndex())
	h.Type("j")
	require.Equal(t, 1, m.sel.CursorIndex())
	h.Type("j")
	require.Equal(t, 2, m.sel.CursorIndex())
	h.Type("j")
	require.Equal(t, 2, m.sel.CursorIndex(), "cursor clamps at the end")
	h.Type("k")
	require.Equal(t, 1, m.sel.CursorIndex())

	h.Type("gg")
	require.Equal(t, 0, m.sel.CursorIndex())
	h.Type("G")
	require.Equal(t, 2, m.sel.CursorIndex())
	h.SendKey(tea.KeyHome)
	require.Equal(t, 0, m.sel.CursorIndex())
	h.SendKey(tea.KeyDown)
	require.Equal(t, 1, m.sel.CursorIndex())
}

func TestSelection_SpaceTogglesAndVisualExtends(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type(" ")
	require.Equal(t, []string{"t1"}, m.sel.SelectedIDs())
	h.Type(" ")
	require.Empty(t, m.sel.SelectedIDs())

	h.Type("v")
	require.True(t, m.sel.IsVisual())
	h.Type("j")
	require.ElementsMatch(t, []string{"t1", "t2"}, m.sel.SelectedIDs())
	h.Type("v")
	require.False(t, m.sel.IsVisual())
}

func TestActivate_EnterActivatesCurrentTab(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())

	h.Type("j")
	h.SendKey(tea.KeyEnter)

	require.Equal(t, []string{"t2"}, fc.activated)
}

func TestClose_DDClosesCurrentAndRefreshes(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("j")
	h.Type("dd")

	require.Equal(t, []string{"t2"}, fc.closed)
	// the refresh fetched the shrunken list from the fake
	require.Equal(t, 2, m.sel.Len())
}

func TestClose_DClosesEverySelectedTab(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("v")
	h.Type("j")
	h.Type("D")

	require.ElementsMatch(t, []string{"t1", "t2"}, fc.closed)
	require.Empty(t, m.sel.SelectedIDs(), "selection cleared after close")
	require.Equal(t, 1, m.sel.Len())
}

func TestClose_DWithoutSelectionShowsHint(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("D")

	require.Empty(t, fc.closed)
	require.Equal(t, "no tabs selected", m.currentInfo())
}

func TestClose_ErrorSurfacesInStatusLine(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())
	fc.closeErr = errors.New("target detached")
	m := h.Model()

	h.Type("dd")

	require.Contains(t, m.errMsg, "target detached")
	require.Contains(t, h.View(), "target detached")
}

func TestDuplicate_OpensCurrentURL(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())

	h.Type("o")

	require.Equal(t, []string{"https://github.com/"}, fc.opened)
}

func TestSearch_FiltersLiveAndEnterApplies(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("/")
	require.Equal(t, mode.Search, m.Mode())

	h.Type("docs")
	require.Equal(t, 1, m.sel.Len(), "filter narrows while typing")

	h.SendKey(tea.KeyEnter)
	require.Equal(t, mode.Normal, m.Mode())
	require.Equal(t, "docs", m.query)
	cur, ok := m.sel.Current()
	require.True(t, ok)
	require.Equal(t, "t3", cur.ID)
}

func TestSearch_EscapeDiscardsFilter(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("/")
	h.Type("docs")
	require.Equal(t, 1, m.sel.Len())

	h.SendKey(tea.KeyEsc)
	require.Equal(t, mode.Normal, m.Mode())
	require.Empty(t, m.query)
	require.Equal(t, 3, m.sel.Len())
}

func TestSearch_EscapeAfterApplyClearsQuery(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("/")
	h.Type("docs")
	h.SendKey(tea.KeyEnter)
	require.Equal(t, "docs", m.query)

	h.SendKey(tea.KeyEsc)
	require.Empty(t, m.query)
	require.Equal(t, 3, m.sel.Len())
}

func TestSearch_KeysAreTypedNotDispatched(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("/")
	h.Type("dd")

	// "dd" must land in the query, not close a tab
	require.Empty(t, fc.closed)
	require.Equal(t, "dd", m.searchInput.Value())
}

func TestCommand_OpenRunsAgainstClient(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type(":")
	require.Equal(t, mode.Command, m.Mode())
	h.Type("open https://example.net/")
	h.SendKey(tea.KeyEnter)

	require.Equal(t, mode.Normal, m.Mode())
	require.Equal(t, []string{"https://example.net/"}, fc.opened)
}

func TestCommand_UnknownNameSetsError(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type(":")
	h.Type("bogus")
	h.SendKey(tea.KeyEnter)

	require.Contains(t, m.errMsg, "unknown command: bogus")
}

func TestCommand_CloseSelected(t *testing.T) {
	h, fc := newTestHarness(t, fixtureTabs())

	h.Type(" ")
	h.Type("j")
	h.Type(" ")
	h.Type(":")
	h.Type("close-selected")
	h.SendKey(tea.KeyEnter)

	require.ElementsMatch(t, []string{"t1", "t2"}, fc.closed)
}

func TestHelp_ToggleShowsBindings(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("?")
	require.True(t, m.showHelp)
	view := h.View()
	require.Contains(t, view, "keys")
	require.Contains(t, view, "d d")
	require.Contains(t, view, "close the selected tabs")
	// The last registered binding must survive the 80x20 window: the
	// listing flows into extra columns rather than being cut short.
	require.Contains(t, view, "quit")
	require.LessOrEqual(t, len(strings.Split(view, "\n")), 20)

	h.SendKey(tea.KeyEsc)
	require.False(t, m.showHelp)
}

func TestHelpColumns_PacksWithinRowLimit(t *testing.T) {
	entries := []keymap.HelpEntry{
		{Keys: "j", Description: "down"},
		{Keys: "k", Description: "up"},
		{Keys: "g g", Description: "first"},
		{Keys: "G", Description: "last"},
		{Keys: "q", Description: "quit"},
	}

	rows := helpColumns(entries, 2)
	require.Len(t, rows, 2)
	require.Contains(t, rows[0], "g g")
	require.Contains(t, rows[0], "quit")
	require.Contains(t, rows[1], "last")

	// No row limit: a single column keeps registration order.
	require.Len(t, helpColumns(entries, 0), 5)
}

func TestView_ListsTabsWithHeader(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())

	view := h.View()
	require.Contains(t, view, "tabs: 3")
	require.Contains(t, view, "GitHub")
	require.Contains(t, view, "https://pkg.go.dev/")
	require.NotContains(t, view, "stale")
}

func TestView_MarksStaleSnapshot(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())

	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindTabs,
		Data: session.Snapshot{Tabs: fixtureTabs(), Stale: true},
		Err:  errors.New("connection refused"),
	}})

	view := h.View()
	require.Contains(t, view, "(stale)")
	require.Contains(t, view, "connection refused")
}

func TestView_EmptyListShowsPlaceholder(t *testing.T) {
	h, _ := newTestHarness(t, nil)
	require.Contains(t, h.View(), "(no tabs)")
}

func TestView_NoMatchesNamesTheQuery(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Type("/")
	h.Type("zzzz")
	require.Equal(t, 0, m.sel.Len())
	require.Contains(t, h.View(), `No matches for "zzzz"`)
}

func TestViewport_FollowsCursorInSmallWindow(t *testing.T) {
	many := make([]session.Tab, 20)
	for i := range many {
		many[i] = session.Tab{ID: string(rune('a' + i)), Title: tabTitle(i), Type: "page"}
	}
	h, _ := newTestHarness(t, many)
	m := h.Model()
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 10})

	h.Type("G")
	view := h.View()
	require.Contains(t, view, tabTitle(19))
	require.NotContains(t, view, tabTitle(0)+" ")
	require.Greater(t, m.viewportOffset, 0)

	h.Type("gg")
	require.Equal(t, 0, m.viewportOffset)
}

func tabTitle(i int) string {
	return "window-" + string(rune('A'+i))
}

func TestResize_WindowMessageUpdatesLayout(t *testing.T) {
	fc := &fakeClient{}
	m, err := NewModel(Options{Client: fc})
	require.NoError(t, err)
	h := NewHarness(m)

	h.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, 120, m.width)
	require.Equal(t, 40, m.height)
}

func TestResize_FixedDimensionsIgnoreTerminal(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Send(tea.WindowSizeMsg{Width: 200, Height: 60})
	require.Equal(t, 80, m.width)
	require.Equal(t, 20, m.height)
}

func TestKeymapOverlay_RebindsAndSkipsUnknownActions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	overlay := `bindings:
  - keys: "J"
    action: cursor.last
  - keys: "Z"
    action: no.such.action
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	h, _ := newTestHarness(t, fixtureTabs(), func(o *Options) {
		o.KeymapPath = path
	})
	m := h.Model()

	h.Type("J")
	require.Equal(t, 2, m.sel.CursorIndex())
	require.Contains(t, m.currentInfo(), "skipped")
}

func TestBackendDone_StopsRearming(t *testing.T) {
	h, _ := newTestHarness(t, fixtureTabs())
	m := h.Model()

	h.Send(backendDoneMsg{})
	require.Nil(t, m.backend)
}
