package ui

// maxVisibleRows reports how many item rows the current layout can
// show: total height minus the header and bottom chrome.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + status line + prompt line
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

// halfPage is the jump distance for the half-page movements.
func (m *Model) halfPage() int {
	page := m.maxVisibleRows()
	if page <= 0 {
		page = m.sel.Len()
	}
	half := page / 2
	if half < 1 {
		half = 1
	}
	return half
}

// syncViewport slides the viewport offset so the cursor stays visible.
func (m *Model) syncViewport() {
	count := m.sel.Len()
	if count == 0 {
		m.viewportOffset = 0
		return
	}
	maxVisible := m.maxVisibleRows()
	if maxVisible <= 0 {
		m.viewportOffset = 0
		return
	}
	cursor := m.sel.CursorIndex()
	maxOffset := count - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.viewportOffset > maxOffset {
		m.viewportOffset = maxOffset
	}
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
	if cursor < m.viewportOffset {
		m.viewportOffset = cursor
	}
	upper := m.viewportOffset + maxVisible - 1
	if cursor > upper {
		m.viewportOffset = cursor - maxVisible + 1
		if m.viewportOffset < 0 {
			m.viewportOffset = 0
		}
		if m.viewportOffset > maxOffset {
			m.viewportOffset = maxOffset
		}
	}
}
