package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/tabnav/tabnav/internal/format/table"
	"github.com/tabnav/tabnav/internal/input/keymap"
	"github.com/tabnav/tabnav/internal/mode"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		return m.viewHelp()
	}
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})

	items := m.sel.Items()
	if len(items) == 0 {
		msg := "(no tabs)"
		if strings.TrimSpace(m.query) != "" {
			msg = fmt.Sprintf("No matches for %q", m.query)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		m.syncViewport()
		start := 0
		display := items
		if maxRows := m.maxVisibleRows(); maxRows > 0 && len(display) > maxRows {
			start = m.viewportOffset
			if start < 0 {
				start = 0
			}
			if start+maxRows > len(display) {
				start = len(display) - maxRows
				if start < 0 {
					start = 0
				}
				m.viewportOffset = start
			}
			display = display[start : start+maxRows]
		}
		rows := make([][]string, len(display))
		for i, tab := range display {
			rows[i] = []string{tab.Title, tab.URL}
		}
		aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
		for i, tab := range display {
			lines = append(lines, m.buildItemLine(tab.ID, aligned[i], start+i))
		}
	}

	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "j/k move  v visual  space mark  enter activate  dd close  / search  : command  ? help", style: styles.Footer})
	}

	// Reserve 2 rows for the bottom bar (status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottom := []styledLine{m.statusLine()}
	lines = append(lines, applyWidth(bottom, m.width)...)
	rendered := renderLines(lines)
	return rendered + "\n" + m.promptLine()
}

func (m *Model) header() string {
	count := m.sel.Len()
	suffix := ""
	if m.tabs.Stale() {
		suffix = " (stale)"
	}
	return fmt.Sprintf("tabs: %d%s", count, suffix)
}

// buildItemLine renders one tab row: cursor indicator, selection mark,
// aligned title/URL columns, padded so the cursor row's background
// spans the width.
func (m *Model) buildItemLine(id, label string, idx int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	mark := " "
	if m.sel.IsSelected(id) {
		mark = "✓"
	}
	if idx == m.sel.CursorIndex() {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := fmt.Sprintf("%s %s %s", indicator, mark, label)
	if m.width > 0 {
		if pad := m.width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// statusLine shows an error when one is pending, otherwise the modal
// state: mode name, buffered chord, and selection count.
func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	parts := []string{m.modeBadge()}
	if pending := m.dispatcher.Pending(); pending != "" {
		parts = append(parts, pending)
	}
	if n := len(m.sel.SelectedIDs()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	return styledLine{text: strings.Join(parts, "  "), style: styles.Footer}
}

func (m *Model) modeBadge() string {
	if m.sel.IsVisual() {
		return "-- VISUAL --"
	}
	switch m.dispatcher.Mode() {
	case mode.Search:
		return "-- SEARCH --"
	case mode.Command:
		return "-- COMMAND --"
	case mode.Visual:
		return "-- VISUAL --"
	}
	return ""
}

// promptLine renders the active text-entry field; the views carry ANSI
// escapes, so truncation is width-aware.
func (m *Model) promptLine() string {
	var prompt string
	switch m.dispatcher.Mode() {
	case mode.Search:
		lead := "» "
		if styles.FilterPrompt != nil {
			lead = styles.FilterPrompt.Render(lead)
		}
		prompt = lead + m.searchInput.View()
	case mode.Command:
		lead := ":"
		if styles.FilterPrompt != nil {
			lead = styles.FilterPrompt.Render(lead)
		}
		prompt = lead + m.cmdInput.View()
	default:
		if m.query != "" {
			text := fmt.Sprintf("filter: %s", m.query)
			if styles.FilterPlaceholder != nil {
				text = styles.FilterPlaceholder.Render(text)
			}
			prompt = text
		}
	}
	if m.width > 0 && lipgloss.Width(prompt) > m.width {
		prompt = truncate.StringWithTail(prompt, uint(m.width-1), "…")
	}
	return prompt
}

// viewHelp lists the bindings active in the current mode. The listing
// flows into extra columns when the terminal is too short for a single
// one, so every binding stays visible.
func (m *Model) viewHelp() string {
	lines := []styledLine{
		{text: fmt.Sprintf("keys (%s mode)", m.dispatcher.Mode()), style: styles.Header},
		{},
	}
	// Header, the blank after it, the blank before the footer, footer.
	for _, row := range helpColumns(m.dispatcher.Help(), m.height-4) {
		lines = append(lines, styledLine{text: row, style: styles.Item})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "? or esc to close", style: styles.Footer})
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// helpColumns packs the help entries into the fewest columns that keep
// the row count at or under maxRows. Columns fill top to bottom, left
// to right; only the rightmost column may run short.
func helpColumns(entries []keymap.HelpEntry, maxRows int) []string {
	if len(entries) == 0 {
		return nil
	}
	if maxRows <= 0 || maxRows > len(entries) {
		maxRows = len(entries)
	}
	cols := (len(entries) + maxRows - 1) / maxRows
	rows := (len(entries) + cols - 1) / cols

	columns := make([][]string, 0, cols)
	for start := 0; start < len(entries); start += rows {
		end := start + rows
		if end > len(entries) {
			end = len(entries)
		}
		chunk := make([][]string, end-start)
		for i, e := range entries[start:end] {
			chunk[i] = []string{e.Keys, e.Description}
		}
		columns = append(columns, table.Format(chunk, []table.Alignment{table.AlignLeft, table.AlignLeft}))
	}

	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		parts := make([]string, 0, len(columns))
		for _, col := range columns {
			if r < len(col) {
				parts = append(parts, col[r])
			}
		}
		out[r] = strings.TrimRight(strings.Join(parts, "   "), " ")
	}
	return out
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{
			text:          truncateText(line.text, width),
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
