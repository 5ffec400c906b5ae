package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/logging/events"
)

// executeCommand runs one ex-style command line. Unknown commands set
// the error line instead of failing the program.
func (m *Model) executeCommand(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	events.Command.Execute(line)
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	switch name {
	case "q", "quit":
		events.UI.Quit("command")
		return tea.Quit
	case "help":
		m.toggleHelp()
		return nil
	case "reload":
		events.Tab.Reload()
		return m.refreshCmd()
	case "open":
		if len(args) == 0 {
			m.errMsg = "open: missing URL"
			return nil
		}
		return m.openCmd("tab.open", args[0])
	case "close-selected":
		m.closeAllSelected()
		return nil
	default:
		events.Command.Unknown(name)
		m.errMsg = fmt.Sprintf("unknown command: %s", name)
		return nil
	}
}
