// Package command runs UI actions asynchronously as Bubble Tea
// commands, with trace logging around each invocation.
package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/logging/events"
)

// Request encapsulates one action invocation. Target identifies what
// the action operates on (a tab id, a URL) for trace purposes.
type Request struct {
	Name   string
	Target string
	Run    func() tea.Msg
}

// Bus coordinates the execution of UI actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting
// trace logs for the queue and result.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.Name, req.Target)
	return func() tea.Msg {
		if req.Run == nil {
			return nil
		}
		msg := req.Run()
		events.Command.Result(req.Name, fmt.Sprintf("%T", msg))
		return msg
	}
}
