package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/backend"
	"github.com/tabnav/tabnav/internal/logging"
	"github.com/tabnav/tabnav/internal/logging/events"
	"github.com/tabnav/tabnav/internal/session"
	"github.com/tabnav/tabnav/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Endpoint        string
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	KeymapPath      string
	SequenceTimeout time.Duration
	PollInterval    time.Duration
}

// Run bootstraps the session bridge and executes the Bubble Tea program.
func Run(cfg Config) error {
	client, err := session.NewClient(cfg.Endpoint, 5*time.Second)
	if err != nil {
		return fmt.Errorf("session client: %w", err)
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}

	// The stream is best-effort: without it the watcher still polls.
	var refresh <-chan session.StreamEvent
	if stream, serr := session.AttachStream(context.Background(), client); serr == nil {
		defer stream.Close()
		refresh = stream.Events()
		events.Backend.StreamAttach(client.Endpoint())
	} else {
		logging.Error(fmt.Errorf("event stream unavailable, falling back to polling: %w", serr))
	}

	watcher := backend.NewWatcher(client, interval, refresh)
	defer watcher.Stop()

	model, err := ui.NewModel(ui.Options{
		Client:          client,
		Watcher:         watcher,
		Width:           cfg.Width,
		Height:          cfg.Height,
		ShowFooter:      cfg.ShowFooter,
		Verbose:         cfg.Verbose,
		KeymapPath:      cfg.KeymapPath,
		SequenceTimeout: cfg.SequenceTimeout,
	})
	if err != nil {
		return fmt.Errorf("build ui: %w", err)
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
