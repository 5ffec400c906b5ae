package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnav/tabnav/internal/backend"
	datadispatch "github.com/tabnav/tabnav/internal/data/dispatcher"
	"github.com/tabnav/tabnav/internal/event"
	"github.com/tabnav/tabnav/internal/input"
	"github.com/tabnav/tabnav/internal/input/keymap"
	"github.com/tabnav/tabnav/internal/mode"
	"github.com/tabnav/tabnav/internal/selection"
	"github.com/tabnav/tabnav/internal/session"
	"github.com/tabnav/tabnav/internal/state"
	"github.com/tabnav/tabnav/internal/theme"
	"github.com/tabnav/tabnav/internal/ui/command"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// TabController is the slice of the session client the UI drives.
type TabController interface {
	Activate(ctx context.Context, id string) error
	Close(ctx context.Context, id string) error
	Open(ctx context.Context, target string) (session.Tab, error)
}

// Options configures a Model.
type Options struct {
	Client          TabController
	Watcher         *backend.Watcher
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	KeymapPath      string
	SequenceTimeout time.Duration
}

// Model implements the Bubble Tea model for the tab popup. The modal
// engine owns key resolution and cursor/selection state; the model
// routes messages, holds view concerns, and queues the tea.Cmds that
// bound handlers produce.
type Model struct {
	bus        *event.Bus
	dispatcher *input.Dispatcher
	controller *mode.Controller
	sel        *selection.Model[session.Tab]
	tabs       state.TabStore
	data       *datadispatch.Dispatcher
	client     TabController
	backend    *backend.Watcher
	cmdBus     *command.Bus

	searchInput textinput.Model
	cmdInput    textinput.Model
	query       string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	showHelp    bool

	viewportOffset int

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	keymapPath    string
	keymapWatcher *keymap.Watcher

	handlers map[reflect.Type]msgHandler

	// queue collects commands produced by dispatcher handlers during a
	// single HandleKey call; drained at the end of each Update.
	queue []tea.Cmd
}

// NewModel initialises the UI around the modal engine. The keymap
// overlay, when configured, is loaded on top of the default bindings
// and watched for changes.
func NewModel(opts Options) (*Model, error) {
	bus := event.NewBus()
	sel := selection.NewModel(bus, func(t session.Tab) string { return t.ID })
	disp := input.NewDispatcher(input.Config{Bus: bus, SequenceTimeout: opts.SequenceTimeout})
	tabs := state.NewTabStore()

	m := &Model{
		bus:        bus,
		dispatcher: disp,
		controller: mode.NewController(disp, sel),
		sel:        sel,
		tabs:       tabs,
		data:       datadispatch.New(tabs, bus),
		client:     opts.Client,
		backend:    opts.Watcher,
		cmdBus:     command.New(),
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		keymapPath: opts.KeymapPath,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	m.searchInput = newPromptInput("(type to search)")
	m.cmdInput = newPromptInput("")

	m.registerBindings()
	if m.keymapPath != "" {
		if err := m.loadKeymapOverlay(); err != nil {
			return nil, err
		}
		w, err := keymap.WatchFile(m.keymapPath, 200*time.Millisecond)
		if err == nil {
			m.keymapWatcher = w
		}
	}
	m.registerHandlers()
	return m, nil
}

func newPromptInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Cursor = cursor.New()
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		ti.TextStyle = *styles.Filter
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	return ti
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.keymapWatcher != nil {
		cmds = append(cmds, waitForKeymapReload(m.keymapWatcher))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages through the typed handler
// registry.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(actionResultMsg{}):   m.handleActionResultMsg,
		reflect.TypeOf(keymapReloadMsg{}):   m.handleKeymapReloadMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate drains the handler queue into the outgoing batch.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.queue) > 0 {
		cmds = append(cmds, m.queue...)
		m.queue = nil
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// enqueue defers a command produced inside a dispatcher handler.
func (m *Model) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		m.queue = append(m.queue, cmd)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

// Mode exposes the dispatcher mode for the view and tests.
func (m *Model) Mode() mode.Mode {
	return m.dispatcher.Mode()
}
