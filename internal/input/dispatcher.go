// Package input implements the modal key dispatcher: it folds raw key
// presses into mode-scoped binding lookups, buffering ambiguous prefixes
// (a lone "g" when "gg" is bound) until a longer match lands or the
// ambiguity timeout clears the buffer.
package input

import (
	"sync"
	"time"

	"github.com/tabnav/tabnav/internal/event"
	"github.com/tabnav/tabnav/internal/input/key"
	"github.com/tabnav/tabnav/internal/input/keymap"
	"github.com/tabnav/tabnav/internal/logging/events"
	"github.com/tabnav/tabnav/internal/mode"
)

// DefaultSequenceTimeout bounds how long a pending prefix waits for its
// next key before the buffer is abandoned.
const DefaultSequenceTimeout = 500 * time.Millisecond

// Config carries dispatcher construction options.
type Config struct {
	Bus *event.Bus
	// SequenceTimeout overrides DefaultSequenceTimeout when positive.
	SequenceTimeout time.Duration
}

// BindingInfo describes one registered binding for introspection.
type BindingInfo struct {
	Description string
	Modes       []mode.Mode
}

// Dispatcher owns the current mode, the pending sequence buffer, and the
// binding registry. All binding resolution happens synchronously on the
// goroutine feeding HandleKey; the mutex exists only because the expiry
// callback of the ambiguity timer runs off that goroutine.
type Dispatcher struct {
	bus     *event.Bus
	timeout time.Duration

	mu       sync.Mutex
	bindings *keymap.Map
	mode     mode.Mode
	buffer   key.Sequence
	timer    *time.Timer
	timerGen uint64
}

// NewDispatcher returns a dispatcher in normal mode with an empty
// registry.
func NewDispatcher(cfg Config) *Dispatcher {
	timeout := cfg.SequenceTimeout
	if timeout <= 0 {
		timeout = DefaultSequenceTimeout
	}
	return &Dispatcher{
		bus:      cfg.Bus,
		timeout:  timeout,
		bindings: keymap.NewMap(),
		mode:     mode.Normal,
	}
}

// Register parses sequence and adds the binding, silently replacing an
// existing binding for the same sequence. The only constraint on the
// sequence is that it parses to at least one token; handlers that do
// nothing are accepted. An empty modes list scopes the binding to
// normal mode.
func (d *Dispatcher) Register(sequence string, handler func(), description string, modes ...mode.Mode) error {
	seq, err := key.ParseSequence(sequence)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.bindings.Set(keymap.Binding{
		Sequence:    seq,
		Handler:     handler,
		Description: description,
		Modes:       modes,
	})
	d.mu.Unlock()
	return nil
}

// Unregister removes the binding for sequence if present; unknown or
// malformed sequences are a no-op.
func (d *Dispatcher) Unregister(sequence string) {
	seq, err := key.ParseSequence(sequence)
	if err != nil {
		return
	}
	d.mu.Lock()
	d.bindings.Delete(seq)
	d.mu.Unlock()
}

// Mode returns the current dispatch mode.
func (d *Dispatcher) Mode() mode.Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// SetMode switches the dispatch mode, clears the pending buffer, cancels
// any outstanding ambiguity timer, and announces the change on the bus.
func (d *Dispatcher) SetMode(m mode.Mode) {
	d.mu.Lock()
	d.mode = m
	d.buffer = nil
	d.cancelTimerLocked()
	d.mu.Unlock()
	events.Key.Mode(m.String())
	if d.bus != nil {
		d.bus.Publish(event.ModeChanged, m.String())
	}
}

// Pending returns the buffered-but-unresolved sequence, for status line
// echo. Empty when no chord is in flight.
func (d *Dispatcher) Pending() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffer.String()
}

// HandleKey resolves one raw key press. It returns true when the press
// was consumed: either a binding fired, or the press extended a chord
// that is still waiting for more keys. False means the press is not
// recognized in the current mode and the host may apply its own
// behavior.
func (d *Dispatcher) HandleKey(ev key.Event) bool {
	tok := key.Normalize(ev)

	d.mu.Lock()
	// Text-entry modes own every keystroke except Escape and Enter,
	// which still reach bindings so mode exits can be bound.
	if d.mode != mode.Normal && ev.Key != "Escape" && ev.Key != "Enter" {
		d.mu.Unlock()
		return false
	}

	d.buffer = append(d.buffer, tok)
	d.cancelTimerLocked()
	seq := d.buffer.Clone()
	md := d.mode

	// A longer binding sharing the buffer as a proper prefix wins over
	// an exact match: with both "d" and "dd" bound, a lone "d" waits for
	// the chord instead of firing. The timeout then clears the buffer
	// without late-firing the short match.
	if d.bindings.HasPrefix(seq, md) {
		d.armTimerLocked(seq)
		d.mu.Unlock()
		events.Key.Pending(seq.String(), md.String())
		return true
	}

	if binding, ok := d.bindings.Lookup(seq, md); ok {
		// The buffer is reset before the handler runs so a panicking
		// handler cannot leave a stale chord behind.
		d.buffer = nil
		d.mu.Unlock()
		if ev.PreventDefault != nil {
			ev.PreventDefault()
		}
		events.Key.Match(seq.String(), md.String())
		binding.Handler()
		return true
	}

	d.buffer = nil
	d.mu.Unlock()
	events.Key.Drop(seq.String(), md.String())
	return false
}

// Bindings returns the registry contents keyed by rendered sequence.
func (d *Dispatcher) Bindings() map[string]BindingInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]BindingInfo)
	for _, b := range d.bindings.Bindings() {
		out[b.Sequence.String()] = BindingInfo{Description: b.Description, Modes: b.Modes}
	}
	return out
}

// Help lists the bindings active in the current mode, in registration
// order.
func (d *Dispatcher) Help() []keymap.HelpEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bindings.HelpFor(d.mode)
}

// ResetBindings swaps in a fresh registry; used by keymap reloads. The
// pending buffer is cleared since its prefix may no longer exist.
func (d *Dispatcher) ResetBindings() {
	d.mu.Lock()
	d.bindings = keymap.NewMap()
	d.buffer = nil
	d.cancelTimerLocked()
	d.mu.Unlock()
}

// armTimerLocked schedules the one-shot ambiguity timer. Arming bumps
// the generation counter so that an expiry racing a later cancel can
// recognize it has been superseded. Callers must hold d.mu.
func (d *Dispatcher) armTimerLocked(seq key.Sequence) {
	d.timerGen++
	gen := d.timerGen
	d.timer = time.AfterFunc(d.timeout, func() { d.expireBuffer(gen, seq) })
}

// cancelTimerLocked stops any outstanding timer and invalidates expiries
// already in flight. Callers must hold d.mu.
func (d *Dispatcher) cancelTimerLocked() {
	d.timerGen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Dispatcher) expireBuffer(gen uint64, seq key.Sequence) {
	d.mu.Lock()
	if gen != d.timerGen {
		d.mu.Unlock()
		return
	}
	d.buffer = nil
	d.timer = nil
	d.mu.Unlock()
	events.Key.Timeout(seq.String())
}
