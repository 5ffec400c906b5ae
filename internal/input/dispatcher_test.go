package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tabnav/tabnav/internal/event"
	"github.com/tabnav/tabnav/internal/input/key"
	"github.com/tabnav/tabnav/internal/mode"
)

func press(k string) key.Event { return key.Event{Key: k} }

func TestHandleKey_SingleKeyBindingFires(t *testing.T) {
	d := NewDispatcher(Config{})
	var fired int
	require.NoError(t, d.Register("j", func() { fired++ }, "cursor down"))

	require.True(t, d.HandleKey(press("j")))
	require.Equal(t, 1, fired)
	require.Empty(t, d.Pending())
}

func TestHandleKey_UnrecognizedKeyReturnsFalseWithCleanBuffer(t *testing.T) {
	d := NewDispatcher(Config{})
	require.NoError(t, d.Register("j", func() {}, "down"))

	require.False(t, d.HandleKey(press("z")))
	require.Empty(t, d.Pending())
	require.True(t, d.HandleKey(press("j")), "a later key must dispatch cleanly")
}

func TestHandleKey_ChordResolvesAcrossPresses(t *testing.T) {
	d := NewDispatcher(Config{})
	var fired int
	require.NoError(t, d.Register("gg", func() { fired++ }, "first tab"))

	require.True(t, d.HandleKey(press("g")), "prefix press is consumed as pending")
	require.Zero(t, fired)
	require.Equal(t, "g", d.Pending())

	require.True(t, d.HandleKey(press("g")))
	require.Equal(t, 1, fired)
	require.Empty(t, d.Pending())
}

func TestHandleKey_ModifierChordSequence(t *testing.T) {
	d := NewDispatcher(Config{})
	var fired int
	require.NoError(t, d.Register("Ctrl+w q", func() { fired++ }, "close"))

	require.True(t, d.HandleKey(key.Event{Key: "w", Ctrl: true}))
	require.Equal(t, "Ctrl+w", d.Pending())
	require.True(t, d.HandleKey(press("q")))
	require.Equal(t, 1, fired)
}

func TestHandleKey_TimeoutClearsPendingWithoutFiring(t *testing.T) {
	d := NewDispatcher(Config{SequenceTimeout: 40 * time.Millisecond})
	var fired int
	require.NoError(t, d.Register("gg", func() { fired++ }, "first tab"))

	require.True(t, d.HandleKey(press("g")))
	time.Sleep(120 * time.Millisecond)
	require.Empty(t, d.Pending())
	require.Zero(t, fired)

	// after expiry the next press restarts the pending state instead of
	// completing the old chord
	require.True(t, d.HandleKey(press("g")))
	require.Equal(t, "g", d.Pending())
	require.Zero(t, fired)

	require.True(t, d.HandleKey(press("g")))
	require.Equal(t, 1, fired)
}

func TestHandleKey_NextPressCancelsAndRestartsTimer(t *testing.T) {
	d := NewDispatcher(Config{SequenceTimeout: 120 * time.Millisecond})
	var fired int
	require.NoError(t, d.Register("ggg", func() { fired++ }, "triple"))

	require.True(t, d.HandleKey(press("g")))
	time.Sleep(70 * time.Millisecond)
	// second press lands inside the first window and must restart it
	require.True(t, d.HandleKey(press("g")))
	time.Sleep(70 * time.Millisecond)
	// 140ms after the first press the buffer is still alive because the
	// restarted window has 50ms left
	require.Equal(t, "g g", d.Pending())

	require.True(t, d.HandleKey(press("g")))
	require.Equal(t, 1, fired)
}

func TestHandleKey_ExactMatchDefersToLongerBinding(t *testing.T) {
	d := NewDispatcher(Config{SequenceTimeout: 40 * time.Millisecond})
	var dFired, ddFired int
	require.NoError(t, d.Register("d", func() { dFired++ }, "close one"))
	require.NoError(t, d.Register("dd", func() { ddFired++ }, "close hard"))

	// "d" is complete but also prefixes "dd": it must wait, not fire
	require.True(t, d.HandleKey(press("d")))
	require.Zero(t, dFired)
	require.Equal(t, "d", d.Pending())

	require.True(t, d.HandleKey(press("d")))
	require.Equal(t, 1, ddFired)
	require.Zero(t, dFired)

	// the deferred short match does not late-fire when the window expires
	require.True(t, d.HandleKey(press("d")))
	time.Sleep(120 * time.Millisecond)
	require.Zero(t, dFired)
	require.Empty(t, d.Pending())
}

func TestHandleKey_ModeScopedBindingRefusedInOtherMode(t *testing.T) {
	d := NewDispatcher(Config{})
	var fired int
	require.NoError(t, d.Register("x", func() { fired++ }, "toggle", mode.Normal))

	d.SetMode(mode.Search)
	require.False(t, d.HandleKey(press("x")))
	require.Zero(t, fired)
}

func TestHandleKey_TextEntryModeOwnsOrdinaryKeys(t *testing.T) {
	d := NewDispatcher(Config{})
	var fired int
	// even a binding scoped to search mode cannot claim ordinary keys
	// there; only Escape and Enter reach the registry
	require.NoError(t, d.Register("x", func() { fired++ }, "toggle", mode.Search))

	d.SetMode(mode.Search)
	require.False(t, d.HandleKey(press("x")))
	require.Zero(t, fired)
}

func TestHandleKey_EscapeReachesBindingsDuringTextEntry(t *testing.T) {
	d := NewDispatcher(Config{})
	var escaped, entered int
	require.NoError(t, d.Register("Escape", func() { escaped++ }, "leave search", mode.Search))
	require.NoError(t, d.Register("Enter", func() { entered++ }, "apply search", mode.Search))

	d.SetMode(mode.Search)
	require.True(t, d.HandleKey(press("Escape")))
	require.Equal(t, 1, escaped)
	require.True(t, d.HandleKey(press("Enter")))
	require.Equal(t, 1, entered)
}

func TestHandleKey_PreventDefaultOnlyOnResolvedMatch(t *testing.T) {
	d := NewDispatcher(Config{})
	var prevented int
	pd := func() { prevented++ }
	require.NoError(t, d.Register("j", func() {}, "down"))
	require.NoError(t, d.Register("gg", func() {}, "first"))

	require.True(t, d.HandleKey(key.Event{Key: "j", PreventDefault: pd}))
	require.Equal(t, 1, prevented)

	require.True(t, d.HandleKey(key.Event{Key: "g", PreventDefault: pd}))
	require.Equal(t, 1, prevented, "pending prefix must not suppress the host default")

	require.False(t, d.HandleKey(key.Event{Key: "z", PreventDefault: pd}))
	require.Equal(t, 1, prevented)
}

func TestHandleKey_PanickingHandlerLeavesCleanState(t *testing.T) {
	d := NewDispatcher(Config{})
	require.NoError(t, d.Register("b", func() { panic("handler exploded") }, "bad"))
	require.NoError(t, d.Register("j", func() {}, "down"))

	require.Panics(t, func() { d.HandleKey(press("b")) })
	require.Empty(t, d.Pending(), "buffer resets before the handler runs")
	require.True(t, d.HandleKey(press("j")))
}

func TestSetMode_ClearsBufferCancelsTimerAndPublishes(t *testing.T) {
	bus := event.NewBus()
	d := NewDispatcher(Config{Bus: bus, SequenceTimeout: 40 * time.Millisecond})
	require.NoError(t, d.Register("gg", func() {}, "first"))

	var announced []string
	bus.Subscribe(event.ModeChanged, func(payload any) {
		announced = append(announced, payload.(string))
	})

	require.True(t, d.HandleKey(press("g")))
	d.SetMode(mode.Command)
	require.Empty(t, d.Pending())
	require.Equal(t, []string{"command"}, announced)
	require.Equal(t, mode.Command, d.Mode())

	// an expiry from the cancelled timer must not disturb later state
	d.SetMode(mode.Normal)
	require.True(t, d.HandleKey(press("g")))
	time.Sleep(60 * time.Millisecond)
	require.Empty(t, d.Pending())
}

func TestRegister_OverwriteReplacesSilently(t *testing.T) {
	d := NewDispatcher(Config{})
	var first, second int
	require.NoError(t, d.Register("q", func() { first++ }, "quit"))
	require.NoError(t, d.Register("q", func() { second++ }, "quit for real"))

	require.True(t, d.HandleKey(press("q")))
	require.Zero(t, first)
	require.Equal(t, 1, second)
	require.Len(t, d.Bindings(), 1)
}

func TestRegister_RejectsEmptySequence(t *testing.T) {
	d := NewDispatcher(Config{})
	require.Error(t, d.Register("", func() {}, "nothing"))
}

func TestUnregister_RemovesAndIgnoresUnknown(t *testing.T) {
	d := NewDispatcher(Config{})
	var fired int
	require.NoError(t, d.Register("j", func() { fired++ }, "down"))

	d.Unregister("j")
	require.False(t, d.HandleKey(press("j")))
	require.Zero(t, fired)

	d.Unregister("never-bound")
	d.Unregister("")
}

func TestBindingsAndHelp(t *testing.T) {
	d := NewDispatcher(Config{})
	require.NoError(t, d.Register("j", func() {}, "cursor down"))
	require.NoError(t, d.Register("Escape", func() {}, "leave search", mode.Search))

	info := d.Bindings()
	require.Len(t, info, 2)
	require.Equal(t, "cursor down", info["j"].Description)
	require.Equal(t, []mode.Mode{mode.Search}, info["Escape"].Modes)

	help := d.Help()
	require.Len(t, help, 1, "help is scoped to the current mode")
	require.Equal(t, "j", help[0].Keys)

	d.SetMode(mode.Search)
	help = d.Help()
	require.Len(t, help, 1)
	require.Equal(t, "Escape", help[0].Keys)
}

func TestResetBindings_DropsRegistryAndPending(t *testing.T) {
	d := NewDispatcher(Config{})
	require.NoError(t, d.Register("gg", func() {}, "first"))
	require.True(t, d.HandleKey(press("g")))

	d.ResetBindings()
	require.Empty(t, d.Pending())
	require.False(t, d.HandleKey(press("g")))
	require.Empty(t, d.Bindings())
}
