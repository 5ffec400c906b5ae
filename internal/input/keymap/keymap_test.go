package keymap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabnav/tabnav/internal/input/key"
	"github.com/tabnav/tabnav/internal/mode"
)

func binding(keys string, modes ...mode.Mode) Binding {
	return Binding{
		Sequence: key.MustParseSequence(keys),
		Handler:  func() {},
		Modes:    modes,
	}
}

func TestSet_ReplacesOnEqualSequence(t *testing.T) {
	m := NewMap()
	var fired string
	first := binding("gg")
	first.Handler = func() { fired = "first" }
	second := binding("gg")
	second.Handler = func() { fired = "second" }

	m.Set(first)
	m.Set(second)
	require.Equal(t, 1, m.Len())

	b, ok := m.Lookup(key.MustParseSequence("gg"), mode.Normal)
	require.True(t, ok)
	b.Handler()
	require.Equal(t, "second", fired)
}

func TestSet_ReplacementKeepsRegistrationOrder(t *testing.T) {
	m := NewMap()
	m.Set(Binding{Sequence: key.MustParseSequence("a"), Handler: func() {}, Description: "alpha"})
	m.Set(Binding{Sequence: key.MustParseSequence("b"), Handler: func() {}, Description: "beta"})
	m.Set(Binding{Sequence: key.MustParseSequence("a"), Handler: func() {}, Description: "alpha2"})

	help := m.HelpFor(mode.Normal)
	require.Equal(t, []HelpEntry{{Keys: "a", Description: "alpha2"}, {Keys: "b", Description: "beta"}}, help)
}

func TestDelete_RemovesBinding(t *testing.T) {
	m := NewMap()
	m.Set(binding("dd"))
	m.Delete(key.MustParseSequence("dd"))
	_, ok := m.Lookup(key.MustParseSequence("dd"), mode.Normal)
	require.False(t, ok)
}

func TestDelete_AbsentSequenceIsNoOp(t *testing.T) {
	m := NewMap()
	m.Set(binding("x"))
	m.Delete(key.MustParseSequence("zz"))
	require.Equal(t, 1, m.Len())
}

func TestLookup_DefaultScopeIsNormalOnly(t *testing.T) {
	m := NewMap()
	m.Set(binding("x"))

	_, ok := m.Lookup(key.MustParseSequence("x"), mode.Normal)
	require.True(t, ok)
	_, ok = m.Lookup(key.MustParseSequence("x"), mode.Search)
	require.False(t, ok)
	_, ok = m.Lookup(key.MustParseSequence("x"), mode.Visual)
	require.False(t, ok)
}

func TestLookup_ExplicitModeScope(t *testing.T) {
	m := NewMap()
	m.Set(binding("v", mode.Normal, mode.Visual))

	_, ok := m.Lookup(key.MustParseSequence("v"), mode.Visual)
	require.True(t, ok)
	_, ok = m.Lookup(key.MustParseSequence("v"), mode.Command)
	require.False(t, ok)
}

func TestHasPrefix_ProperPrefixOnly(t *testing.T) {
	m := NewMap()
	m.Set(binding("gg"))

	require.True(t, m.HasPrefix(key.MustParseSequence("g"), mode.Normal))
	// a full-length match is not its own proper prefix
	require.False(t, m.HasPrefix(key.MustParseSequence("gg"), mode.Normal))
	require.False(t, m.HasPrefix(key.MustParseSequence("d"), mode.Normal))
}

func TestHasPrefix_RespectsModeScope(t *testing.T) {
	m := NewMap()
	m.Set(binding("gg", mode.Visual))

	require.True(t, m.HasPrefix(key.MustParseSequence("g"), mode.Visual))
	require.False(t, m.HasPrefix(key.MustParseSequence("g"), mode.Normal))
}

func TestHelpFor_FiltersAndOrders(t *testing.T) {
	m := NewMap()
	m.Set(Binding{Sequence: key.MustParseSequence("j"), Handler: func() {}, Description: "down"})
	m.Set(Binding{Sequence: key.MustParseSequence("v"), Handler: func() {}, Description: "visual", Modes: []mode.Mode{mode.Normal, mode.Visual}})
	m.Set(Binding{Sequence: key.MustParseSequence("Escape"), Handler: func() {}, Description: "back", Modes: []mode.Mode{mode.Visual}})

	require.Equal(t, []HelpEntry{
		{Keys: "j", Description: "down"},
		{Keys: "v", Description: "visual"},
	}, m.HelpFor(mode.Normal))

	require.Equal(t, []HelpEntry{
		{Keys: "v", Description: "visual"},
		{Keys: "Escape", Description: "back"},
	}, m.HelpFor(mode.Visual))
}

func TestBindings_ReturnsSnapshot(t *testing.T) {
	m := NewMap()
	m.Set(binding("j"))
	snap := m.Bindings()
	require.Len(t, snap, 1)
	snap[0].Description = "mutated"
	require.Empty(t, m.Bindings()[0].Description)
}
