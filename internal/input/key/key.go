// Package key defines the structured key tokens consumed by the
// dispatcher. A Token is a comparable value, so sequences are matched
// structurally instead of by joining strings, and a binding for Ctrl+x
// can never collide with a key whose name happens to contain "Ctrl+".
package key

import (
	"strings"
	"unicode/utf8"
)

// Event is a raw key press as reported by the host UI layer, before
// normalization. PreventDefault, when non-nil, asks the host to suppress
// its own handling of the key; the dispatcher calls it when a binding
// consumes the key.
type Event struct {
	Key            string
	Ctrl           bool
	Alt            bool
	Meta           bool
	Shift          bool
	PreventDefault func()
}

// Token is one normalized key press. The zero value is invalid.
type Token struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Meta  bool
	Shift bool
}

// Normalize converts a raw event into its canonical token. A literal
// space becomes the named key "Space", and the Shift flag is kept only
// for named (multi-rune) keys; for plain characters the shifted rune
// already carries the distinction.
func Normalize(ev Event) Token {
	k := ev.Key
	if k == " " {
		k = "Space"
	}
	tok := Token{Key: k, Ctrl: ev.Ctrl, Alt: ev.Alt, Meta: ev.Meta}
	if ev.Shift && utf8.RuneCountInString(k) > 1 {
		tok.Shift = true
	}
	return tok
}

// String renders the token with modifiers in the fixed order
// Ctrl, Alt, Meta, Shift, e.g. "Ctrl+Shift+Tab" or "g".
func (t Token) String() string {
	var b strings.Builder
	if t.Ctrl {
		b.WriteString("Ctrl+")
	}
	if t.Alt {
		b.WriteString("Alt+")
	}
	if t.Meta {
		b.WriteString("Meta+")
	}
	if t.Shift {
		b.WriteString("Shift+")
	}
	b.WriteString(t.Key)
	return b.String()
}

// IsNamed reports whether the token's key is a named special key such as
// "Enter" or "PageUp" rather than a printable character.
func (t Token) IsNamed() bool {
	_, ok := namedKeys[t.Key]
	return ok
}

var namedKeys = map[string]struct{}{
	"Space":     {},
	"Enter":     {},
	"Escape":    {},
	"Tab":       {},
	"Backspace": {},
	"Delete":    {},
	"Insert":    {},
	"Home":      {},
	"End":       {},
	"PageUp":    {},
	"PageDown":  {},
	"Up":        {},
	"Down":      {},
	"Left":      {},
	"Right":     {},
	"F1":        {},
	"F2":        {},
	"F3":        {},
	"F4":        {},
	"F5":        {},
	"F6":        {},
	"F7":        {},
	"F8":        {},
	"F9":        {},
	"F10":       {},
	"F11":       {},
	"F12":       {},
}
