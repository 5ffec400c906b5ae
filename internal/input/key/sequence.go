package key

import "strings"

// Sequence is an ordered run of tokens, e.g. the two presses behind a
// "gg" binding. The nil sequence and the empty sequence are equivalent.
type Sequence []Token

// String joins the token names with spaces: "g g", "Ctrl+w q".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Equal reports whether both sequences contain the same tokens.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, t := range s {
		if t != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether s begins with prefix. Every sequence has the
// empty prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, t := range prefix {
		if t != s[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	if len(s) == 0 {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Append returns a new sequence with tok added; s is left untouched.
func (s Sequence) Append(tok Token) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, tok)
}
