package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseSequence turns a binding spec into a Sequence. Chunks are
// separated by spaces; a chunk is either a named key ("Enter", "Space"),
// a modifier chord ("Ctrl+d", "Ctrl+Shift+Tab"), or a compact run of
// plain characters ("gg", "dd") which expands to one token per rune.
// Modifier chords require a single key after the modifiers.
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty key sequence")
	}
	var seq Sequence
	for _, chunk := range fields {
		toks, err := parseChunk(chunk)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", spec, err)
		}
		seq = append(seq, toks...)
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for compile-time constants; it
// panics on malformed specs.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic(err)
	}
	return seq
}

func parseChunk(chunk string) ([]Token, error) {
	var ctrl, alt, meta, shift bool
	base := chunk
	for {
		switch {
		case strings.HasPrefix(base, "Ctrl+") && len(base) > len("Ctrl+"):
			ctrl = true
			base = base[len("Ctrl+"):]
		case strings.HasPrefix(base, "Alt+") && len(base) > len("Alt+"):
			alt = true
			base = base[len("Alt+"):]
		case strings.HasPrefix(base, "Meta+") && len(base) > len("Meta+"):
			meta = true
			base = base[len("Meta+"):]
		case strings.HasPrefix(base, "Shift+") && len(base) > len("Shift+"):
			shift = true
			base = base[len("Shift+"):]
		default:
			return finishChunk(chunk, base, ctrl, alt, meta, shift)
		}
	}
}

func finishChunk(chunk, base string, ctrl, alt, meta, shift bool) ([]Token, error) {
	if base == "" {
		return nil, fmt.Errorf("chunk %q has modifiers but no key", chunk)
	}
	modified := ctrl || alt || meta || shift
	_, named := namedKeys[base]
	switch {
	case named || utf8.RuneCountInString(base) == 1:
		tok := Normalize(Event{Key: base, Ctrl: ctrl, Alt: alt, Meta: meta, Shift: shift})
		return []Token{tok}, nil
	case modified:
		return nil, fmt.Errorf("chunk %q: unknown key name %q", chunk, base)
	default:
		// compact run: one token per rune
		toks := make([]Token, 0, utf8.RuneCountInString(base))
		for _, r := range base {
			toks = append(toks, Normalize(Event{Key: string(r)}))
		}
		return toks, nil
	}
}
