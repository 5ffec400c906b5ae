package keymap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tabnav/tabnav/internal/input/key"
	"github.com/tabnav/tabnav/internal/mode"
)

// FileBinding is one entry of a user keymap file. Action names are
// resolved against the application's action table by the caller.
type FileBinding struct {
	Keys        string   `yaml:"keys"`
	Action      string   `yaml:"action"`
	Description string   `yaml:"description,omitempty"`
	Modes       []string `yaml:"modes,omitempty"`
}

// File is the parsed shape of a keymap overlay:
//
//	bindings:
//	  - keys: "gg"
//	    action: cursor.first
//	  - keys: "Ctrl+d"
//	    action: cursor.half-page-down
//	    modes: [normal, visual]
type File struct {
	Bindings []FileBinding `yaml:"bindings"`
}

// LoadFile reads and parses a keymap overlay.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing keymap %s: %w", path, err)
	}
	return &f, nil
}

// ParseEntry validates one file binding, returning its sequence and mode
// scope. The caller supplies the handler once the action name resolves.
func ParseEntry(fb FileBinding) (key.Sequence, []mode.Mode, error) {
	seq, err := key.ParseSequence(fb.Keys)
	if err != nil {
		return nil, nil, err
	}
	modes, err := ParseModes(fb.Modes)
	if err != nil {
		return nil, nil, fmt.Errorf("binding %q: %w", fb.Keys, err)
	}
	return seq, modes, nil
}

// ParseModes converts mode names to mode values, rejecting unknown
// names. An empty list is returned as nil (normal-only scope).
func ParseModes(names []string) ([]mode.Mode, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]mode.Mode, 0, len(names))
	for _, name := range names {
		m := mode.Mode(name)
		if !m.Valid() {
			return nil, fmt.Errorf("unknown mode %q", name)
		}
		out = append(out, m)
	}
	return out, nil
}
