package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTraceLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		SetTraceScopes(nil)
		Configure("")
	})
	return path
}

func readLogLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestTrace_EntryCarriesScope(t *testing.T) {
	path := setupTraceLog(t)

	Trace("key.match", map[string]interface{}{"sequence": "d d"})

	lines := readLogLines(t, path)
	require.Len(t, lines, 1)
	var entry struct {
		Scope string `json:"scope"`
		Event string `json:"event"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "key", entry.Scope)
	require.Equal(t, "key.match", entry.Event)
}

func TestTrace_ScopeFilter(t *testing.T) {
	path := setupTraceLog(t)
	SetTraceScopes([]string{"backend"})

	Trace("key.match", nil)
	Trace("backend.poll", map[string]interface{}{"tabs": 3})

	lines := readLogLines(t, path)
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "backend.poll")

	// Clearing the filter selects every scope again.
	SetTraceScopes(nil)
	Trace("key.match", nil)
	require.Len(t, readLogLines(t, path), 2)
}

func TestTrace_DisabledWritesNothing(t *testing.T) {
	path := setupTraceLog(t)
	SetTraceEnabled(false)

	Trace("ui.quit", nil)

	require.Empty(t, readLogLines(t, path))
}
