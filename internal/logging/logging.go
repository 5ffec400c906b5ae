// Package logging writes diagnostics to a shared file: plain error
// lines plus optional JSON trace entries. Trace events are named
// "<scope>.<action>" (key.match, backend.poll); tracing can be limited
// to a set of scopes so a capture covers only the subsystem under
// study.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tabnav.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	traceScopes  map[string]bool // nil selects every scope
	logPath      = defaultLogFile
)

// Error appends err to the log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	path := logPath
	mu.Unlock()
	appendLine(path, fmt.Sprintf("%s ERROR %v\n", time.Now().UTC().Format(time.RFC3339), err))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// SetTraceScopes restricts tracing to the named scopes, matched against
// the segment before the first dot of each event name. An empty list
// selects every scope.
func SetTraceScopes(scopes []string) {
	mu.Lock()
	defer mu.Unlock()
	if len(scopes) == 0 {
		traceScopes = nil
		return
	}
	traceScopes = make(map[string]bool, len(scopes))
	for _, s := range scopes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			traceScopes[s] = true
		}
	}
}

// Trace appends a structured JSON entry when tracing is enabled and the
// event's scope is selected.
func Trace(event string, payload interface{}) {
	sc := scopeOf(event)
	mu.Lock()
	enabled := traceEnabled && (traceScopes == nil || traceScopes[sc])
	path := logPath
	mu.Unlock()
	if !enabled {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Scope   string      `json:"scope"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Scope:   sc,
		Event:   event,
		Payload: payload,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
		return
	}
	appendLine(path, string(data)+"\n")
}

// scopeOf is the event name up to the first dot.
func scopeOf(event string) string {
	if i := strings.IndexByte(event, '.'); i > 0 {
		return event[:i]
	}
	return event
}

// Configure sets the log destination. Empty values fall back to the
// default path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

func appendLine(path, line string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}
