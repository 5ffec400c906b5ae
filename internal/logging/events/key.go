package events

import "github.com/tabnav/tabnav/internal/logging"

type KeyTracer struct{}

var Key = KeyTracer{}

func (KeyTracer) Match(sequence, mode string) {
	logging.Trace("key.match", map[string]interface{}{"sequence": sequence, "mode": mode})
}

func (KeyTracer) Pending(sequence, mode string) {
	logging.Trace("key.pending", map[string]interface{}{"sequence": sequence, "mode": mode})
}

func (KeyTracer) Timeout(sequence string) {
	logging.Trace("key.timeout", map[string]interface{}{"sequence": sequence})
}

func (KeyTracer) Drop(sequence, mode string) {
	logging.Trace("key.drop", map[string]interface{}{"sequence": sequence, "mode": mode})
}

func (KeyTracer) Mode(mode string) {
	logging.Trace("key.mode", map[string]interface{}{"mode": mode})
}

func (KeyTracer) KeymapReload(path string, bound, skipped int) {
	logging.Trace("key.keymap.reload", map[string]interface{}{
		"path":    path,
		"bound":   bound,
		"skipped": skipped,
	})
}

func (KeyTracer) KeymapError(err error) {
	if err == nil {
		return
	}
	logging.Trace("key.keymap.error", map[string]interface{}{"error": err.Error()})
}
