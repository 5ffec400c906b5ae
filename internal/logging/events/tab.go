package events

import "github.com/tabnav/tabnav/internal/logging"

type TabTracer struct{}

var Tab = TabTracer{}

func (TabTracer) Activate(target string) {
	logging.Trace("tab.activate", map[string]interface{}{"target": target})
}

func (TabTracer) Close(targets []string) {
	logging.Trace("tab.close", map[string]interface{}{"targets": targets})
}

func (TabTracer) Open(url string) {
	logging.Trace("tab.open", map[string]interface{}{"url": url})
}

func (TabTracer) Duplicate(target, url string) {
	logging.Trace("tab.duplicate", map[string]interface{}{"target": target, "url": url})
}

func (TabTracer) Reload() {
	logging.Trace("tab.reload", nil)
}

func (TabTracer) CopyURL(targets []string) {
	logging.Trace("tab.copy-url", map[string]interface{}{"targets": targets})
}
