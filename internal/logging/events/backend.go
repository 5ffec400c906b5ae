package events

import "github.com/tabnav/tabnav/internal/logging"

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) PollSuccess(count int) {
	logging.Trace("backend.poll", map[string]interface{}{"tabs": count})
}

func (BackendTracer) PollError(err error) {
	if err == nil {
		return
	}
	logging.Trace("backend.poll.error", map[string]interface{}{"error": err.Error()})
}

func (BackendTracer) PollStale(count int) {
	logging.Trace("backend.poll.stale", map[string]interface{}{"tabs": count})
}

func (BackendTracer) StreamAttach(url string) {
	logging.Trace("backend.stream.attach", map[string]interface{}{"url": url})
}

func (BackendTracer) StreamDetach(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.stream.detach", payload)
}

func (BackendTracer) StreamEvent(method, targetID string) {
	logging.Trace("backend.stream.event", map[string]interface{}{"method": method, "target": targetID})
}

func (BackendTracer) Throttled(kind string) {
	logging.Trace("backend.throttled", map[string]interface{}{"kind": kind})
}
