package events

import "github.com/tabnav/tabnav/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Enter(tabID, title string) {
	logging.Trace("ui.enter", map[string]interface{}{"tab": tabID, "title": title})
}

func (UITracer) Help(visible bool) {
	logging.Trace("ui.help", map[string]interface{}{"visible": visible})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Quit(reason string) {
	logging.Trace("ui.quit", map[string]interface{}{"reason": reason})
}

func (FilterTracer) Append(query string) {
	logging.Trace("filter.append", map[string]interface{}{"query": query})
}

func (FilterTracer) Backspace(query string) {
	logging.Trace("filter.backspace", map[string]interface{}{"query": query})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Apply(query string, matches int) {
	logging.Trace("filter.apply", map[string]interface{}{"query": query, "matches": matches})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Execute(line string) {
	logging.Trace("command.execute", map[string]interface{}{"line": line})
}

func (CommandTracer) Unknown(name string) {
	logging.Trace("command.unknown", map[string]interface{}{"name": name})
}

func (CommandTracer) Queue(name, target string) {
	logging.Trace("command.queue", map[string]interface{}{"name": name, "target": target})
}

func (CommandTracer) Result(name, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"name": name, "msg": msgType})
}
