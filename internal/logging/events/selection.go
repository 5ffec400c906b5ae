package events

import "github.com/tabnav/tabnav/internal/logging"

type SelectionTracer struct{}

var Selection = SelectionTracer{}

func (SelectionTracer) Items(count, cursor int) {
	logging.Trace("selection.items", map[string]interface{}{"count": count, "cursor": cursor})
}

func (SelectionTracer) Cursor(index int) {
	logging.Trace("selection.cursor", map[string]interface{}{"cursor": index})
}

func (SelectionTracer) Visual(active bool, anchor int) {
	logging.Trace("selection.visual", map[string]interface{}{"active": active, "anchor": anchor})
}

func (SelectionTracer) Toggle(id string, selected bool) {
	logging.Trace("selection.toggle", map[string]interface{}{"id": id, "selected": selected})
}

func (SelectionTracer) Clear() {
	logging.Trace("selection.clear", nil)
}

func (SelectionTracer) All(count int) {
	logging.Trace("selection.all", map[string]interface{}{"count": count})
}
