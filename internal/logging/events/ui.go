package events

import "github.com/atomicstack/spiris-tui/internal/logging"

type NavTracer struct{}

type FormTracer struct{}

type CommandTracer struct{}

var (
	Nav     = NavTracer{}
	Form    = FormTracer{}
	Command = CommandTracer{}
)

func (NavTracer) Screen(from, to string) {
	logging.Trace("nav.screen", map[string]interface{}{"from": from, "to": to})
}

func (NavTracer) Back(to string) {
	logging.Trace("nav.back", map[string]interface{}{"to": to})
}

func (NavTracer) Cycle(to string, delta int) {
	logging.Trace("nav.cycle", map[string]interface{}{"to": to, "delta": delta})
}

func (NavTracer) Cursor(screen string, cursor int) {
	logging.Trace("nav.cursor", map[string]interface{}{"screen": screen, "cursor": cursor})
}

func (NavTracer) QuitRejected(screen string) {
	logging.Trace("nav.quit-rejected", map[string]interface{}{"screen": screen})
}

func (FormTracer) Start(kind, target string) {
	logging.Trace("form.start", map[string]interface{}{"kind": kind, "target": target})
}

// Field records progress only; field values may hold personal data.
func (FormTracer) Field(kind string, cursor, required int) {
	logging.Trace("form.field", map[string]interface{}{"kind": kind, "cursor": cursor, "required": required})
}

func (FormTracer) Submit(kind, target string) {
	logging.Trace("form.submit", map[string]interface{}{"kind": kind, "target": target})
}

func (FormTracer) Cancel(kind string, cursor int) {
	logging.Trace("form.cancel", map[string]interface{}{"kind": kind, "cursor": cursor})
}

func (FormTracer) Fail(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("form.fail", map[string]interface{}{"kind": kind, "error": err.Error()})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
