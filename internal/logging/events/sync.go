package events

import "github.com/atomicstack/spiris-tui/internal/logging"

type SyncTracer struct{}

type AuthTracer struct{}

var (
	Sync = SyncTracer{}
	Auth = AuthTracer{}
)

func (SyncTracer) Load(kind string, page int) {
	logging.Trace("sync.load", map[string]interface{}{"kind": kind, "page": page})
}

func (SyncTracer) Refresh(kind string, page int, seq uint64) {
	logging.Trace("sync.refresh", map[string]interface{}{"kind": kind, "page": page, "seq": seq})
}

func (SyncTracer) Result(kind string, seq uint64, count int, err error) {
	payload := map[string]interface{}{"kind": kind, "seq": seq, "count": count}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("sync.result", payload)
}

func (SyncTracer) Discard(kind string, seq uint64, reason string) {
	logging.Trace("sync.discard", map[string]interface{}{"kind": kind, "seq": seq, "reason": reason})
}

func (AuthTracer) Start(state string) {
	logging.Trace("auth.start", map[string]interface{}{"state": state})
}

func (AuthTracer) Installed(source string) {
	logging.Trace("auth.installed", map[string]interface{}{"source": source})
}

func (AuthTracer) Refreshed() {
	logging.Trace("auth.refreshed", nil)
}

func (AuthTracer) Rejected(status int) {
	logging.Trace("auth.rejected", map[string]interface{}{"status": status})
}

func (AuthTracer) Saved(backend string) {
	logging.Trace("auth.saved", map[string]interface{}{"backend": backend})
}

func (AuthTracer) Copy(err error) {
	payload := map[string]interface{}{"ok": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("auth.copy", payload)
}
