package dispatcher

import (
	"github.com/atomicstack/spiris-tui/internal/datasync"
	"github.com/atomicstack/spiris-tui/internal/logging/events"
	"github.com/atomicstack/spiris-tui/internal/state"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

// Outcome describes what Handle did with a refresh result.
type Outcome struct {
	Applied   bool
	Discarded bool
	Err       error
}

// Dispatcher applies background refresh results to the collection store. It
// must only be called from the main loop.
type Dispatcher struct {
	collections *state.Store
}

func New(collections *state.Store) *Dispatcher {
	return &Dispatcher{collections: collections}
}

// Handle applies res when the list it was fetched for is still on screen.
// Otherwise the result is dropped and only the loading counter is settled.
func (d *Dispatcher) Handle(res datasync.Result, current uistate.Screen) Outcome {
	col, ok := d.collections.Lookup(res.Kind)
	if !ok {
		events.Sync.Discard(res.Kind.String(), res.Seq, "not materialized")
		return Outcome{Discarded: true}
	}
	if !current.IsList(res.Kind) || col.Page != res.Page {
		col.Finish()
		events.Sync.Discard(res.Kind.String(), res.Seq, "navigated away")
		return Outcome{Discarded: true}
	}
	if res.Err != nil {
		col.Fail(res.Err)
		events.Sync.Result(res.Kind.String(), res.Seq, 0, res.Err)
		return Outcome{Applied: true, Err: res.Err}
	}
	col.Apply(res.Items)
	events.Sync.Result(res.Kind.String(), res.Seq, len(res.Items), nil)
	return Outcome{Applied: true}
}
