// Package datasync loads entity collections from the gateway, either
// synchronously on the caller's goroutine or as a background tea.Cmd whose
// result is applied later by the main loop.
package datasync

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/spiris-tui/internal/entity"
	"github.com/atomicstack/spiris-tui/internal/gateway"
	"github.com/atomicstack/spiris-tui/internal/logging/events"
	"github.com/atomicstack/spiris-tui/internal/state"
)

// DefaultPageSize is the number of records requested per list call.
const DefaultPageSize = 50

// MinRefreshInterval spaces background list calls.
const MinRefreshInterval = 250 * time.Millisecond

// Result is the outcome of a background refresh. It carries only copies, never
// a reference into session state.
type Result struct {
	Kind  entity.Kind
	Page  int
	Items []entity.Item
	Err   error
	Seq   uint64
}

// Synchronizer owns the paging parameters for list calls.
type Synchronizer struct {
	PageSize int

	throttle *throttle
	seq      uint64
}

func New() *Synchronizer {
	return &Synchronizer{PageSize: DefaultPageSize, throttle: newThrottle(MinRefreshInterval)}
}

func (s *Synchronizer) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

// Load fetches the collection's current page and applies the outcome before
// returning. A failure leaves the previous items in place.
func (s *Synchronizer) Load(ctx context.Context, gw gateway.Gateway, col *state.Collection) error {
	col.Begin()
	events.Sync.Load(col.Kind.String(), col.Page)
	items, err := gw.List(ctx, col.Kind, s.pageSize(), col.Page)
	if err != nil {
		col.Fail(err)
		return err
	}
	col.Apply(items)
	return nil
}

// Refresh marks col as loading and returns a command that lists the same page
// in the background. The command captures the gateway, kind and page by value;
// its Result must be applied on the main loop.
func (s *Synchronizer) Refresh(gw gateway.Gateway, col *state.Collection) tea.Cmd {
	col.Begin()
	s.seq++
	kind, page, seq := col.Kind, col.Page, s.seq
	size := s.pageSize()
	th := s.throttle
	events.Sync.Refresh(kind.String(), page, seq)
	return func() tea.Msg {
		th.wait()
		items, err := gw.List(context.Background(), kind, size, page)
		return Result{Kind: kind, Page: page, Items: items, Err: err, Seq: seq}
	}
}
