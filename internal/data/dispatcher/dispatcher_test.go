package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/spiris-tui/internal/datasync"
	"github.com/atomicstack/spiris-tui/internal/entity"
	"github.com/atomicstack/spiris-tui/internal/state"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

func TestHandleAppliesToVisibleList(t *testing.T) {
	store := state.NewStore()
	col := store.Get(entity.KindCustomer)
	col.Begin()
	d := New(store)
	out := d.Handle(datasync.Result{Kind: entity.KindCustomer, Page: 1, Items: []entity.Item{{ID: "c1"}}}, uistate.List(entity.KindCustomer))
	if !out.Applied || out.Discarded {
		t.Fatalf("expected applied outcome, got %#v", out)
	}
	if len(col.Items) != 1 || col.Loading() {
		t.Fatalf("unexpected collection %#v", col)
	}
}

func TestHandleDiscardsAfterNavigation(t *testing.T) {
	store := state.NewStore()
	col := store.Get(entity.KindCustomer)
	col.Apply([]entity.Item{{ID: "old"}})
	col.Begin()
	d := New(store)
	out := d.Handle(datasync.Result{Kind: entity.KindCustomer, Page: 1, Items: []entity.Item{{ID: "new"}}}, uistate.Home())
	if !out.Discarded {
		t.Fatalf("expected discarded outcome, got %#v", out)
	}
	if col.Items[0].ID != "old" || col.Loading() {
		t.Fatalf("expected items untouched and loading settled, got %#v", col)
	}
}

func TestHandleDiscardsStalePage(t *testing.T) {
	store := state.NewStore()
	col := store.Get(entity.KindInvoice)
	col.Page = 2
	col.Begin()
	out := New(store).Handle(datasync.Result{Kind: entity.KindInvoice, Page: 1}, uistate.List(entity.KindInvoice))
	if !out.Discarded || col.Loading() {
		t.Fatalf("expected stale page discarded, got %#v", out)
	}
}

func TestHandleRecordsFailure(t *testing.T) {
	store := state.NewStore()
	col := store.Get(entity.KindArticle)
	col.Apply([]entity.Item{{ID: "a1"}})
	col.Begin()
	out := New(store).Handle(datasync.Result{Kind: entity.KindArticle, Page: 1, Err: errors.New("timeout")}, uistate.List(entity.KindArticle))
	if !out.Applied || out.Err == nil {
		t.Fatalf("expected applied failure, got %#v", out)
	}
	if col.LastErr != "timeout" || len(col.Items) != 1 {
		t.Fatalf("expected prior items kept with error, got %#v", col)
	}
}

func TestHandleUnknownKind(t *testing.T) {
	out := New(state.NewStore()).Handle(datasync.Result{Kind: entity.KindCustomer, Page: 1}, uistate.List(entity.KindCustomer))
	if !out.Discarded {
		t.Fatalf("expected discard for unmaterialized kind")
	}
}
