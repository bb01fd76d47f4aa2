package state

import (
	"testing"

	"github.com/atomicstack/spiris-tui/internal/entity"
)

func TestConfirmFieldCompletesAfterRequiredCount(t *testing.T) {
	for _, kind := range []entity.Kind{entity.KindCustomer, entity.KindInvoice, entity.KindArticle} {
		var c Collector
		c.Start(kind, "")
		n := entity.FieldCount(kind)
		for i := 0; i < n-1; i++ {
			if c.ConfirmField() {
				t.Fatalf("%s: expected no completion after %d fields", kind, i+1)
			}
		}
		if !c.ConfirmField() {
			t.Fatalf("%s: expected completion after %d fields", kind, n)
		}
		if c.State != CollectorSubmitting || len(c.Values()) != n {
			t.Fatalf("%s: unexpected collector %#v", kind, c)
		}
		if c.ConfirmField() {
			t.Fatalf("%s: expected no further completion while submitting", kind)
		}
	}
}

func TestBufferTracksCursorAndKeepsValuesVerbatim(t *testing.T) {
	var c Collector
	c.Start(entity.KindCustomer, "")
	for _, r := range "Acme" {
		c.TypeChar(r)
	}
	c.ConfirmField()
	c.ConfirmField()
	if len(c.Buffer.Collected) != c.Buffer.Cursor || c.Buffer.Cursor != 2 {
		t.Fatalf("expected collected length to match cursor, got %#v", c.Buffer)
	}
	if c.Buffer.Collected[0] != "Acme" || c.Buffer.Collected[1] != "" {
		t.Fatalf("unexpected collected values %#v", c.Buffer.Collected)
	}
	field, ok := c.Field()
	if !ok || field.Key != "phone" {
		t.Fatalf("expected phone field next, got %#v", field)
	}
}

func TestBackspaceRemovesLastRune(t *testing.T) {
	var c Collector
	c.Start(entity.KindArticle, "")
	for _, r := range "kö" {
		c.TypeChar(r)
	}
	c.Backspace()
	if c.Buffer.Live != "k" {
		t.Fatalf("expected live %q, got %q", "k", c.Buffer.Live)
	}
	c.Backspace()
	c.Backspace()
	if c.Buffer.Live != "" {
		t.Fatalf("expected empty live value, got %q", c.Buffer.Live)
	}
}

func TestIdleCollectorIgnoresInput(t *testing.T) {
	var c Collector
	c.TypeChar('x')
	c.Backspace()
	if c.ConfirmField() || c.Buffer.Live != "" || c.Buffer.Cursor != 0 {
		t.Fatalf("expected idle collector to ignore input, got %#v", c)
	}
}

func TestStartDiscardsStaleBuffer(t *testing.T) {
	var c Collector
	c.Start(entity.KindInvoice, "")
	c.TypeChar('1')
	c.ConfirmField()
	c.TypeChar('2')
	c.Start(entity.KindCustomer, "")
	if c.Buffer.Cursor != 0 || c.Buffer.Live != "" || len(c.Buffer.Collected) != 0 || c.Kind != entity.KindCustomer {
		t.Fatalf("expected fresh buffer, got %#v", c)
	}
}

func TestResetClearsEverything(t *testing.T) {
	var c Collector
	c.Start(entity.KindCustomer, "c1")
	c.TypeChar('a')
	c.ConfirmField()
	c.TypeChar('b')
	c.Reset()
	if c.State != CollectorIdle || c.Target != "" || c.Buffer.Cursor != 0 || c.Buffer.Live != "" || len(c.Buffer.Collected) != 0 {
		t.Fatalf("expected reset collector, got %#v", c)
	}
}
