package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/spiris-tui/internal/entity"
)

func TestHeaderReflectsAuthentication(t *testing.T) {
	env := newTestEnv(t, false)
	if view := env.harness.View(); !strings.Contains(view, "(Not Authenticated)") || !strings.Contains(view, "OAuth2 Authentication Required") {
		t.Fatalf("unexpected unauthenticated view:\n%s", view)
	}
	env = newTestEnv(t, true)
	view := env.harness.View()
	if strings.Contains(view, "Not Authenticated") || !strings.Contains(view, "token expires") {
		t.Fatalf("unexpected authenticated header:\n%s", view)
	}
	if !strings.Contains(view, ">> View Customers") {
		t.Fatalf("expected selected menu entry, got:\n%s", view)
	}
}

func TestListViewMarksSelection(t *testing.T) {
	env := newTestEnv(t, true)
	env.gw.items[entity.KindCustomer] = customerItems(2)
	env.harness.Key("enter")
	env.harness.Key("down")
	view := env.harness.View()
	if !strings.Contains(view, "Customers (page 1") {
		t.Fatalf("expected list title, got:\n%s", view)
	}
	var selected string
	for _, line := range strings.Split(view, "\n") {
		if strings.HasPrefix(line, ">> ") {
			selected = line
		}
	}
	if !strings.Contains(selected, "Customer 2") {
		t.Fatalf("expected second row selected, got %q", selected)
	}
}

func TestFormViewShowsProgress(t *testing.T) {
	env := newTestEnv(t, true)
	for i := 0; i < 3; i++ {
		env.harness.Key("down")
	}
	env.harness.Key("enter")
	env.harness.Type("Acme")
	env.harness.Key("enter")
	view := env.harness.View()
	for _, want := range []string{"Create New Customer", "Name: Acme", "Field 2 of 4", "Website (optional)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewRespectsWidth(t *testing.T) {
	env := newTestEnv(t, true)
	env.model().width = 20
	for _, line := range strings.Split(env.harness.View(), "\n") {
		if w := len([]rune(line)); w > 20 {
			t.Fatalf("expected lines within width, got %d: %q", w, line)
		}
	}
}
