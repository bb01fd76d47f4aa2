package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ id string }

func TestExecuteReturnsRunMessage(t *testing.T) {
	calls := 0
	cmd := New().Execute(Request{ID: "refresh:customer", Label: "Refresh customers", Run: func() tea.Msg {
		calls++
		return doneMsg{id: "x"}
	}})
	if calls != 0 {
		t.Fatalf("expected work deferred until the command runs")
	}
	msg := cmd()
	if got, ok := msg.(doneMsg); !ok || got.id != "x" {
		t.Fatalf("expected doneMsg, got %#v", msg)
	}
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
}

func TestExecuteWithoutRunIsNoop(t *testing.T) {
	if msg := New().Execute(Request{ID: "noop"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}
