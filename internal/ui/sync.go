package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/spiris-tui/internal/datasync"
	"github.com/atomicstack/spiris-tui/internal/entity"
	"github.com/atomicstack/spiris-tui/internal/logging"
	"github.com/atomicstack/spiris-tui/internal/ui/command"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

var errNotAuthenticated = errors.New("not authenticated")

// loadList fetches the first page of kind before returning. The event loop is
// blocked for the duration of the call.
func (m *Model) loadList(kind entity.Kind) {
	col := m.collections.Get(kind)
	col.Page = 1
	m.loadPage(kind)
}

func (m *Model) loadPage(kind entity.Kind) bool {
	if m.gw == nil {
		return false
	}
	col := m.collections.Get(kind)
	if err := m.sync.Load(m.ctx, m.gw, col); err != nil {
		logging.Errorf("load %s: %w", kind.Plural(), err)
		if m.dropCredential(err) {
			return false
		}
		m.setError(loadError(kind, err))
		return false
	}
	m.setError("")
	return true
}

// changePage moves to the adjacent page. Forward paging is only offered when
// the current page is full.
func (m *Model) changePage(delta int) {
	cur := m.nav.Current
	if cur.Kind != uistate.ScreenList || m.gw == nil {
		return
	}
	col := m.collections.Get(cur.Entity)
	if delta > 0 && len(col.Items) < m.sync.PageSize {
		return
	}
	if delta < 0 && col.Page <= 1 {
		return
	}
	prevPage, prevSelected := col.Page, col.Selected
	col.Page += delta
	col.Selected = 0
	if !m.loadPage(cur.Entity) {
		col.Page, col.Selected = prevPage, prevSelected
	}
}

// refresh reloads the visible list in the background. On the auth screen it
// re-reads the credential store instead.
func (m *Model) refresh() tea.Cmd {
	cur := m.nav.Current
	if cur.Kind == uistate.ScreenAuth {
		m.recheckCredential()
		return nil
	}
	if cur.Kind != uistate.ScreenList || m.gw == nil {
		return nil
	}
	col := m.collections.Get(cur.Entity)
	run := m.sync.Refresh(m.gw, col)
	cmd := m.bus.Execute(command.Request{
		ID:    "refresh:" + cur.Entity.String(),
		Label: "Refresh " + cur.Entity.Plural(),
		Run:   run,
	})
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) handleSyncResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(datasync.Result)
	if !ok {
		return nil
	}
	out := m.dispatcher.Handle(res, m.nav.Current)
	if out.Err != nil {
		logging.Errorf("refresh %s: %w", res.Kind.Plural(), out.Err)
		if m.dropCredential(out.Err) {
			return nil
		}
		m.setError(loadError(res.Kind, out.Err))
	}
	return nil
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.collections.Loading() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg.(spinner.TickMsg))
	return cmd
}

func loadError(kind entity.Kind, err error) string {
	return fmt.Sprintf("Failed to load %s: %v", kind.Plural(), err)
}
