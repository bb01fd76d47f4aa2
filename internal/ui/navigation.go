package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/spiris-tui/internal/logging/events"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

// Dispatch drives the session with one intent. Any returned command is
// background work whose result arrives later as a message.
func (m *Model) Dispatch(in Input) tea.Cmd {
	if m.nav.Mode == uistate.ModeEditing {
		return m.dispatchEditing(in)
	}
	switch in.Intent {
	case IntentQuit:
		return tea.Quit
	case IntentCancel:
		m.back()
	case IntentConfirm:
		return m.confirm()
	case IntentCycleForward:
		m.cycle(1)
	case IntentCycleBack:
		m.cycle(-1)
	case IntentUp:
		m.move(-1)
	case IntentDown:
		m.move(1)
	case IntentLeft:
		m.changePage(-1)
	case IntentRight:
		m.changePage(1)
	case IntentRefresh:
		return m.refresh()
	case IntentNew:
		m.newForm()
	case IntentHelp:
		if m.nav.Current.Kind != uistate.ScreenHelp {
			m.goTo(uistate.Help(), true)
		}
	case IntentEdit:
		m.editCurrent()
	case IntentCopy:
		return m.copyAuthURL()
	}
	return nil
}

func (m *Model) dispatchEditing(in Input) tea.Cmd {
	switch in.Intent {
	case IntentQuit:
		events.Nav.QuitRejected(m.nav.Current.String())
		m.setStatus("Finish or cancel the form (esc) before quitting")
	case IntentCancel:
		m.cancelForm()
	case IntentConfirm:
		m.confirmField()
	case IntentChar:
		m.form.TypeChar(in.Char)
	case IntentBackspace:
		m.form.Backspace()
	}
	return nil
}

// goTo changes screen, optionally remembering the current one for Back.
func (m *Model) goTo(to uistate.Screen, remember bool) {
	from := m.nav.Current
	if remember {
		m.nav.Push(to)
	} else {
		m.nav.Go(to)
	}
	events.Nav.Screen(from.String(), to.String())
}

func (m *Model) back() {
	to := m.nav.Back()
	m.setError("")
	events.Nav.Back(to.String())
	if !m.Authenticated() && to.Kind != uistate.ScreenAuth {
		m.nav.Go(uistate.Auth())
	}
}

func (m *Model) cycle(delta int) {
	if !m.nav.Cycle(delta, m.Authenticated()) {
		return
	}
	events.Nav.Cycle(m.nav.Current.String(), delta)
	if m.nav.Current.Kind == uistate.ScreenList {
		m.loadList(m.nav.Current.Entity)
	}
}

func (m *Model) move(delta int) {
	cur := m.nav.Current
	switch cur.Kind {
	case uistate.ScreenHome:
		if m.nav.MoveMenu(delta) {
			events.Nav.Cursor(cur.String(), m.nav.MenuIndex)
		}
	case uistate.ScreenList:
		col := m.collections.Get(cur.Entity)
		if col.Move(delta) {
			events.Nav.Cursor(cur.String(), col.Selected)
		}
	}
}

func (m *Model) confirm() tea.Cmd {
	cur := m.nav.Current
	switch cur.Kind {
	case uistate.ScreenHome:
		m.confirmHome()
	case uistate.ScreenAuth:
		m.startAuthorization()
	case uistate.ScreenList:
		col := m.collections.Get(cur.Entity)
		if item, ok := col.Current(); ok && item.ID != "" {
			m.goTo(uistate.Detail(cur.Entity, item.ID), true)
		}
	case uistate.ScreenCreate:
		if !m.form.Collecting() {
			m.startForm(cur.Entity, "")
		}
	case uistate.ScreenEdit:
		if !m.form.Collecting() {
			m.startForm(cur.Entity, cur.ID)
		}
	}
	return nil
}

func (m *Model) confirmHome() {
	if !m.Authenticated() {
		return
	}
	target := m.nav.MenuTarget().Target
	switch target.Kind {
	case uistate.ScreenList:
		m.goTo(target, false)
		m.loadList(target.Entity)
	case uistate.ScreenCreate:
		m.goTo(target, true)
		m.startForm(target.Entity, "")
	default:
		m.goTo(target, true)
	}
}

func (m *Model) newForm() {
	cur := m.nav.Current
	switch cur.Kind {
	case uistate.ScreenList:
		m.goTo(uistate.Create(cur.Entity), true)
		m.startForm(cur.Entity, "")
	case uistate.ScreenCreate:
		m.startForm(cur.Entity, "")
	}
}

func (m *Model) editCurrent() {
	cur := m.nav.Current
	if cur.Kind != uistate.ScreenDetail || cur.ID == "" {
		return
	}
	if _, ok := m.collections.Get(cur.Entity).Find(cur.ID); !ok {
		return
	}
	m.goTo(uistate.Edit(cur.Entity, cur.ID), true)
	m.startForm(cur.Entity, cur.ID)
}
