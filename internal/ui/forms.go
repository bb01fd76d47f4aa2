package ui

import (
	"fmt"

	"github.com/atomicstack/spiris-tui/internal/entity"
	"github.com/atomicstack/spiris-tui/internal/logging"
	"github.com/atomicstack/spiris-tui/internal/logging/events"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

func (m *Model) startForm(kind entity.Kind, target string) {
	m.form.Start(kind, target)
	m.nav.Mode = uistate.ModeEditing
	events.Form.Start(kind.String(), target)
}

// cancelForm discards every typed and confirmed value. The screen is kept.
func (m *Model) cancelForm() {
	events.Form.Cancel(m.form.Kind.String(), m.form.Buffer.Cursor)
	m.form.Reset()
	m.nav.Mode = uistate.ModeNormal
}

func (m *Model) confirmField() {
	complete := m.form.ConfirmField()
	events.Form.Field(m.form.Kind.String(), m.form.Buffer.Cursor, entity.FieldCount(m.form.Kind))
	if complete {
		m.submitForm()
	}
}

// submitForm sends the completed form and waits for the outcome. On failure
// the buffer is discarded and the user has to start the form again.
func (m *Model) submitForm() {
	kind, target := m.form.Kind, m.form.Target
	values := m.form.Values()
	m.form.Reset()
	m.nav.Mode = uistate.ModeNormal
	events.Form.Submit(kind.String(), target)

	verb := "create"
	if target != "" {
		verb = "update"
	}
	if err := m.send(kind, target, values); err != nil {
		events.Form.Fail(kind.String(), err)
		logging.Errorf("%s %s: %w", verb, kind, err)
		if m.dropCredential(err) {
			return
		}
		m.setError(fmt.Sprintf("Failed to %s %s: %v", verb, kind, err))
		return
	}

	m.setStatus(fmt.Sprintf("%s %sd successfully", kind.Noun(), verb))
	m.setError("")
	m.goTo(uistate.List(kind), false)
	m.loadList(kind)
}

func (m *Model) send(kind entity.Kind, target string, values []string) error {
	if m.gw == nil {
		return errNotAuthenticated
	}
	if target == "" {
		payload, err := entity.BuildPayload(kind, values)
		if err != nil {
			return err
		}
		_, err = m.gw.Create(m.ctx, kind, payload)
		return err
	}
	payload, err := entity.BuildPatch(kind, values)
	if err != nil {
		return err
	}
	_, err = m.gw.Update(m.ctx, kind, target, payload)
	return err
}
