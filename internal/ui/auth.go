package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/spiris-tui/internal/backend"
	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/gateway"
	"github.com/atomicstack/spiris-tui/internal/logging"
	"github.com/atomicstack/spiris-tui/internal/logging/events"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

// startAuthorization requests an authorization URL once. Repeated confirms
// while a flow is waiting are ignored.
func (m *Model) startAuthorization() {
	if m.auth.waiting || m.Authenticated() {
		return
	}
	if m.authorizer == nil {
		m.setError("Authorization is not configured")
		return
	}
	m.setStatus("Starting OAuth flow...")
	handle, err := m.authorizer.Start()
	if err != nil {
		logging.Errorf("start authorization: %w", err)
		m.setError(fmt.Sprintf("Failed to start authorization: %v", err))
		return
	}
	m.auth = authFlow{waiting: true, url: handle.URL, state: handle.State}
	events.Auth.Start(handle.State)
	m.setStatus("Copy the URL above and open in browser")
}

// AuthURL returns the authorization URL of the waiting flow.
func (m *Model) AuthURL() string {
	return m.auth.url
}

// AuthWaiting reports whether an authorization flow has been started.
func (m *Model) AuthWaiting() bool {
	return m.auth.waiting
}

type clipboardResultMsg struct {
	err error
}

func (m *Model) copyAuthURL() tea.Cmd {
	if m.nav.Current.Kind != uistate.ScreenAuth || m.auth.url == "" {
		return nil
	}
	url, write := m.auth.url, m.clipboard
	return func() tea.Msg {
		return clipboardResultMsg{err: write(url)}
	}
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	events.Auth.Copy(res.err)
	if res.err != nil {
		m.setError(fmt.Sprintf("Failed to copy URL: %v", res.err))
		return nil
	}
	m.setStatus("Authorization URL copied to clipboard")
	return nil
}

// recheckCredential looks for a credential installed by the login command.
func (m *Model) recheckCredential() {
	if m.store == nil || m.Authenticated() {
		return
	}
	cred, err := m.store.Load()
	if errors.Is(err, credential.ErrNotFound) {
		m.setStatus("No credential found yet")
		return
	}
	if err != nil {
		logging.Errorf("load credential: %w", err)
		m.setError(fmt.Sprintf("Failed to read credential: %v", err))
		return
	}
	m.installCredential(cred, "store")
}

// installCredential replaces the session credential and rebinds the gateway.
func (m *Model) installCredential(cred credential.Credential, source string) {
	if !cred.Valid() {
		return
	}
	if cred.AccessToken == m.rejected {
		// The poller keeps returning the same record until login replaces it.
		if source == "store" {
			m.setError("Stored credential was rejected; run the login command again")
		}
		return
	}
	if cred.Expired(m.now()) {
		m.rejected = cred.AccessToken
		m.setError("Stored credential has expired; run the login command again")
		return
	}
	m.rejected = ""
	m.cred = &cred
	if m.connect != nil {
		m.gw = m.connect(cred)
	}
	m.auth = authFlow{}
	if m.backend != nil {
		m.backend.SetWatchCredential(false)
	}
	events.Auth.Installed(source)
	m.setError("")
	m.setStatus("Authenticated")
	if m.nav.Current.Kind == uistate.ScreenAuth {
		m.goTo(uistate.Home(), false)
	}
}

// dropCredential signs the session out when err says the service refused the
// credential. It reports whether that happened.
func (m *Model) dropCredential(err error) bool {
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) || !gwErr.Unauthorized() {
		return false
	}
	if m.cred != nil {
		m.rejected = m.cred.AccessToken
	}
	m.cred = nil
	m.gw = nil
	m.auth = authFlow{}
	m.form.Reset()
	m.nav.Mode = uistate.ModeNormal
	if m.backend != nil {
		m.backend.SetWatchCredential(true)
	}
	events.Auth.Rejected(gwErr.Status)
	m.goTo(uistate.Auth(), false)
	m.setError(fmt.Sprintf("The service rejected the credential (status %d); sign in again", gwErr.Status))
	return true
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return tea.Batch(cmd, waitForBackendEvent(m.backend))
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		logging.Errorf("%s poll: %w", evt.Kind, evt.Err)
		return nil
	}
	switch evt.Kind {
	case backend.KindCredential:
		if m.Authenticated() {
			return nil
		}
		if cred, ok := evt.Data.(credential.Credential); ok {
			m.installCredential(cred, "watcher")
		}
	case backend.KindRefreshTick:
		cur := m.nav.Current
		if cur.Kind != uistate.ScreenList || m.nav.Mode != uistate.ModeNormal {
			return nil
		}
		if m.collections.Get(cur.Entity).Loading() {
			return nil
		}
		return m.refresh()
	}
	return nil
}
