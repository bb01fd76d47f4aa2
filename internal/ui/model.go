package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/spiris-tui/internal/backend"
	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/data/dispatcher"
	"github.com/atomicstack/spiris-tui/internal/datasync"
	"github.com/atomicstack/spiris-tui/internal/gateway"
	"github.com/atomicstack/spiris-tui/internal/oauth"
	"github.com/atomicstack/spiris-tui/internal/state"
	"github.com/atomicstack/spiris-tui/internal/theme"
	"github.com/atomicstack/spiris-tui/internal/ui/command"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Authorizer starts the authorization flow whose completion happens outside
// the interactive session.
type Authorizer interface {
	Start() (oauth.Handle, error)
}

// Options wires the model's collaborators. Credential is nil when no usable
// credential was loaded at startup.
type Options struct {
	Width      int
	Height     int
	Credential *credential.Credential
	Store      credential.Store
	Authorizer Authorizer
	Connect    gateway.Connector
	Watcher    *backend.Watcher
	Notice     string
	Clipboard  func(string) error
	Now        func() time.Time
}

type authFlow struct {
	waiting bool
	url     string
	state   string
}

// Model is the session controller. All session state is owned here and only
// mutated from Update.
type Model struct {
	nav         *uistate.Navigation
	form        uistate.Collector
	collections *state.Store
	sync        *datasync.Synchronizer
	dispatcher  *dispatcher.Dispatcher
	bus         *command.Bus

	cred       *credential.Credential
	gw         gateway.Gateway
	connect    gateway.Connector
	store      credential.Store
	authorizer Authorizer
	auth       authFlow
	backend    *backend.Watcher
	// rejected is the access token last refused as expired or unauthorised.
	rejected string

	statusMsg string
	errMsg    string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	spinning bool
	input    textinput.Model

	clipboard func(string) error
	now       func() time.Time
	ctx       context.Context

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the session. It starts on Home when opts.Credential is set
// and on Auth otherwise.
func NewModel(opts Options) *Model {
	collections := state.NewStore()
	m := &Model{
		nav:         uistate.NewNavigation(opts.Credential != nil),
		collections: collections,
		sync:        datasync.New(),
		dispatcher:  dispatcher.New(collections),
		bus:         command.New(),
		connect:     opts.Connect,
		store:       opts.Store,
		authorizer:  opts.Authorizer,
		backend:     opts.Watcher,
		errMsg:      opts.Notice,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		clipboard:   opts.Clipboard,
		now:         opts.Now,
		ctx:         context.Background(),
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	if m.now == nil {
		m.now = time.Now
	}
	if opts.Credential != nil {
		cred := *opts.Credential
		m.cred = &cred
		if m.connect != nil {
			m.gw = m.connect(cred)
		}
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.width

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m.spinner = sp

	in := textinput.New()
	if styles.FieldLabel != nil {
		in.PromptStyle = *styles.FieldLabel
	}
	if styles.FieldValue != nil {
		in.TextStyle = *styles.FieldValue
	}
	in.Focus()
	in.Cursor.SetMode(cursor.CursorStatic)
	m.input = in

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(datasync.Result{}):    m.handleSyncResultMsg,
		reflect.TypeOf(spinner.TickMsg{}):    m.handleSpinnerTickMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
		reflect.TypeOf(clipboardResultMsg{}): m.handleClipboardResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	var cmds []tea.Cmd
	for _, in := range m.keys.Normalize(keyMsg, m.nav.Mode) {
		if cmd := m.Dispatch(in); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.help.Width = m.width
	return nil
}

// Authenticated reports whether a credential is installed.
func (m *Model) Authenticated() bool {
	return m.cred != nil
}

// Screen returns the current screen.
func (m *Model) Screen() uistate.Screen {
	return m.nav.Current
}

// Mode returns the current input mode.
func (m *Model) Mode() uistate.Mode {
	return m.nav.Mode
}

// StatusMessage returns the live status line.
func (m *Model) StatusMessage() string {
	return m.statusMsg
}

// ErrorMessage returns the live error line.
func (m *Model) ErrorMessage() string {
	return m.errMsg
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
}

func (m *Model) setError(msg string) {
	m.errMsg = msg
}
