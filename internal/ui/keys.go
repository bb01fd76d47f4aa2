package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

// Intent is a key press normalized to a session action.
type Intent int

const (
	IntentNone Intent = iota
	IntentQuit
	IntentCancel
	IntentConfirm
	IntentCycleForward
	IntentCycleBack
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentBackspace
	IntentRefresh
	IntentNew
	IntentHelp
	IntentEdit
	IntentCopy
	IntentChar
)

var intentNames = map[Intent]string{
	IntentNone:         "none",
	IntentQuit:         "quit",
	IntentCancel:       "cancel",
	IntentConfirm:      "confirm",
	IntentCycleForward: "cycle-forward",
	IntentCycleBack:    "cycle-back",
	IntentUp:           "up",
	IntentDown:         "down",
	IntentLeft:         "left",
	IntentRight:        "right",
	IntentBackspace:    "backspace",
	IntentRefresh:      "refresh",
	IntentNew:          "new",
	IntentHelp:         "help",
	IntentEdit:         "edit",
	IntentCopy:         "copy",
	IntentChar:         "char",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// Input is one normalized intent. Char is set for IntentChar.
type Input struct {
	Intent Intent
	Char   rune
}

// KeyMap is the fixed keybinding table.
type KeyMap struct {
	Quit      key.Binding
	Cancel    key.Binding
	Confirm   key.Binding
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding
	Refresh   key.Binding
	New       key.Binding
	Help      key.Binding
	Edit      key.Binding
	Copy      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous screen")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous page")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next page")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h/?", "help")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy url")),
	}
}

// ShortHelp implements help.KeyMap for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Confirm, k.Quit, k.New, k.Refresh, k.Help}
}

// FullHelp implements help.KeyMap for the help screen.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Cancel, k.Next, k.Prev},
		{k.New, k.Edit, k.Refresh, k.Copy},
		{k.Help, k.Quit},
	}
}

// editingHelp is the footer shown while a form is active.
type editingHelp struct{}

func (e editingHelp) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next field")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (e editingHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{e.ShortHelp()}
}

// Normalize converts a key press into intents. While editing every printable
// rune is text, so letter bindings are not consulted.
func (k KeyMap) Normalize(msg tea.KeyMsg, mode uistate.Mode) []Input {
	if mode == uistate.ModeEditing {
		switch msg.Type {
		case tea.KeyRunes:
			inputs := make([]Input, 0, len(msg.Runes))
			for _, r := range msg.Runes {
				inputs = append(inputs, Input{Intent: IntentChar, Char: r})
			}
			return inputs
		case tea.KeySpace:
			return []Input{{Intent: IntentChar, Char: ' '}}
		case tea.KeyEnter:
			return []Input{{Intent: IntentConfirm}}
		case tea.KeyEsc:
			return []Input{{Intent: IntentCancel}}
		case tea.KeyBackspace:
			return []Input{{Intent: IntentBackspace}}
		case tea.KeyCtrlC:
			return []Input{{Intent: IntentQuit}}
		}
		return nil
	}

	bindings := []struct {
		binding key.Binding
		intent  Intent
	}{
		{k.Quit, IntentQuit},
		{k.Cancel, IntentCancel},
		{k.Confirm, IntentConfirm},
		{k.Next, IntentCycleForward},
		{k.Prev, IntentCycleBack},
		{k.Up, IntentUp},
		{k.Down, IntentDown},
		{k.Left, IntentLeft},
		{k.Right, IntentRight},
		{k.Backspace, IntentBackspace},
		{k.Refresh, IntentRefresh},
		{k.New, IntentNew},
		{k.Help, IntentHelp},
		{k.Edit, IntentEdit},
		{k.Copy, IntentCopy},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return []Input{{Intent: b.intent}}
		}
	}
	return nil
}
