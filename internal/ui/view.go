package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"

	"github.com/atomicstack/spiris-tui/internal/entity"
	"github.com/atomicstack/spiris-tui/internal/format/table"
	"github.com/atomicstack/spiris-tui/internal/state"
	"github.com/atomicstack/spiris-tui/internal/theme"
	uistate "github.com/atomicstack/spiris-tui/internal/ui/state"
)

const (
	appTitle      = "Spiris Bokföring och Fakturering"
	selectedMark  = ">> "
	unselectedPad = "   "
	// header, blank, title, blank, status, error, footer
	chromeLines = 7
)

var columnHeaders = map[entity.Kind][]string{
	entity.KindCustomer: {"No.", "Name", "Email"},
	entity.KindInvoice:  {"No.", "Date", "Customer", "Amount"},
	entity.KindArticle:  {"No.", "Name", "Price"},
}

var columnLayout = map[entity.Kind][]table.Column{
	entity.KindCustomer: {{}, {Max: 40}, {Max: 40}},
	entity.KindInvoice:  {{Align: table.AlignRight}, {}, {Max: 40}, {Align: table.AlignRight}},
	entity.KindArticle:  {{}, {Max: 50}, {Align: table.AlignRight}},
}

type styledLine struct {
	text  string
	style *lipgloss.Style
	// wrapped lines are hard-wrapped instead of truncated
	wrapped bool
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, m.headerLine(), styledLine{})
	lines = append(lines, m.bodyLines()...)
	lines = append(lines, styledLine{})
	if m.statusMsg != "" {
		lines = append(lines, styledLine{text: m.statusMsg, style: styles.Info})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: m.errMsg, style: styles.Error})
	}
	lines = append(lines, styledLine{text: m.footer(), style: styles.Footer})
	return m.render(lines)
}

func (m *Model) render(lines []styledLine) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		text := line.text
		if m.width > 0 {
			if line.wrapped {
				text = wrap.String(text, m.width)
			} else {
				text = truncate.StringWithTail(text, uint(m.width), "…")
			}
		}
		out = append(out, theme.Render(line.style, text))
	}
	return strings.Join(out, "\n")
}

func (m *Model) headerLine() styledLine {
	if !m.Authenticated() {
		return styledLine{text: appTitle + " (Not Authenticated)", style: styles.Header}
	}
	text := appTitle
	if exp := m.cred.Expiry; !exp.IsZero() {
		if m.cred.Expired(m.now()) {
			text += " · token expired " + humanize.Time(exp)
		} else {
			text += " · token expires " + humanize.Time(exp)
		}
	}
	return styledLine{text: text, style: styles.Header}
}

func (m *Model) footer() string {
	if m.nav.Mode == uistate.ModeEditing {
		return m.help.View(editingHelp{})
	}
	return m.help.View(m.keys)
}

func (m *Model) bodyLines() []styledLine {
	cur := m.nav.Current
	switch cur.Kind {
	case uistate.ScreenAuth:
		return m.authLines()
	case uistate.ScreenHome:
		return m.homeLines()
	case uistate.ScreenList:
		return m.listLines(cur.Entity)
	case uistate.ScreenDetail:
		return m.detailLines(cur.Entity, cur.ID)
	case uistate.ScreenCreate, uistate.ScreenEdit:
		return m.formLines(cur)
	case uistate.ScreenHelp:
		return m.helpLines()
	}
	return nil
}

func (m *Model) authLines() []styledLine {
	lines := []styledLine{
		{text: "OAuth2 Authentication Required", style: styles.Title},
		{},
	}
	if !m.auth.waiting {
		return append(lines, styledLine{text: "Press Enter to start the authorization flow", style: styles.Item})
	}
	return append(lines,
		styledLine{text: "Open this URL in your browser:", style: styles.Item},
		styledLine{},
		styledLine{text: m.auth.url, style: styles.Link, wrapped: true},
		styledLine{},
		styledLine{text: "Press c to copy the URL. Then run `spiris-tui login` to finish signing in;", style: styles.Item},
		styledLine{text: "this screen continues automatically once the credential is saved (r to check now).", style: styles.Item},
	)
}

func (m *Model) homeLines() []styledLine {
	lines := []styledLine{{text: "Main Menu", style: styles.Title}, {}}
	for i, item := range uistate.HomeMenu {
		if i == m.nav.MenuIndex {
			lines = append(lines, styledLine{text: selectedMark + item.Label, style: styles.SelectedItem})
			continue
		}
		lines = append(lines, styledLine{text: unselectedPad + item.Label, style: styles.Item})
	}
	return lines
}

func (m *Model) listLines(kind entity.Kind) []styledLine {
	col := m.collections.Get(kind)
	title := fmt.Sprintf("%s (page %d, ↑↓ to select, enter to view)", kind.Title(), col.Page)
	lines := []styledLine{{text: title, style: styles.Title}, {}}
	if col.Loading() && len(col.Items) == 0 {
		return append(lines, styledLine{text: fmt.Sprintf("%s Loading %s...", m.spinner.View(), kind.Plural()), style: styles.Loading})
	}
	if len(col.Items) == 0 {
		msg := fmt.Sprintf("No %s found. Press 'n' to create a new %s.", kind.Plural(), kind)
		return append(lines, styledLine{text: msg, style: styles.Empty})
	}

	rows := make([][]string, 0, len(col.Items)+1)
	rows = append(rows, columnHeaders[kind])
	for _, item := range col.Items {
		rows = append(rows, item.Columns)
	}
	formatted := table.Format(rows, columnLayout[kind])
	lines = append(lines, styledLine{text: unselectedPad + formatted[0], style: styles.ColumnHeader})

	start, end := visibleRange(col, m.maxVisibleRows())
	for i := start; i < end; i++ {
		text := formatted[i+1]
		if i == col.Selected {
			lines = append(lines, styledLine{text: selectedMark + text, style: styles.SelectedItem})
			continue
		}
		lines = append(lines, styledLine{text: unselectedPad + text, style: styles.Item})
	}
	if col.Loading() {
		lines = append(lines, styledLine{text: m.spinner.View() + " Refreshing...", style: styles.Loading})
	}
	return lines
}

// maxVisibleRows is the number of list rows that fit under the chrome, or 0
// when the height is unknown.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - chromeLines - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

// visibleRange keeps the selected row on screen.
func visibleRange(col *state.Collection, max int) (int, int) {
	n := len(col.Items)
	if max <= 0 || n <= max {
		return 0, n
	}
	start := col.Selected - max + 1
	if start < 0 {
		start = 0
	}
	return start, start + max
}

func (m *Model) detailLines(kind entity.Kind, id string) []styledLine {
	lines := []styledLine{{text: kind.Noun() + " Detail (esc to go back, e to edit)", style: styles.Title}, {}}
	item, ok := m.collections.Get(kind).Find(id)
	if !ok {
		return append(lines, styledLine{text: kind.Noun() + " not found", style: styles.Empty})
	}
	for _, d := range item.Details {
		value := d.Value
		if value == "" {
			value = "N/A"
		}
		text := theme.Render(styles.DetailLabel, d.Label+": ") + theme.Render(styles.DetailValue, value)
		lines = append(lines, styledLine{text: text})
	}
	return lines
}

func (m *Model) formLines(screen uistate.Screen) []styledLine {
	kind := screen.Entity
	title := "Create New " + kind.Noun()
	if screen.Kind == uistate.ScreenEdit {
		title = "Edit " + kind.Noun()
		if item, ok := m.collections.Get(kind).Find(screen.ID); ok {
			title += ": " + item.Label
		}
	}
	lines := []styledLine{{text: title, style: styles.Title}, {}}

	collecting := m.form.Collecting() && m.form.Kind == kind
	for i, field := range entity.Fields(kind) {
		label := field.Label
		if field.Optional {
			label += " (optional)"
		}
		switch {
		case collecting && i < m.form.Buffer.Cursor:
			lines = append(lines, styledLine{text: fmt.Sprintf("%s: %s", label, m.form.Buffer.Collected[i]), style: styles.Item})
		case collecting && i == m.form.Buffer.Cursor:
			lines = append(lines, styledLine{text: m.liveField(label)})
		default:
			lines = append(lines, styledLine{text: label + ":", style: styles.FieldPending})
		}
	}
	lines = append(lines, styledLine{})
	switch {
	case !collecting:
		lines = append(lines, styledLine{text: "Press enter or n to start the form.", style: styles.Empty})
	case screen.Kind == uistate.ScreenEdit:
		lines = append(lines, styledLine{text: "Leave a field empty to keep its current value.", style: styles.Empty})
	default:
		lines = append(lines, styledLine{text: fmt.Sprintf("Field %d of %d", m.form.Buffer.Cursor+1, entity.FieldCount(kind)), style: styles.Empty})
	}
	return lines
}

func (m *Model) liveField(label string) string {
	in := m.input
	in.Prompt = label + ": "
	in.SetValue(m.form.Buffer.Live)
	in.CursorEnd()
	return in.View()
}

func (m *Model) helpLines() []styledLine {
	lines := []styledLine{{text: "Help", style: styles.Title}, {}}
	full := help.New()
	full.ShowAll = true
	full.Width = m.width
	for _, l := range strings.Split(full.View(m.keys), "\n") {
		lines = append(lines, styledLine{text: l})
	}
	lines = append(lines,
		styledLine{},
		styledLine{text: "Tab cycles Home, Customers, Invoices, Articles and Help.", style: styles.Item},
		styledLine{text: "In a form, enter confirms a field and esc discards the whole form.", style: styles.Item},
		styledLine{text: "Press r on a list to refresh it in the background.", style: styles.Item},
	)
	return lines
}
