package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	HeaderMuted  *lipgloss.Style
	Title        *lipgloss.Style
	Loading      *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	ColumnHeader *lipgloss.Style
	Empty        *lipgloss.Style
	DetailLabel  *lipgloss.Style
	DetailValue  *lipgloss.Style
	FieldLabel   *lipgloss.Style
	FieldValue   *lipgloss.Style
	FieldPending *lipgloss.Style
	Link         *lipgloss.Style
	Info         *lipgloss.Style
	Error        *lipgloss.Style
	Footer       *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	),
	HeaderMuted: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ColumnHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	DetailLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	DetailValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	FieldLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	),
	FieldValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	FieldPending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Link: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Underline(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Render applies style when set and returns text unchanged otherwise.
func Render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
