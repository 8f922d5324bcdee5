package output

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#8B5CF6")
	ColorAccent  = lipgloss.Color("#06B6D4")
	ColorError   = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#6B7280")
)

// Styles holds the lipgloss styles used by the text formatter and the repl.
type Styles struct {
	Heading lipgloss.Style
	Command lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
}

// DefaultStyles returns the styles used on a terminal.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Command: lipgloss.NewStyle().Foreground(ColorAccent),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Heading: plain, Command: plain, Muted: plain, Error: plain, Prompt: plain}
}
