package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the chat view.
type Styles struct {
	Header     lipgloss.Style
	UserMsg    lipgloss.Style
	BotMsg     lipgloss.Style
	SuccessMsg lipgloss.Style
	ErrorMsg   lipgloss.Style
	Card       lipgloss.Style
	CardName   lipgloss.Style
	CardMeta   lipgloss.Style
	OutOfStock lipgloss.Style
	Suggestion lipgloss.Style
	Selected   lipgloss.Style
	CartTitle  lipgloss.Style
	Help       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		UserMsg:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		BotMsg:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SuccessMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ErrorMsg:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		CardName:   lipgloss.NewStyle().Bold(true),
		CardMeta:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		OutOfStock: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true),
		CartTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
