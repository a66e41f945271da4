package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title lipgloss.Style
	fact  lipgloss.Style
	peak  lipgloss.Style
	path  lipgloss.Style
	empty lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true),
		fact:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		peak:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		path:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty: lipgloss.NewStyle().Faint(true),
	}
}
