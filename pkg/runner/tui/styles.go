package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().
			Bold(true)
	itemLabelStyle = lipgloss.NewStyle().
			Faint(true)
	cursorStyle = lipgloss.NewStyle().
			Reverse(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	mutedStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("218"))
)
