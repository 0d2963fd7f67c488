package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	engineNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(28)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	statusFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	digitsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)
