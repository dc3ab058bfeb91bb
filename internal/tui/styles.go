package tui

import "github.com/charmbracelet/lipgloss"

var (
	// State icons
	iconUpToDate     = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("✓")
	iconUpdate       = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("↑")
	iconNotInstalled = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("○")
	iconError        = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	versionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	updateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
