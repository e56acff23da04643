package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorSurface lipgloss.Color = "#313244"
	colorBase    lipgloss.Color = "#1e1e2e"
	colorAccent  lipgloss.Color = "#f5c2e7"
	colorFocus   lipgloss.Color = "#b4befe"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorWarning lipgloss.Color = "#f9e2af"
)

var (
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
	bodyStyle    = lipgloss.NewStyle().Padding(1, 2)
	tabStyle     = lipgloss.NewStyle().Foreground(colorSubtext).Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorFocus).Padding(0, 1)
	navBarStyle  = lipgloss.NewStyle().Background(colorSurface).Padding(0, 1)
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Foreground(colorSubtext).Background(colorSurface).Padding(0, 2)
	okStyle      = lipgloss.NewStyle().Foreground(colorSuccess)
	errStyle     = lipgloss.NewStyle().Foreground(colorError)
	pendingStyle = lipgloss.NewStyle().Foreground(colorWarning)
)
