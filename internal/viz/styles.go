package viz

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(1, 0)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	safeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	crashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	historyHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true)
)
