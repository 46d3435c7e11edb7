package tui

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	PassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	FailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	IntentNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	EvidenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	FixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))
)
