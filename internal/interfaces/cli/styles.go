package cli

import "github.com/charmbracelet/lipgloss"

const (
	ColorPrimary   = "#7C3AED"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorSecondary = "#6B7280"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimary))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary))
)
