package tui

import "github.com/charmbracelet/lipgloss"

// Felt-table palette.
const (
	feltGreen = lipgloss.Color("#1E5631")
	cream     = lipgloss.Color("#F5F0E1")
	cardRed   = lipgloss.Color("#D7263D")
	ink       = lipgloss.Color("#111111")
	muted     = lipgloss.Color("#7A7A7A")
	gold      = lipgloss.Color("#E8C547")
)

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(cream).Background(feltGreen).Bold(true).Padding(0, 1)
	HandStyle   = lipgloss.NewStyle().Foreground(gold).Bold(true)

	// Cards render as small face-up tiles.
	RedCardStyle    = lipgloss.NewStyle().Foreground(cardRed).Background(cream).Padding(0, 1)
	BlackCardStyle  = lipgloss.NewStyle().Foreground(ink).Background(cream).Padding(0, 1)
	HiddenCardStyle = lipgloss.NewStyle().Foreground(cream).Background(feltGreen).Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FB760")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(cardRed).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(gold)
	InfoStyle    = lipgloss.NewStyle().Foreground(muted)

	LogStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(feltGreen)
)
