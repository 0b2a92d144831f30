package client

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Bold(true)
	noticeStyle  = lipgloss.NewStyle().Italic(true)
	privateStyle = lipgloss.NewStyle().Faint(true)
)

const uiDivider = "──────────────────────────────────────────────────────"
