package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/disclose/pkg/monitor/tooltip"
)

var (
	primaryColor = tooltip.Primary
	cyanColor    = tooltip.Info
	mutedColor   = tooltip.Muted
	warningColor = lipgloss.Color("214")
)

// Button styles
var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(primaryColor).
				Bold(true).
				Padding(0, 1)

	buttonHoverStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("245")).
				Padding(0, 1)

	buttonOpenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(cyanColor).
			Padding(0, 1)
)

// Text styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	stateStyle  = lipgloss.NewStyle().Foreground(cyanColor).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(warningColor)
)
