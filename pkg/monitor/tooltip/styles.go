package tooltip

import "github.com/charmbracelet/lipgloss"

// Colors shared with the monitor's base view.
var (
	Primary      = lipgloss.Color("212")
	Info         = lipgloss.Color("45")
	Muted        = lipgloss.Color("241")
	BgSecondary  = lipgloss.Color("235")
	BorderNormal = lipgloss.Color("240")
)

// Box styles for floating content
var (
	TooltipBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Info).
			Background(BgSecondary).
			Padding(0, 1)

	MenuBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Primary).
		Background(BgSecondary)
)

// Text styles
var (
	Title     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	MutedText = lipgloss.NewStyle().Foreground(Muted)
	Body      = lipgloss.NewStyle() // Plain body text
)

// List styles for menu items
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)
