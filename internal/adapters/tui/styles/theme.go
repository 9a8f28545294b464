// Package styles holds the lipgloss palette of the planner TUI: a blueprint
// look for the plan and muted chrome around it.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	Blueprint = lipgloss.Color("#2563EB")
	Ink       = lipgloss.Color("#E5E7EB")
	Pencil    = lipgloss.Color("#6B7280")
	Fitting   = lipgloss.Color("#10B981")
	Opening   = lipgloss.Color("#F59E0B")
	Alert     = lipgloss.Color("#EF4444")
	Paper     = lipgloss.Color("#111827")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	App      = lipgloss.NewStyle().Padding(1, 2)
	Title    = fg(Blueprint).Bold(true).MarginBottom(1)
	Subtitle = fg(Pencil).Italic(true)

	// Catalogue rows
	GroupHeader  = fg(Ink).Bold(true).Underline(true)
	CategoryRow  = fg(Blueprint)
	SyntheticRow = fg(Fitting).Italic(true)
	ObjectRow    = lipgloss.NewStyle()
	ApertureRow  = fg(Opening)
	RowSelected  = lipgloss.NewStyle().Background(Blueprint).Foreground(Ink).Bold(true)

	// Plan glyphs
	PlanWall   = fg(Pencil)
	PlanObject = fg(Fitting).Bold(true)
	PlanHole   = fg(Opening).Bold(true)
	PlanCursor = lipgloss.NewStyle().Background(Blueprint).Foreground(Ink)

	// Status bar
	StatusBar = lipgloss.NewStyle().Background(Paper).Foreground(Ink).Padding(0, 1)
	StatusKey = lipgloss.NewStyle().Foreground(Paper).Bold(true).Padding(0, 1).MarginRight(1)

	InputLabel   = fg(Fitting).Bold(true)
	InputFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Blueprint).Padding(0, 1)

	HelpKey       = fg(Blueprint).Bold(true)
	HelpDesc      = fg(Pencil)
	HelpSeparator = fg(Pencil).SetString(" • ")

	Success   = fg(Fitting).Bold(true)
	ErrorMsg  = fg(Alert).Bold(true)
	MutedText = fg(Pencil)
)

// ModeColor is the status badge background for an edit mode name
func ModeColor(mode string) lipgloss.Color {
	if mode == "3d" {
		return Opening
	}
	return Fitting
}
