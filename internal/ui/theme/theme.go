package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/scenario"
)

// Color palette, card-room dark with felt green accents.
var (
	Primary   = lipgloss.Color("#10B981") // Felt green
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Diamond   = lipgloss.Color("#67E8F9") // Cyan
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Night
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	FoldColor  = lipgloss.Color("#64748B")
	CallColor  = lipgloss.Color("#38BDF8")
	RaiseColor = lipgloss.Color("#F97316")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(Border)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// ActionColor returns the color used for an action's key and label.
func ActionColor(a scenario.Action) color.Color {
	switch a {
	case scenario.ActionFold:
		return FoldColor
	case scenario.ActionCall:
		return CallColor
	case scenario.ActionRaise:
		return RaiseColor
	default:
		return Text
	}
}
