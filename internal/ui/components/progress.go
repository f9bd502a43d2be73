package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar. A non-zero Marker
// draws a tick at that fraction, e.g. a level's pass threshold.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Marker      float64
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	marker := -1
	if p.Marker > 0 {
		marker = min(int(float64(barWidth)*p.Marker), barWidth-1)
	}

	filledStyle := lipgloss.NewStyle().Background(theme.Secondary)
	emptyStyle := lipgloss.NewStyle().Background(theme.Border)
	markerStyle := lipgloss.NewStyle().Background(theme.Accent)
	for i := range barWidth {
		switch {
		case i == marker:
			result += markerStyle.Render(" ")
		case i < filled:
			result += filledStyle.Render(" ")
		default:
			result += emptyStyle.Render(" ")
		}
	}

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}
