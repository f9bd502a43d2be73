package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ██╗██╗     ██╗     ███████╗
 ██╔══██╗██╔══██╗██║██║     ██║     ╚══███╔╝
 ██║  ██║██████╔╝██║██║     ██║       ███╔╝
 ██║  ██║██╔══██╗██║██║     ██║      ███╔╝
 ██████╔╝██║  ██║██║███████╗███████╗███████╗
 ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚══════╝╚══════╝`

const bannerCompact = "D R I L L Z"

// RenderBanner returns the banner in the primary color, falling back to
// spaced letters below 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
