package play

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/scenario"
	"github.com/abhisek/drillz/internal/ui/components"
	"github.com/abhisek/drillz/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderMessage(width, height, theme.Error, s.errMsg+"\n\nPress any key to go back.")
	}
	if s.machine == nil {
		return renderMessage(width, height, theme.TextDim, s.spin.View()+" Shuffling the deck...")
	}
	if s.completing {
		return renderMessage(width, height, theme.TextDim, s.spin.View()+" Counting chips...")
	}
	if s.confirmQuit {
		return renderMessage(width, height, theme.Accent,
			"End this session now?\n\nUnanswered hands count as misses.\n\n[Y] End   [N] Keep going")
	}

	st := s.machine.State()
	var b strings.Builder
	b.WriteString(s.renderInfoLine(st, width))
	b.WriteString("\n\n")
	b.WriteString(renderHand(st.Current, width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.picker.View()))
	b.WriteString("\n\n")
	if st.Phase == drill.PhaseFeedback {
		b.WriteString(renderFeedback(st, width))
	}
	return b.String()
}

func (s *PlayScreen) renderInfoLine(st drill.State, width int) string {
	hand := min(st.HandIndex+1, st.SessionLength)
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Hand %d/%d", hand, st.SessionLength))
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%s %d   %s %d   %d XP",
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), st.CorrectCount,
		lipgloss.NewStyle().Foreground(theme.Accent).Render("streak"), st.Streak,
		st.SessionXP))

	bar := components.ProgressBar{
		Percent: st.ProgressPct(),
		Width:   max(width-lipgloss.Width(left)-lipgloss.Width(right)-8, 10),
		Marker:  st.Level.Threshold(),
	}
	return left + "  " + bar.View() + "  " + right
}

func renderHand(sc scenario.Scenario, width int) string {
	cards := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Foreground(theme.Text).
		Bold(true).
		Padding(0, 3).
		Render(sc.Hand)

	seat := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(sc.Position)
	situation := sc.Situation
	if situation == "" {
		situation = "action on you"
	}
	line := seat + lipgloss.NewStyle().Foreground(theme.Text).Render("  ·  "+situation)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, cards, "", line))
}

func renderFeedback(st drill.State, width int) string {
	last, ok := st.LastResult()
	if !ok {
		return ""
	}
	sc := st.Current
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	if last.Correct {
		verdict := "Correct!"
		if last.Fast() {
			verdict = fmt.Sprintf("Correct! +%d speed bonus", drill.SpeedBonusXP)
		}
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render(verdict))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("The chart says %s", sc.CorrectAction.DisplayName())))
		for _, alt := range sc.Alternates {
			if alt.Action == last.Answer && alt.Note != "" {
				b.WriteString("\n")
				b.WriteString(center.Foreground(theme.TextDim).
					Render(fmt.Sprintf("%s: %s", alt.Action.DisplayName(), alt.Note)))
			}
		}
	}
	b.WriteString("\n\n")

	if sc.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 72)).Foreground(theme.Text).Render(sc.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}
	return b.String()
}

func renderMessage(width, height int, fg color.Color, text string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(fg).Align(lipgloss.Center).Render(text))
}
