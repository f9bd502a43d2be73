package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/rewards"
	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/trainer"
	"github.com/abhisek/drillz/internal/ui/layout"
	"github.com/abhisek/drillz/internal/ui/theme"
)

// Options wires the summary's follow-up actions. Nil funcs disable them.
type Options struct {
	// Retry builds a fresh drill screen for the same level.
	Retry func() screen.Screen

	// Settle reconciles the session and returns the completion with its
	// confirmed figures.
	Settle func(trainer.Completion) trainer.Completion
}

// settledMsg carries the completion after a reconciliation attempt.
type settledMsg struct {
	Completion trainer.Completion
}

// SummaryScreen shows a finished session next to its confirmed rewards.
// It opens on the optimistic figures and settles in the background.
type SummaryScreen struct {
	c        trainer.Completion
	opts     Options
	settling bool
	notice   string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(c trainer.Completion, opts Options) *SummaryScreen {
	return &SummaryScreen{c: c, opts: opts}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return s.settle()
}

func (s *SummaryScreen) settle() tea.Cmd {
	if !s.c.Pending || s.opts.Settle == nil || s.settling {
		return nil
	}
	s.settling = true
	settle, c := s.opts.Settle, s.c
	return func() tea.Msg {
		return settledMsg{Completion: settle(c)}
	}
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Campaign"}}
	if s.opts.Retry != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry level"})
	}
	if s.c.Pending && s.opts.Settle != nil {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Sync rewards"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg:
		wasPending := s.c.Pending
		s.settling = false
		s.c = msg.Completion
		switch {
		case s.c.Pending && s.c.Err != nil:
			s.notice = "Rewards pending: " + s.c.Err.Error()
		case s.c.Pending:
			s.notice = "Rewards pending."
		case wasPending:
			s.notice = "Rewards confirmed."
		}
		return s, func() tea.Msg { return screen.StatsChangedMsg{} }

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "r", "R":
			if s.opts.Retry != nil {
				next := s.opts.Retry()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		case "s", "S":
			if cmd := s.settle(); cmd != nil {
				s.notice = "Syncing..."
				return s, cmd
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.c.Summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	if sum.Passed {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Level cleared!"))
	} else {
		b.WriteString(center.Foreground(theme.Accent).Bold(true).Render("Not this time"))
	}
	b.WriteString("\n")
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	sub := fmt.Sprintf("%s   %d:%02d", s.c.Outcome.Level.Name, mins, secs)
	if sum.EndedEarly {
		sub += "   (ended early)"
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(sub))
	b.WriteString("\n\n")

	accStyle := lipgloss.NewStyle().Foreground(theme.Error)
	if sum.Passed {
		accStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}
	stats := fmt.Sprintf("Correct %d/%d   Accuracy %s   Need %.0f%%   Best streak %d",
		sum.Correct, sum.SessionLength,
		accStyle.Bold(true).Render(fmt.Sprintf("%.0f%%", sum.Accuracy*100)),
		sum.Threshold*100, sum.MaxStreak)
	b.WriteString(center.Foreground(theme.Text).Render(stats))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Avg response %.1fs   Fast answers %d", sum.AvgResponse.Seconds(), sum.FastAnswers)))
	b.WriteString("\n\n")

	b.WriteString(section("Rewards", width))
	b.WriteString(s.renderRewards(width))

	if s.c.Unlocked != nil {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Primary).Bold(true).
			Render("🔓 Unlocked: " + s.c.Unlocked.Name))
		b.WriteString("\n")
	}

	if len(s.c.Leaks) > 0 {
		b.WriteString("\n")
		b.WriteString(section("Leaks", width))
		for _, l := range s.c.Leaks {
			line := fmt.Sprintf("%-10s  missed %d of last %d  (%s)", l.Category, l.Misses, l.Attempts, l.Severity)
			b.WriteString(center.Foreground(leakColor(l.Severity)).Render(line))
			b.WriteString("\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render(s.notice))
	}
	return b.String()
}

func (s *SummaryScreen) renderRewards(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	estimate := fmt.Sprintf("Estimated  +%d XP", s.c.OptimisticXP)
	var confirmed string
	switch {
	case s.c.Pending:
		confirmed = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Confirmed  pending ⟳")
	default:
		confirmed = lipgloss.NewStyle().Foreground(theme.Success).Render(
			fmt.Sprintf("Confirmed  +%d XP  ◆ +%d", s.c.ConfirmedXP, s.c.ConfirmedDiamonds))
	}
	b.WriteString(center.Foreground(theme.Text).Render(estimate + "     " + confirmed))
	b.WriteString("\n")

	for _, cr := range s.c.Claims {
		if cr.Err != nil || cr.AmountAwarded == 0 && !cr.Success {
			continue
		}
		b.WriteString(center.Render(claimLine(cr)))
		b.WriteString("\n")
	}
	return b.String()
}

func claimLine(cr rewards.ClaimResult) string {
	if cr.Celebration != nil {
		c := cr.Celebration
		return lipgloss.NewStyle().Foreground(rarityColor(c.Rarity)).
			Render(fmt.Sprintf("%s %s  +%d %s", c.Icon, c.Name, cr.AmountAwarded, cr.Currency))
	}
	note := ""
	if cr.Currency == rewards.CurrencyDiamonds && cr.AmountAwarded == 0 {
		note = "  (daily cap reached)"
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  +%d %s%s", cr.Kind, cr.AmountAwarded, cr.Currency, note))
}

func section(title string, width int) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n"
}

// rarityColor returns the theme color for a reward rarity.
func rarityColor(r rewards.Rarity) color.Color {
	switch r {
	case rewards.RarityUncommon:
		return theme.Secondary
	case rewards.RarityRare:
		return theme.Diamond
	case rewards.RarityEpic:
		return theme.Primary
	case rewards.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}

func leakColor(s drill.LeakSeverity) color.Color {
	if s == drill.LeakCritical {
		return theme.Error
	}
	return theme.Accent
}
