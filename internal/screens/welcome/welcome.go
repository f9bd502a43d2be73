package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	dealEnd      = 400 * time.Millisecond
	bannerAt     = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Sharpen your preflop game"

var holeCards = [2]string{
	"╭─────╮\n│A    │\n│  ♠  │\n│    A│\n╰─────╯",
	"╭─────╮\n│K    │\n│  ♠  │\n│    K│\n╰─────╯",
}

var chipFrames = []string{"◆", "◇"}

type tickMsg time.Time

// WelcomeScreen deals a splash hand, then hands off to the next screen on
// any key.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	cardStyle := lipgloss.NewStyle().Foreground(theme.Text)
	cards := cardStyle.Render(holeCards[0])
	if w.elapsed >= dealEnd {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, cards, " ", cardStyle.Render(holeCards[1]))

		chip := lipgloss.NewStyle().Foreground(theme.Diamond).
			Render(chipFrames[w.tickCount%len(chipFrames)])
		cards = lipgloss.JoinHorizontal(lipgloss.Center, chip, "  ", cards, "  ", chip)
	}
	sections = append(sections, cards)

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
		)
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to deal in"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
