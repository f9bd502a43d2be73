package levelmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/screens/play"
	"github.com/abhisek/drillz/internal/trainer"
	"github.com/abhisek/drillz/internal/ui/components"
	"github.com/abhisek/drillz/internal/ui/layout"
	"github.com/abhisek/drillz/internal/ui/theme"
)

// Trainer is what the campaign screen needs from the trainer.
type Trainer interface {
	play.Trainer
	LevelCards(ctx context.Context) ([]campaign.LevelCard, error)
	DailyLogin(ctx context.Context) (trainer.LoginResult, error)
}

type cardsLoadedMsg struct {
	Cards []campaign.LevelCard
	Err   error
}

type loginMsg struct {
	Result trainer.LoginResult
	Err    error
}

// LevelMapScreen lists the campaign levels and starts drills.
type LevelMapScreen struct {
	ctx     context.Context
	trainer Trainer

	cards  []campaign.LevelCard
	menu   components.Menu
	loaded bool
	errMsg string
	banner string
}

var _ screen.Screen = (*LevelMapScreen)(nil)
var _ screen.KeyHintProvider = (*LevelMapScreen)(nil)

// New creates the campaign screen.
func New(ctx context.Context, t Trainer) *LevelMapScreen {
	return &LevelMapScreen{ctx: ctx, trainer: t}
}

func (l *LevelMapScreen) Init() tea.Cmd {
	return tea.Batch(l.load(), l.checkIn())
}

func (l *LevelMapScreen) Title() string {
	return "Campaign"
}

func (l *LevelMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Play"},
		{Key: "Q", Description: "Quit"},
	}
}

func (l *LevelMapScreen) load() tea.Cmd {
	ctx, t := l.ctx, l.trainer
	return func() tea.Msg {
		cards, err := t.LevelCards(ctx)
		return cardsLoadedMsg{Cards: cards, Err: err}
	}
}

func (l *LevelMapScreen) checkIn() tea.Cmd {
	ctx, t := l.ctx, l.trainer
	return func() tea.Msg {
		res, err := t.DailyLogin(ctx)
		return loginMsg{Result: res, Err: err}
	}
}

func (l *LevelMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		l.loaded = true
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			return l, nil
		}
		l.errMsg = ""
		l.setCards(msg.Cards)
		return l, nil

	case loginMsg:
		if msg.Err == nil {
			l.banner = loginBanner(msg.Result)
		}
		return l, func() tea.Msg { return screen.StatsChangedMsg{} }

	case screen.ResumeMsg:
		return l, l.load()

	case tea.KeyMsg:
		if msg.String() == "q" {
			return l, tea.Quit
		}
	}

	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LevelMapScreen) setCards(cards []campaign.LevelCard) {
	prev := l.menu.Selected
	l.cards = cards

	items := make([]components.MenuItem, len(cards))
	for i, c := range cards {
		items[i] = components.MenuItem{
			Label:    fmt.Sprintf("%2d. %s", i+1, c.Level.Name),
			Detail:   cardDetail(c),
			Disabled: !c.Unlocked,
			Action:   l.startAction(c.Level.ID),
		}
	}
	l.menu = components.NewMenu(items)
	if prev > 0 && prev < len(items) && !items[prev].Disabled {
		l.menu.Selected = prev
	}
}

func (l *LevelMapScreen) startAction(levelID string) func() tea.Cmd {
	return func() tea.Cmd {
		next := play.New(l.ctx, l.trainer, levelID)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func cardDetail(c campaign.LevelCard) string {
	switch {
	case !c.Unlocked:
		return "🔒 locked"
	case c.Mastered:
		return fmt.Sprintf("✓ best %.0f%%", c.Progress.BestAccuracy*100)
	case c.Progress.TimesPlayed > 0:
		return fmt.Sprintf("best %.0f%% / need %.0f%%", c.Progress.BestAccuracy*100, c.Threshold*100)
	default:
		return fmt.Sprintf("need %.0f%%", c.Threshold*100)
	}
}

func loginBanner(r trainer.LoginResult) string {
	if !r.FirstToday {
		return ""
	}
	total := 0
	for _, c := range r.Claims {
		if c.Err == nil {
			total += c.AmountAwarded
		}
	}
	if total == 0 {
		return fmt.Sprintf("Welcome back! Streak: %d days", r.Streak)
	}
	return fmt.Sprintf("Daily check-in: ◆ +%d   Streak: %d days", total, r.Streak)
}

func (l *LevelMapScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if !l.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading campaign..."))
	}
	if l.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load levels: "+l.errMsg))
	}

	var b strings.Builder
	if l.banner != "" {
		b.WriteString(center.Foreground(theme.Diamond).Bold(true).Render(l.banner))
		b.WriteString("\n\n")
	}

	mastered := 0
	for _, c := range l.cards {
		if c.Mastered {
			mastered++
		}
	}
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d levels cleared", mastered, len(l.cards))))
	b.WriteString("\n\n")

	menu := theme.Card.Render(strings.TrimRight(l.menu.View(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))
	return b.String()
}
