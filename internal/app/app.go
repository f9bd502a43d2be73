package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/screens/levelmap"
	"github.com/abhisek/drillz/internal/screens/play"
	"github.com/abhisek/drillz/internal/screens/welcome"
	"github.com/abhisek/drillz/internal/trainer"
	"github.com/abhisek/drillz/internal/ui/layout"
)

// Options configures the interactive trainer.
type Options struct {
	Trainer *trainer.Trainer

	// LevelID, when set, opens straight into a drill for that level.
	LevelID string

	Logger *slog.Logger
}

// statsMsg carries fresh header balances.
type statsMsg struct {
	Stats layout.HeaderStats
	Err   error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx     context.Context
	trainer *trainer.Trainer
	log     *slog.Logger

	root   screen.Screen
	router *router.Router
	stats  layout.HeaderStats
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var root screen.Screen = levelmap.New(ctx, opts.Trainer)
	if opts.LevelID == "" {
		campaign := root
		root = welcome.New(func() screen.Screen { return campaign })
	}
	r := router.New(root)
	if opts.LevelID != "" {
		r.Push(play.New(ctx, opts.Trainer, opts.LevelID))
	}
	return AppModel{
		ctx:     ctx,
		trainer: opts.Trainer,
		log:     log,
		root:    root,
		router:  r,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshStats(), m.root.Init()}
	if m.router.Depth() > 1 {
		// Messages from the campaign's load land on the drill and are
		// dropped; the campaign reloads on resume.
		cmds = append(cmds, m.router.Active().Init())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) refreshStats() tea.Cmd {
	ctx, t := m.ctx, m.trainer
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		sum, err := t.Summary(ctx)
		if err != nil {
			return statsMsg{Err: err}
		}
		return statsMsg{Stats: layout.HeaderStats{
			Diamonds: sum.TotalLifetime,
			XP:       sum.TotalXP,
			Streak:   sum.CurrentStreakDays,
			Pending:  t.Pending(),
		}}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statsMsg:
		if msg.Err != nil {
			m.log.Warn("refresh header stats", "error", msg.Err)
			return m, nil
		}
		m.stats = msg.Stats
		return m, nil

	case screen.StatsChangedMsg:
		return m, m.refreshStats()

	case screen.ResumeMsg:
		return m, tea.Batch(m.refreshStats(), m.router.Update(msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if hp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = hp.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Trainer == nil {
		return fmt.Errorf("app: trainer is required")
	}
	m := newAppModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	if opts.Trainer.Pending() > 0 {
		settled, err := opts.Trainer.RetryPending(context.WithoutCancel(ctx))
		m.log.Info("settle pending sessions on exit", "settled", settled, "left", opts.Trainer.Pending())
		if err != nil {
			return fmt.Errorf("settle pending sessions: %w", err)
		}
	}
	return nil
}
