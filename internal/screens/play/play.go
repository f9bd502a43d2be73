package play

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/screens/summary"
	"github.com/abhisek/drillz/internal/trainer"
	"github.com/abhisek/drillz/internal/ui/components"
	"github.com/abhisek/drillz/internal/ui/layout"
	"github.com/abhisek/drillz/internal/ui/theme"
)

// AutoAdvanceDelay is how long a correct answer stays on screen.
const AutoAdvanceDelay = 900 * time.Millisecond

// Trainer is what the drill screen needs from the trainer.
type Trainer interface {
	StartLevel(ctx context.Context, levelID string) (*drill.Machine, error)
	Retry(ctx context.Context, prev *drill.Machine) (*drill.Machine, error)
	Finish(ctx context.Context, m *drill.Machine) (trainer.Completion, error)
	Settle(ctx context.Context, c trainer.Completion) trainer.Completion
}

// PlayScreen runs one drill session.
type PlayScreen struct {
	ctx     context.Context
	trainer Trainer
	start   func(ctx context.Context) (*drill.Machine, error)

	machine     *drill.Machine
	picker      components.ActionPicker
	spin        spinner.Model
	confirmQuit bool
	completing  bool
	errMsg      string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.BackHandler = (*PlayScreen)(nil)

// New returns a screen that starts levelID when initialized.
func New(ctx context.Context, t Trainer, levelID string) *PlayScreen {
	return &PlayScreen{
		ctx:     ctx,
		trainer: t,
		start: func(ctx context.Context) (*drill.Machine, error) {
			return t.StartLevel(ctx, levelID)
		},
		picker: components.NewActionPicker(),
		spin:   newSpinner(),
	}
}

// NewRetry returns a screen that replays prev's level, carrying over the
// hands already seen.
func NewRetry(ctx context.Context, t Trainer, prev *drill.Machine) *PlayScreen {
	return &PlayScreen{
		ctx:     ctx,
		trainer: t,
		start: func(ctx context.Context) (*drill.Machine, error) {
			return t.Retry(ctx, prev)
		},
		picker: components.NewActionPicker(),
		spin:   newSpinner(),
	}
}

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Diamond)),
	)
}

func (s *PlayScreen) Init() tea.Cmd {
	start := s.start
	ctx := s.ctx
	return tea.Batch(func() tea.Msg {
		m, err := start(ctx)
		return startedMsg{Machine: m, Err: err}
	}, s.spin.Tick)
}

// busy reports whether the spinner is on screen.
func (s *PlayScreen) busy() bool {
	return s.errMsg == "" && (s.machine == nil || s.completing)
}

func (s *PlayScreen) Title() string {
	if s.machine == nil {
		return "Drill"
	}
	return s.machine.State().Level.Name
}

// HandlesBack keeps Esc on this screen until the session is over.
func (s *PlayScreen) HandlesBack() bool {
	return s.errMsg == "" && s.machine != nil
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.machine == nil {
		return nil
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.machine.Phase() {
	case drill.PhasePlaying:
		return []layout.KeyHint{
			{Key: "F", Description: "Fold"},
			{Key: "C", Description: "Call"},
			{Key: "R", Description: "Raise"},
			{Key: "Esc", Description: "End"},
		}
	case drill.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next hand"},
			{Key: "Esc", Description: "End"},
		}
	}
	return nil
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.machine = msg.Machine
		return s, nil

	case spinner.TickMsg:
		if !s.busy() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case components.ActionChosenMsg:
		return s.submit(msg)

	case autoAdvanceMsg:
		if s.machine == nil || s.confirmQuit || s.machine.Phase() != drill.PhaseFeedback ||
			s.machine.State().HandIndex != msg.Hand {
			return s, nil
		}
		return s.advance(true)

	case completedMsg:
		return s.handleCompleted(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.machine == nil || s.completing {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			if s.machine.End() {
				return s, s.complete()
			}
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch s.machine.Phase() {
	case drill.PhasePlaying:
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return s, cmd
	case drill.PhaseFeedback:
		switch key {
		case "enter", "space", "n":
			return s.advance(false)
		}
	}
	return s, nil
}

func (s *PlayScreen) submit(msg components.ActionChosenMsg) (screen.Screen, tea.Cmd) {
	if s.machine == nil || s.confirmQuit {
		return s, nil
	}
	current := s.machine.State().Current
	if !s.machine.Submit(msg.Action) {
		return s, nil
	}
	s.picker = s.picker.Reveal(msg.Action, current.CorrectAction)

	st := s.machine.State()
	if st.LastCorrect {
		hand := st.HandIndex
		return s, tea.Tick(AutoAdvanceDelay, func(time.Time) tea.Msg {
			return autoAdvanceMsg{Hand: hand}
		})
	}
	return s, nil
}

func (s *PlayScreen) advance(auto bool) (screen.Screen, tea.Cmd) {
	if !s.machine.Next(auto) {
		return s, nil
	}
	if s.machine.Phase() == drill.PhaseSummary {
		return s, s.complete()
	}
	s.picker = components.NewActionPicker()
	return s, nil
}

func (s *PlayScreen) complete() tea.Cmd {
	s.completing = true
	m := s.machine
	t := s.trainer
	ctx := s.ctx
	return tea.Batch(func() tea.Msg {
		c, err := t.Finish(ctx, m)
		return completedMsg{Completion: c, Err: err}
	}, s.spin.Tick)
}

func (s *PlayScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	s.completing = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	ctx := s.ctx
	t := s.trainer
	prev := s.machine
	next := summary.New(msg.Completion, summary.Options{
		Retry: func() screen.Screen { return NewRetry(ctx, t, prev) },
		Settle: func(c trainer.Completion) trainer.Completion {
			return t.Settle(ctx, c)
		},
	})
	return s, tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
		func() tea.Msg { return screen.StatsChangedMsg{} },
	)
}
