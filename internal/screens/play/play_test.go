package play

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/rewards"
	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/scenario"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/screens/summary"
	"github.com/abhisek/drillz/internal/store"
	"github.com/abhisek/drillz/internal/trainer"
	"github.com/abhisek/drillz/internal/ui/components"
)

const sessionLength = 4

func newTestTrainer(t *testing.T) *trainer.Trainer {
	t.Helper()
	st, err := store.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return trainer.New(trainer.Config{
		UserID:        "hero",
		Store:         st,
		SessionLength: sessionLength,
		Now:           func() time.Time { return now },
		Seed:          func() uint64 { return 7 },
		Retry:         rewards.RetryConfig{MaxTries: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
	})
}

func startScreen(t *testing.T) (*PlayScreen, *trainer.Trainer) {
	t.Helper()
	tr := newTestTrainer(t)
	s := New(context.Background(), tr, tr.Levels()[0].ID)
	s.Update(msgOf[startedMsg](t, s.Init()))
	require.NotNil(t, s.machine)
	require.Equal(t, drill.PhasePlaying, s.machine.Phase())
	return s, tr
}

// msgOf runs cmd, descending into batches, and returns the first message
// of type T.
func msgOf[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if m, ok := c().(T); ok {
				return m
			}
		}
		var zero T
		t.Fatalf("no %T in batch", zero)
	}
	m, ok := msg.(T)
	require.True(t, ok, "unexpected message %T", msg)
	return m
}

func wrongAction(a scenario.Action) scenario.Action {
	return scenario.Action((int(a) + 1) % 3)
}

func TestPlayScreen_StartsLevel(t *testing.T) {
	s, tr := startScreen(t)
	assert.Equal(t, tr.Levels()[0].Name, s.Title())
	assert.True(t, s.HandlesBack())
	assert.Len(t, s.KeyHints(), 4)
	assert.NotEmpty(t, s.View(100, 30))
}

func TestPlayScreen_LockedLevelShowsError(t *testing.T) {
	tr := newTestTrainer(t)
	s := New(context.Background(), tr, tr.Levels()[2].ID)
	s.Update(msgOf[startedMsg](t, s.Init()))

	assert.Nil(t, s.machine)
	assert.False(t, s.HandlesBack())
	assert.Contains(t, s.View(100, 30), "locked")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestPlayScreen_CorrectAnswerAutoAdvances(t *testing.T) {
	s, _ := startScreen(t)
	correct := s.machine.State().Current.CorrectAction

	_, cmd := s.Update(components.ActionChosenMsg{Action: correct})
	require.NotNil(t, cmd)
	assert.Equal(t, drill.PhaseFeedback, s.machine.Phase())

	s.Update(autoAdvanceMsg{Hand: 0})
	assert.Equal(t, drill.PhasePlaying, s.machine.Phase())
	assert.Equal(t, 1, s.machine.State().HandIndex)
}

func TestPlayScreen_StaleAutoAdvanceIgnored(t *testing.T) {
	s, _ := startScreen(t)
	correct := s.machine.State().Current.CorrectAction
	s.Update(components.ActionChosenMsg{Action: correct})

	// Player already moved on manually.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, 1, s.machine.State().HandIndex)

	s.Update(autoAdvanceMsg{Hand: 0})
	assert.Equal(t, 1, s.machine.State().HandIndex)
	assert.Equal(t, drill.PhasePlaying, s.machine.Phase())
}

func TestPlayScreen_WrongAnswerWaitsForPlayer(t *testing.T) {
	s, _ := startScreen(t)
	current := s.machine.State().Current

	_, cmd := s.Update(components.ActionChosenMsg{Action: wrongAction(current.CorrectAction)})
	assert.Nil(t, cmd)
	assert.Equal(t, drill.PhaseFeedback, s.machine.Phase())
	assert.Len(t, s.KeyHints(), 2)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, drill.PhasePlaying, s.machine.Phase())
}

func TestPlayScreen_EscConfirmsBeforeEnding(t *testing.T) {
	s, _ := startScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.True(t, s.confirmQuit)

	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.False(t, s.confirmQuit)
	assert.Equal(t, drill.PhasePlaying, s.machine.Phase())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	assert.Equal(t, drill.PhaseSummary, s.machine.Phase())

	done := msgOf[completedMsg](t, cmd)
	require.NoError(t, done.Err)
	assert.True(t, done.Completion.Summary.EndedEarly)
	assert.False(t, done.Completion.Summary.Passed)
}

func TestPlayScreen_FullSessionReplacesWithSummary(t *testing.T) {
	s, _ := startScreen(t)

	var cmd tea.Cmd
	for s.machine.Phase() == drill.PhasePlaying {
		s.Update(components.ActionChosenMsg{Action: s.machine.State().Current.CorrectAction})
		_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	}
	require.Equal(t, drill.PhaseSummary, s.machine.Phase())
	require.NotNil(t, cmd)

	done := msgOf[completedMsg](t, cmd)
	require.NoError(t, done.Err)
	assert.True(t, done.Completion.Summary.Passed)
	assert.Equal(t, sessionLength, done.Completion.Summary.Correct)
	assert.True(t, done.Completion.Pending)
	assert.Nil(t, done.Completion.Unlocked)
	assert.Equal(t, done.Completion.Summary.TotalXP(), done.Completion.OptimisticXP)

	_, cmd = s.Update(done)
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	replace, ok := batch[0]().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &summary.SummaryScreen{}, replace.Screen)
	assert.IsType(t, screen.StatsChangedMsg{}, batch[1]())

	next := replace.Screen
	assert.Contains(t, next.View(100, 30), "pending")
	settle := next.Init()
	require.NotNil(t, settle)
	next, _ = next.Update(settle())
	view := next.View(100, 30)
	assert.Contains(t, view, "Confirmed  +")
	assert.Contains(t, view, "Unlocked")
	assert.NotContains(t, view, "pending ⟳")
}

type failingTrainer struct {
	*trainer.Trainer
}

func (failingTrainer) Finish(context.Context, *drill.Machine) (trainer.Completion, error) {
	return trainer.Completion{}, errors.New("session not finished")
}

func TestPlayScreen_SpinnerOnlyWhileBusy(t *testing.T) {
	s, _ := startScreen(t)
	_, cmd := s.Update(s.spin.Tick())
	assert.Nil(t, cmd)
}

func TestPlayScreen_CompleteErrorIsShown(t *testing.T) {
	tr := newTestTrainer(t)
	s := New(context.Background(), failingTrainer{tr}, tr.Levels()[0].ID)
	s.Update(msgOf[startedMsg](t, s.Init()))

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	s.Update(msgOf[completedMsg](t, cmd))

	assert.Contains(t, s.View(100, 30), "session not finished")
	assert.False(t, s.HandlesBack())
}
