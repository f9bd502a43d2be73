package levelmap

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/rewards"
	"github.com/abhisek/drillz/internal/router"
	"github.com/abhisek/drillz/internal/screen"
	"github.com/abhisek/drillz/internal/screens/play"
	"github.com/abhisek/drillz/internal/trainer"
)

type fakeTrainer struct {
	cards     []campaign.LevelCard
	cardsErr  error
	login     trainer.LoginResult
	loadCalls int
}

func (f *fakeTrainer) StartLevel(context.Context, string) (*drill.Machine, error) {
	return nil, errors.New("not used")
}

func (f *fakeTrainer) Retry(context.Context, *drill.Machine) (*drill.Machine, error) {
	return nil, errors.New("not used")
}

func (f *fakeTrainer) Finish(context.Context, *drill.Machine) (trainer.Completion, error) {
	return trainer.Completion{}, nil
}

func (f *fakeTrainer) Settle(_ context.Context, c trainer.Completion) trainer.Completion { return c }

func (f *fakeTrainer) LevelCards(context.Context) ([]campaign.LevelCard, error) {
	f.loadCalls++
	return f.cards, f.cardsErr
}

func (f *fakeTrainer) DailyLogin(context.Context) (trainer.LoginResult, error) {
	return f.login, nil
}

func testCards() []campaign.LevelCard {
	return []campaign.LevelCard{
		{
			Level:     campaign.Level{ID: "l0", Name: "Button Opens"},
			Progress:  campaign.LevelProgress{BestAccuracy: 0.9, TimesPlayed: 2, IsUnlocked: true},
			Threshold: 0.85, Unlocked: true, Mastered: true,
		},
		{
			Level:     campaign.Level{ID: "l1", Name: "Cutoff Opens"},
			Threshold: 0.85, Unlocked: true,
		},
		{
			Level:     campaign.Level{ID: "l2", Name: "Facing 3-Bets"},
			Threshold: 0.9,
		},
	}
}

// drain runs cmd and feeds every resulting message back into the screen.
func drain(t *testing.T, s screen.Screen, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		return s
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			s = drain(t, s, c)
		}
		return s
	}
	s, _ = s.Update(msg)
	return s
}

func TestLevelMap_LoadsCardsAndBanner(t *testing.T) {
	ft := &fakeTrainer{
		cards: testCards(),
		login: trainer.LoginResult{
			FirstToday: true,
			Streak:     3,
			Claims:     []rewards.ClaimResult{{Success: true, AmountAwarded: 10}},
		},
	}
	s := New(context.Background(), ft)
	drain(t, s, s.Init())

	require.True(t, s.loaded)
	assert.Len(t, s.menu.Items, 3)
	assert.True(t, s.menu.Items[2].Disabled)

	view := s.View(100, 30)
	assert.Contains(t, view, "Daily check-in: ◆ +10")
	assert.Contains(t, view, "1 of 3 levels cleared")
	assert.Contains(t, view, "locked")
}

func TestLevelMap_LoadError(t *testing.T) {
	ft := &fakeTrainer{cardsErr: errors.New("disk full")}
	s := New(context.Background(), ft)
	s.Update(cardsLoadedMsg{Err: ft.cardsErr})
	assert.Contains(t, s.View(80, 20), "disk full")
}

func TestLevelMap_EnterPushesPlay(t *testing.T) {
	s := New(context.Background(), &fakeTrainer{})
	s.Update(cardsLoadedMsg{Cards: testCards()})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &play.PlayScreen{}, msg.Screen)
}

func TestLevelMap_LockedLevelsAreSkipped(t *testing.T) {
	s := New(context.Background(), &fakeTrainer{})
	s.Update(cardsLoadedMsg{Cards: testCards()})

	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, 1, s.menu.Selected)
}

func TestLevelMap_ResumeReloads(t *testing.T) {
	ft := &fakeTrainer{cards: testCards()}
	s := New(context.Background(), ft)
	_, cmd := s.Update(screen.ResumeMsg{})
	drain(t, s, cmd)
	assert.Equal(t, 1, ft.loadCalls)
	assert.True(t, s.loaded)
}

func TestLevelMap_RepeatLoginHasNoBanner(t *testing.T) {
	assert.Empty(t, loginBanner(trainer.LoginResult{FirstToday: false, Streak: 4}))
	assert.Equal(t, "Welcome back! Streak: 4 days", loginBanner(trainer.LoginResult{FirstToday: true, Streak: 4}))
}
