// Package trainer ties the campaign, the drill machine and the reward
// economy together for a single user.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/rewards"
	"github.com/abhisek/drillz/internal/scenario"
	"github.com/abhisek/drillz/internal/store"
)

var (
	// ErrLevelLocked is returned when starting a level whose predecessor
	// has not been passed.
	ErrLevelLocked = errors.New("level is locked")

	// ErrSessionNotFinished is returned when completing a machine that is
	// not in the summary phase or was already completed.
	ErrSessionNotFinished = errors.New("session not finished")
)

// leakHistory is the number of recent answers leak detection looks at.
const leakHistory = 50

// Store is the persistence the trainer needs. *store.Store implements it.
type Store interface {
	rewards.ProgressStore
	rewards.Ledger
	rewards.StreakSource
	store.EventRepo

	RecordActivity(ctx context.Context, userID string, now time.Time) (bool, error)
	RecentResults(ctx context.Context, userID string, limit int) ([]drill.Result, error)
}

// Config configures a Trainer.
type Config struct {
	UserID  string
	Store   Store
	Content scenario.Source
	Levels  []campaign.Level

	DailyCap int

	// RewardTimeout bounds each reconciliation attempt.
	RewardTimeout time.Duration
	Retry         rewards.RetryConfig

	SessionLength int
	Logger        *slog.Logger
	Now           func() time.Time
	Seed          func() uint64
}

// Trainer runs drills and settles their rewards for one user.
type Trainer struct {
	cfg        Config
	levels     []campaign.Level
	service    *rewards.Service
	reconciler *rewards.Reconciler
	log        *slog.Logger

	mu      sync.Mutex
	pending []rewards.SessionOutcome
}

// New creates a Trainer. Missing levels default to the built-in campaign
// and missing content to the built-in library.
func New(cfg Config) *Trainer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = campaign.Campaign()
	}
	if cfg.Content == nil {
		cfg.Content = scenario.BuiltinLibrary()
	}
	if cfg.RewardTimeout <= 0 {
		cfg.RewardTimeout = 5 * time.Second
	}
	if cfg.Retry.MaxTries == 0 {
		cfg.Retry = rewards.DefaultRetryConfig()
	}

	svc := rewards.NewService(rewards.ServiceConfig{
		Ledger:   cfg.Store,
		Streaks:  cfg.Store,
		DailyCap: cfg.DailyCap,
		Logger:   cfg.Logger,
		Now:      cfg.Now,
	})
	return &Trainer{
		cfg:     cfg,
		levels:  campaign.SortLevels(cfg.Levels),
		service: svc,
		reconciler: rewards.NewReconciler(rewards.ReconcilerConfig{
			Service:  svc,
			Progress: cfg.Store,
			Levels:   cfg.Levels,
			Retry:    cfg.Retry,
			Logger:   cfg.Logger,
		}),
		log: cfg.Logger,
	}
}

// UserID returns the user this trainer acts for.
func (t *Trainer) UserID() string { return t.cfg.UserID }

// Levels returns the campaign in play order.
func (t *Trainer) Levels() []campaign.Level { return t.levels }

// Rewards returns the underlying reward service.
func (t *Trainer) Rewards() *rewards.Service { return t.service }

// LevelCards reads the user's progress and resolves lock state.
func (t *Trainer) LevelCards(ctx context.Context) ([]campaign.LevelCard, error) {
	progress, err := t.cfg.Store.ReadProgress(ctx, t.cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return campaign.ComputeLevelCards(t.levels, progress), nil
}

// StartLevel loads the level's deck and returns a machine in PLAYING.
func (t *Trainer) StartLevel(ctx context.Context, levelID string) (*drill.Machine, error) {
	level, ok := campaign.LevelByID(t.levels, levelID)
	if !ok {
		return nil, fmt.Errorf("%w: level %q", scenario.ErrContentNotFound, levelID)
	}
	progress, err := t.cfg.Store.ReadProgress(ctx, t.cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	if !campaign.IsPlayable(t.levels, progress, levelID) {
		return nil, fmt.Errorf("%w: %s", ErrLevelLocked, levelID)
	}

	m := drill.NewMachine(level, t.machineConfig())
	if err := m.Start(ctx, t.cfg.Content); err != nil {
		return nil, err
	}
	t.recordEvent(ctx, store.SessionEventData{
		SessionID: m.SessionID(),
		UserID:    t.cfg.UserID,
		LevelID:   level.ID,
		Action:    store.SessionActionStart,
	})
	return m, nil
}

// Retry starts a fresh session on the same level, carrying over the keys
// already seen.
func (t *Trainer) Retry(ctx context.Context, prev *drill.Machine) (*drill.Machine, error) {
	m := prev.Retry()
	if err := m.Start(ctx, t.cfg.Content); err != nil {
		return nil, err
	}
	t.recordEvent(ctx, store.SessionEventData{
		SessionID: m.SessionID(),
		UserID:    t.cfg.UserID,
		LevelID:   m.State().Level.ID,
		Action:    store.SessionActionStart,
	})
	return m, nil
}

func (t *Trainer) machineConfig() drill.Config {
	return drill.Config{
		Length: t.cfg.SessionLength,
		Logger: t.log,
		Now:    t.cfg.Now,
		Seed:   t.cfg.Seed,
	}
}

func (t *Trainer) recordEvent(ctx context.Context, data store.SessionEventData) {
	if err := t.cfg.Store.AppendSessionEvent(ctx, data); err != nil {
		t.log.Warn("failed to record session event", "session", data.SessionID, "action", data.Action, "err", err)
	}
}
