package rewards

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/drill"
)

func outcome(level campaign.Level, sessionID string, correct int) SessionOutcome {
	results := make([]drill.Result, drill.SessionLength)
	for i := range results {
		results[i] = drill.Result{ScenarioKey: "k", Correct: i < correct, ResponseTimeMs: 3000}
	}
	return SessionOutcome{
		UserID: "u1",
		Outcome: drill.Outcome{
			SessionID: sessionID,
			Level:     level,
			Summary:   drill.Summary{SessionLength: drill.SessionLength},
			Results:   results,
			EndedAt:   now,
		},
	}
}

func newTestReconciler(t *testing.T, ledger *memLedger, progress *memProgress) *Reconciler {
	t.Helper()
	return NewReconciler(ReconcilerConfig{
		Service:  newTestService(t, ledger, 1),
		Progress: progress,
		Levels:   campaign.Campaign(),
		Retry:    RetryConfig{MaxTries: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
	})
}

func TestReconcileSession_PassUnlocksNext(t *testing.T) {
	levels := campaign.Campaign()
	l3, l4 := levels[3], levels[4]
	ledger := &memLedger{}
	progress := &memProgress{recs: map[string]campaign.LevelProgress{
		levels[2].ID: {BestAccuracy: 0.9, IsUnlocked: true},
	}}
	rec := newTestReconciler(t, ledger, progress)

	res, err := rec.ReconcileSession(context.Background(), outcome(l3, "sess-a", 19))
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.InDelta(t, 0.95, res.Accuracy, 1e-9)
	require.NotNil(t, res.Unlocked)
	assert.Equal(t, l4.ID, res.Unlocked.ID)
	assert.False(t, res.Pending)
	assert.Equal(t, 19*10+drill.PassBonusXP, res.ConfirmedXP)
	assert.Equal(t, 1, ledger.count(KindLevelComplete))
	assert.Equal(t, 1, ledger.count(KindNewLevelUnlocked))
	assert.Zero(t, ledger.count(KindPerfectScore))

	stored, _ := progress.ReadProgress(context.Background(), "u1")
	assert.InDelta(t, 0.95, stored[l3.ID].BestAccuracy, 1e-9)
	cards := campaign.ComputeLevelCards(levels, stored)
	assert.True(t, cards[4].Unlocked)

	// Replaying the same outcome changes nothing.
	again, err := rec.ReconcileSession(context.Background(), outcome(l3, "sess-a", 19))
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.count(KindLevelComplete))
	assert.Equal(t, res.ConfirmedXP, again.ConfirmedXP)
	assert.Equal(t, 1, progress.recs[l3.ID].TimesPlayed)

	// A worse later attempt keeps the best accuracy.
	_, err = rec.ReconcileSession(context.Background(), outcome(l3, "sess-b", 10))
	require.NoError(t, err)
	assert.InDelta(t, 0.95, progress.recs[l3.ID].BestAccuracy, 1e-9)
	assert.Equal(t, 2, progress.recs[l3.ID].TimesPlayed)
	assert.Equal(t, 1, ledger.count(KindLevelComplete))
}

func TestReconcileSession_FailWritesProgressOnly(t *testing.T) {
	ledger := &memLedger{}
	progress := &memProgress{}
	rec := newTestReconciler(t, ledger, progress)
	l0 := campaign.Campaign()[0]

	res, err := rec.ReconcileSession(context.Background(), outcome(l0, "s", 10))
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Nil(t, res.Unlocked)
	assert.Empty(t, res.Claims)
	assert.Empty(t, ledger.rows)
	assert.Equal(t, 1, progress.recs[l0.ID].TimesPlayed)
	assert.False(t, progress.recs[l0.ID].IsUnlocked)
}

func TestReconcileSession_PerfectScore(t *testing.T) {
	ledger := &memLedger{}
	rec := newTestReconciler(t, ledger, &memProgress{})
	res, err := rec.ReconcileSession(context.Background(), outcome(campaign.Campaign()[0], "p", 20))
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.count(KindPerfectScore))
	assert.Positive(t, res.ConfirmedDiamonds)
}

func TestReconcileSession_ProgressStoreDown(t *testing.T) {
	rec := newTestReconciler(t, &memLedger{}, &memProgress{fail: true})
	_, err := rec.ReconcileSession(context.Background(), outcome(campaign.Campaign()[0], "s", 20))
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
}

func TestReconcileSession_LedgerDownIsPending(t *testing.T) {
	ledger := &memLedger{failFor: 1000}
	rec := newTestReconciler(t, ledger, &memProgress{})
	res, err := rec.ReconcileSession(context.Background(), outcome(campaign.Campaign()[0], "s", 20))
	require.NoError(t, err)
	assert.True(t, res.Pending)
	assert.ErrorIs(t, res.Err, ErrPersistenceUnavailable)
	assert.Zero(t, res.ConfirmedXP)
	assert.True(t, res.Passed, "session facts survive reward failures")
}

func TestReconcileSession_RetryAfterLedgerOutageClaimsUnlock(t *testing.T) {
	levels := campaign.Campaign()
	ledger := &memLedger{failFor: 1000}
	progress := &memProgress{}
	rec := newTestReconciler(t, ledger, progress)

	first, err := rec.ReconcileSession(context.Background(), outcome(levels[0], "s", 19))
	require.NoError(t, err)
	assert.True(t, first.Pending)
	require.NotNil(t, first.Unlocked)
	assert.Zero(t, ledger.count(KindNewLevelUnlocked))
	assert.True(t, campaign.IsPlayable(levels, progress.recs, levels[1].ID))

	ledger.failFor = 0
	retry, err := rec.ReconcileSession(context.Background(), outcome(levels[0], "s", 19))
	require.NoError(t, err)
	assert.False(t, retry.Pending)
	require.NotNil(t, retry.Unlocked)
	assert.Equal(t, levels[1].ID, retry.Unlocked.ID)
	assert.Equal(t, 1, ledger.count(KindNewLevelUnlocked))
	unlockPaid := false
	for _, cr := range retry.Claims {
		if cr.Kind == KindNewLevelUnlocked {
			unlockPaid = cr.Success && cr.AmountAwarded > 0
		}
	}
	assert.True(t, unlockPaid)
	assert.Positive(t, retry.ConfirmedDiamonds)

	// Settling the same session again reports the same result.
	again, err := rec.ReconcileSession(context.Background(), outcome(levels[0], "s", 19))
	require.NoError(t, err)
	require.NotNil(t, again.Unlocked)
	assert.Equal(t, retry.ConfirmedDiamonds, again.ConfirmedDiamonds)

	// A later pass in another session neither re-unlocks nor re-pays.
	later, err := rec.ReconcileSession(context.Background(), outcome(levels[0], "s2", 20))
	require.NoError(t, err)
	assert.Nil(t, later.Unlocked)
	assert.Equal(t, 1, ledger.count(KindNewLevelUnlocked))
	for _, cr := range later.Claims {
		assert.NotEqual(t, KindNewLevelUnlocked, cr.Kind)
	}
}
