package rewards

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, ledger Ledger, streak int, extra ...Definition) *Service {
	t.Helper()
	cat := DefaultCatalog()
	if len(extra) > 0 {
		var err error
		cat, err = NewCatalog(append(defaultDefinitions(), extra...))
		require.NoError(t, err)
	}
	return NewService(ServiceConfig{
		Catalog: cat,
		Ledger:  ledger,
		Streaks: staticStreak{days: streak},
		Now:     func() time.Time { return now },
	})
}

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 1.0}, {1, 1.0}, {3, 1.0}, {4, 1.5}, {5, 1.5}, {6, 1.5}, {7, 2.0}, {10, 2.0}, {365, 2.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StreakMultiplier(tt.days), "days=%d", tt.days)
	}
}

func TestScaleAmount(t *testing.T) {
	assert.Equal(t, 38, ScaleAmount(25, 1.5, 0))
	assert.Equal(t, MinAward, ScaleAmount(2, 1.0, 0))
	assert.Equal(t, 0, ScaleAmount(0, 2.0, 0))
	assert.Equal(t, 100, ScaleAmount(80, 2.0, 100))
}

func TestDailyLoginBase(t *testing.T) {
	assert.Equal(t, 5, DailyLoginBase(0))
	assert.Equal(t, 5, DailyLoginBase(1))
	assert.Equal(t, 12, DailyLoginBase(2))
	assert.Equal(t, 47, DailyLoginBase(7))
	assert.Equal(t, 50, DailyLoginBase(8))
}

func TestClaim_Idempotent(t *testing.T) {
	ledger := &memLedger{}
	svc := newTestService(t, ledger, 5)
	cc := ClaimContext{LevelID: "l04", SessionID: "sess-1"}

	first := svc.Claim(context.Background(), "u1", KindLevelComplete, cc)
	require.NoError(t, first.Err)
	require.True(t, first.Success)
	assert.Equal(t, 38, first.AmountAwarded) // 25 × 1.5
	assert.False(t, first.Replayed)
	require.NotNil(t, first.Celebration)
	assert.Equal(t, RarityUncommon, first.Celebration.Rarity)

	second := svc.Claim(context.Background(), "u1", KindLevelComplete, cc)
	require.NoError(t, second.Err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.AmountAwarded, second.AmountAwarded)
	assert.Equal(t, first.ClaimID, second.ClaimID)
	assert.Equal(t, 1, ledger.count(KindLevelComplete))
	assert.Equal(t, 38, second.Summary.TotalLifetime)
}

func TestClaim_DailyCap(t *testing.T) {
	ledger := &memLedger{rows: []ClaimRecord{{
		ClaimID: "seed", UserID: "u1", Kind: KindLevelComplete, Currency: CurrencyDiamonds,
		Amount: 480, ClaimedAt: now.Add(-time.Hour),
	}}}
	sixty := Definition{ID: "test_sixty", Name: "Sixty", BaseAmount: 60, Scope: ScopeEvent}
	svc := newTestService(t, ledger, 1, sixty)

	capped := svc.Claim(context.Background(), "u1", "test_sixty", ClaimContext{EventRef: "e1"})
	require.NoError(t, capped.Err)
	assert.Equal(t, 20, capped.AmountAwarded)
	assert.False(t, capped.BypassedCap)
	assert.Equal(t, 0, capped.Summary.RemainingCapToday)

	exhausted := svc.Claim(context.Background(), "u1", "test_sixty", ClaimContext{EventRef: "e2"})
	require.NoError(t, exhausted.Err)
	assert.True(t, exhausted.Success, "cap exhaustion is not an error")
	assert.Equal(t, 0, exhausted.AmountAwarded)
	assert.Nil(t, exhausted.Celebration)

	referral := svc.Claim(context.Background(), "u1", KindReferral, ClaimContext{EventRef: "friend-1"})
	require.NoError(t, referral.Err)
	assert.Equal(t, 100, referral.AmountAwarded)
	assert.True(t, referral.BypassedCap)
}

func TestClaim_YesterdayDoesNotCountTowardCap(t *testing.T) {
	ledger := &memLedger{rows: []ClaimRecord{{
		ClaimID: "old", UserID: "u1", Currency: CurrencyDiamonds, Amount: 500,
		ClaimedAt: now.AddDate(0, 0, -1),
	}}}
	svc := newTestService(t, ledger, 1)
	res := svc.Claim(context.Background(), "u1", KindFirstTraining, ClaimContext{})
	require.NoError(t, res.Err)
	assert.Equal(t, 10, res.AmountAwarded)
}

func TestClaim_XPIgnoresMultiplierAndCap(t *testing.T) {
	ledger := &memLedger{rows: []ClaimRecord{{
		ClaimID: "seed", UserID: "u1", Currency: CurrencyDiamonds, Amount: 500, ClaimedAt: now,
	}}}
	svc := newTestService(t, ledger, 10)
	res := svc.Claim(context.Background(), "u1", KindSessionXP, ClaimContext{SessionID: "s", Amount: 285})
	require.NoError(t, res.Err)
	assert.Equal(t, 285, res.AmountAwarded)
	assert.Equal(t, 285, res.Summary.TotalXP)
	assert.Nil(t, res.Celebration)
}

func TestClaim_Errors(t *testing.T) {
	svc := newTestService(t, &memLedger{}, 1)

	res := svc.Claim(context.Background(), "u1", "nope", ClaimContext{})
	assert.ErrorIs(t, res.Err, ErrUnknownRewardKind)
	assert.False(t, res.Success)

	res = svc.Claim(context.Background(), "u1", KindLevelComplete, ClaimContext{})
	assert.ErrorIs(t, res.Err, ErrInvalidClaimContext)

	down := newTestService(t, &memLedger{failFor: 100}, 1)
	res = down.Claim(context.Background(), "u1", KindFirstTraining, ClaimContext{})
	assert.ErrorIs(t, res.Err, ErrPersistenceUnavailable)
	assert.True(t, errors.Is(res.Err, errStoreDown))
	assert.False(t, res.Success)
}

func TestClaimID_Scopes(t *testing.T) {
	def, _ := DefaultCatalog().Lookup(KindFirstTraining)
	a, err := ClaimID("u1", def, ClaimContext{}, now)
	require.NoError(t, err)
	b, _ := ClaimID("u1", def, ClaimContext{}, now.Add(time.Hour))
	c, _ := ClaimID("u1", def, ClaimContext{}, now.AddDate(0, 0, 1))
	d, _ := ClaimID("u2", def, ClaimContext{}, now)
	assert.Equal(t, a, b, "same UTC day")
	assert.NotEqual(t, a, c, "next day")
	assert.NotEqual(t, a, d, "other user")
}

func TestClaimWithRetry_RecoversWithSameID(t *testing.T) {
	ledger := &memLedger{failFor: 2}
	svc := newTestService(t, ledger, 1)
	cfg := RetryConfig{MaxTries: 5, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

	res := svc.ClaimWithRetry(context.Background(), "u1", KindReferral, ClaimContext{EventRef: "f"}, cfg)
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, ledger.count(KindReferral))
}

func TestClaimWithRetry_PermanentErrorStops(t *testing.T) {
	svc := newTestService(t, &memLedger{}, 1)
	cfg := RetryConfig{MaxTries: 5, InitialInterval: time.Hour, MaxInterval: time.Hour}
	res := svc.ClaimWithRetry(context.Background(), "u1", "nope", ClaimContext{}, cfg)
	assert.ErrorIs(t, res.Err, ErrUnknownRewardKind)
}

func TestRollJackpot(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	hits := 0
	for i := 0; i < 100000; i++ {
		if RollJackpot(r) {
			hits++
		}
	}
	assert.InDelta(t, 100, hits, 50)

	a := RollJackpot(rand.New(rand.NewPCG(5, 6)))
	b := RollJackpot(rand.New(rand.NewPCG(5, 6)))
	assert.Equal(t, a, b)
}

func TestMilestonesReached(t *testing.T) {
	assert.Empty(t, MilestonesReached(6))
	assert.Equal(t, []Kind{KindLoyaltyLock}, MilestonesReached(7))
	assert.Equal(t, []Kind{KindLoyaltyLock, KindHalfCentury, KindCenturion}, MilestonesReached(120))
}
