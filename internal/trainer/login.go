package trainer

import (
	"context"
	"fmt"

	"github.com/abhisek/drillz/internal/rewards"
)

// LoginResult reports the rewards of a daily check-in.
type LoginResult struct {
	FirstToday bool
	Streak     int
	Claims     []rewards.ClaimResult
	Summary    rewards.Summary
}

// DailyLogin records today's activity, claims the daily login reward and
// any streak milestones reached. Repeated calls on the same day replay
// the recorded claims.
func (t *Trainer) DailyLogin(ctx context.Context) (LoginResult, error) {
	var res LoginResult
	now := t.cfg.Now()

	first, err := t.cfg.Store.RecordActivity(ctx, t.cfg.UserID, now)
	if err != nil {
		return res, fmt.Errorf("%w: record activity: %w", rewards.ErrPersistenceUnavailable, err)
	}
	res.FirstToday = first

	cc := rewards.ClaimContext{Now: now}
	daily := t.service.ClaimWithRetry(ctx, t.cfg.UserID, rewards.KindDailyLogin, cc, t.cfg.Retry)
	res.Claims = append(res.Claims, daily)
	if daily.Err != nil {
		return res, daily.Err
	}
	res.Streak = daily.NewStreak
	res.Summary = daily.Summary

	for _, kind := range rewards.MilestonesReached(res.Streak) {
		cr := t.service.ClaimWithRetry(ctx, t.cfg.UserID, kind, cc, t.cfg.Retry)
		res.Claims = append(res.Claims, cr)
		if cr.Err != nil {
			return res, cr.Err
		}
		res.Summary = cr.Summary
	}
	return res, nil
}

// ClaimReferral awards the referral bonus for a referred user. Each
// referral reference pays once.
func (t *Trainer) ClaimReferral(ctx context.Context, referredUser string) rewards.ClaimResult {
	return t.service.ClaimWithRetry(ctx, t.cfg.UserID, rewards.KindReferral,
		rewards.ClaimContext{EventRef: referredUser, Now: t.cfg.Now()}, t.cfg.Retry)
}

// Summary returns the user's reward summary.
func (t *Trainer) Summary(ctx context.Context) (rewards.Summary, error) {
	return t.service.Summary(ctx, t.cfg.UserID, t.cfg.Now())
}

// ExportLedger snapshots the user's ledger for backup or audit.
func (t *Trainer) ExportLedger(ctx context.Context) (*rewards.Export, error) {
	return t.service.Export(ctx, t.cfg.UserID)
}
