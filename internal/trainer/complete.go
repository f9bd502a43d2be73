package trainer

import (
	"context"
	"errors"
	"slices"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/rewards"
	"github.com/abhisek/drillz/internal/store"
)

// Completion is what the summary screen shows. The optimistic figures
// come from the local summary; the confirmed ones from the ledger.
type Completion struct {
	Outcome drill.Outcome
	Summary drill.Summary

	OptimisticXP      int
	ConfirmedXP       int
	ConfirmedDiamonds int

	// Pending is set until reconciliation has fully landed. The outcome
	// stays queued for RetryPending meanwhile.
	Pending bool

	// Err is the last reconciliation failure while Pending.
	Err error

	Unlocked *campaign.Level
	Claims   []rewards.ClaimResult

	// Leaks is computed over the user's recent history, not just this
	// session.
	Leaks []drill.Leak
}

// Finish takes the outcome from a machine in SUMMARY and returns the
// optimistic completion without touching the ledger. The outcome is
// queued for reconciliation; call Settle to confirm it. Each machine is
// finished once; later calls return ErrSessionNotFinished.
func (t *Trainer) Finish(ctx context.Context, m *drill.Machine) (Completion, error) {
	out, ok := m.TakeOutcome()
	if !ok {
		return Completion{}, ErrSessionNotFinished
	}

	c := Completion{
		Outcome: out,
		Summary: out.Summary,
		Pending: true,
	}
	if out.Summary.Passed {
		c.OptimisticXP = out.Summary.TotalXP()
	}

	t.recordEvent(ctx, store.SessionEventData{
		SessionID: out.SessionID,
		UserID:    t.cfg.UserID,
		LevelID:   out.Level.ID,
		Action:    store.SessionActionEnd,
		Answered:  out.Summary.Answered,
		Correct:   out.Summary.Correct,
		Accuracy:  out.Summary.Accuracy,
		Passed:    out.Summary.Passed,
		Duration:  out.Summary.Duration,
		Results:   out.Results,
	})
	c.Leaks = t.recentLeaks(ctx, out.Results)

	t.enqueue(rewards.SessionOutcome{UserID: t.cfg.UserID, Outcome: out})
	return c, nil
}

// Settle reconciles c's session under the reward timeout and returns c
// with the confirmed figures filled in. Settling an already settled
// session replays the recorded claims.
func (t *Trainer) Settle(ctx context.Context, c Completion) Completion {
	so := rewards.SessionOutcome{UserID: t.cfg.UserID, Outcome: c.Outcome}
	res, err := t.reconcile(ctx, so)
	if err != nil {
		t.enqueue(so)
		t.log.Warn("session reconciliation deferred", "session", so.SessionID, "err", err)
		c.Pending = true
		c.Err = err
		return c
	}

	c.ConfirmedXP = res.ConfirmedXP
	c.ConfirmedDiamonds = res.ConfirmedDiamonds
	c.Unlocked = res.Unlocked
	c.Claims = res.Claims
	c.Pending = res.Pending
	c.Err = res.Err
	if res.Pending {
		t.enqueue(so)
	} else {
		t.dequeue(so.SessionID)
	}
	return c
}

// Complete finishes and settles a session in one call.
func (t *Trainer) Complete(ctx context.Context, m *drill.Machine) (Completion, error) {
	c, err := t.Finish(ctx, m)
	if err != nil {
		return c, err
	}
	return t.Settle(ctx, c), nil
}

func (t *Trainer) reconcile(ctx context.Context, so rewards.SessionOutcome) (rewards.ReconcileResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.RewardTimeout)
	defer cancel()
	return t.reconciler.ReconcileSession(ctx, so)
}

func (t *Trainer) recentLeaks(ctx context.Context, session []drill.Result) []drill.Leak {
	history, err := t.cfg.Store.RecentResults(ctx, t.cfg.UserID, leakHistory)
	if err != nil || len(history) == 0 {
		if err != nil {
			t.log.Warn("failed to read answer history", "err", err)
		}
		history = session
	}
	return drill.DetectLeaks(history)
}

func (t *Trainer) enqueue(so rewards.SessionOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.pending {
		if p.SessionID == so.SessionID {
			return
		}
	}
	t.pending = append(t.pending, so)
}

func (t *Trainer) dequeue(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = slices.DeleteFunc(t.pending, func(p rewards.SessionOutcome) bool {
		return p.SessionID == sessionID
	})
}

// Pending returns the number of sessions awaiting reconciliation.
func (t *Trainer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// RetryPending re-runs reconciliation for queued sessions. Claim ids are
// derived from the session, so nothing is awarded twice. It returns the
// number of sessions that settled.
func (t *Trainer) RetryPending(ctx context.Context) (int, error) {
	t.mu.Lock()
	queue := slices.Clone(t.pending)
	t.mu.Unlock()

	settled := 0
	var errs error
	for _, so := range queue {
		c := t.Settle(ctx, Completion{Outcome: so.Outcome})
		if c.Pending {
			errs = errors.Join(errs, c.Err)
			continue
		}
		settled++
	}
	return settled, errs
}
