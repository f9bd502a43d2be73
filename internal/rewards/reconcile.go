package rewards

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/drill"
)

// SessionOutcome is a finished session submitted for reconciliation.
type SessionOutcome struct {
	UserID string
	drill.Outcome
}

// ReconcileResult reports what reconciliation confirmed. Session facts
// (the drill summary) are never changed by it.
type ReconcileResult struct {
	Progress campaign.LevelProgress

	Accuracy float64
	Passed   bool

	// Unlocked is the level this session unlocked for the first time. It
	// is reported again when the same session is reconciled a second time.
	Unlocked *campaign.Level

	Claims            []ClaimResult
	ConfirmedXP       int
	ConfirmedDiamonds int

	// Pending is set when any claim could not be recorded. Re-running
	// reconciliation for the same outcome is safe.
	Pending bool
	Err     error
}

// ReconcilerConfig configures a Reconciler.
type ReconcilerConfig struct {
	Service  *Service
	Progress ProgressStore
	Levels   []campaign.Level
	Retry    RetryConfig
	Logger   *slog.Logger
}

// Reconciler turns finished sessions into progress updates and reward
// claims.
type Reconciler struct {
	svc      *Service
	progress ProgressStore
	levels   []campaign.Level
	retry    RetryConfig
	log      *slog.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(cfg ReconcilerConfig) *Reconciler {
	r := &Reconciler{
		svc:      cfg.Service,
		progress: cfg.Progress,
		levels:   campaign.SortLevels(cfg.Levels),
		retry:    cfg.Retry,
		log:      cfg.Logger,
	}
	if r.retry.MaxTries == 0 {
		r.retry = DefaultRetryConfig()
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// ReconcileSession records a finished session. Accuracy and XP are
// recomputed from the raw results. The progress record is written for
// every finished session; reward claims are made only when it passed.
func (r *Reconciler) ReconcileSession(ctx context.Context, out SessionOutcome) (ReconcileResult, error) {
	var res ReconcileResult

	level := out.Level
	length := out.Summary.SessionLength
	if length <= 0 {
		length = drill.SessionLength
	}
	correct := 0
	for _, rr := range out.Results {
		if rr.Correct {
			correct++
		}
	}
	res.Accuracy = float64(min(correct, length)) / float64(length)
	res.Passed = res.Accuracy >= campaign.Threshold(level.DifficultyIndex)

	before, err := r.progress.ReadProgress(ctx, out.UserID)
	if err != nil {
		return res, unavailable("read progress", err)
	}
	wasUnlocked := false
	next, hasNext := campaign.NextLevel(r.levels, level.ID)
	if hasNext {
		wasUnlocked = campaign.IsPlayable(r.levels, before, next.ID)
	}

	update := campaign.LevelProgress{
		BestAccuracy:  res.Accuracy,
		IsUnlocked:    res.Passed,
		TimesPlayed:   1,
		LastPlayedAt:  out.EndedAt,
		LastSessionID: out.SessionID,
	}
	if err := r.progress.WriteProgress(ctx, out.UserID, level.ID, update); err != nil {
		return res, unavailable("write progress", err)
	}
	res.Progress = campaign.MergeProgress(before[level.ID], update)

	if !res.Passed {
		return res, nil
	}
	if hasNext && !wasUnlocked {
		res.Unlocked = &next
	}

	cc := ClaimContext{LevelID: level.ID, SessionID: out.SessionID, Now: out.EndedAt}
	claim := func(kind Kind, cc ClaimContext) ClaimResult {
		cr := r.svc.ClaimWithRetry(ctx, out.UserID, kind, cc, r.retry)
		if cr.Replayed && cr.SessionID != out.SessionID {
			// Earned by another session; nothing new to confirm here.
			return cr
		}
		res.Claims = append(res.Claims, cr)
		if cr.Err != nil {
			res.Pending = true
			res.Err = errors.Join(res.Err, fmt.Errorf("claim %s: %w", kind, cr.Err))
			return cr
		}
		switch cr.Currency {
		case CurrencyXP:
			res.ConfirmedXP += cr.AmountAwarded
		case CurrencyDiamonds:
			res.ConfirmedDiamonds += cr.AmountAwarded
		}
		return cr
	}

	xp := cc
	xp.Amount = drill.ScoreResults(out.Results) + drill.PassBonusXP
	claim(KindSessionXP, xp)
	claim(KindFirstTraining, cc)
	claim(KindLevelComplete, cc)
	if correct >= length {
		claim(KindPerfectScore, cc)
	}
	// Progress may already carry the unlock from an earlier attempt at this
	// session, so the claim is made on every pass. Its level scope keeps it
	// to one award per level.
	if hasNext {
		unlock := cc
		unlock.LevelID = next.ID
		cr := claim(KindNewLevelUnlocked, unlock)
		if cr.Err == nil && (!cr.Replayed || cr.SessionID == out.SessionID) {
			res.Unlocked = &next
		}
	}
	if RollJackpot(sessionRand(out.SessionID)) {
		claim(KindJackpot, cc)
	}

	if res.Pending {
		r.log.Warn("session reconciliation pending",
			"user", out.UserID, "session", out.SessionID, "err", res.Err)
	}
	return res, nil
}

// sessionRand returns a generator seeded from the session id, so that a
// retried reconciliation rolls the same jackpot outcome.
func sessionRand(sessionID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
