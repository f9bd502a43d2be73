package rewards

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Summary is a user's derived reward state.
type Summary struct {
	TotalLifetime     int     `json:"total_lifetime"`
	TotalXP           int     `json:"total_xp"`
	EarnedToday       int     `json:"earned_today"`
	RemainingCapToday int     `json:"remaining_cap_today"`
	CurrentStreakDays int     `json:"current_streak_days"`
	LongestStreakDays int     `json:"longest_streak_days"`
	StreakMultiplier  float64 `json:"streak_multiplier"`
}

// ClaimResult is the outcome of a claim. A replayed claim carries the
// originally recorded amount.
type ClaimResult struct {
	Success bool
	ClaimID string
	Kind    Kind

	// SessionID is the session recorded on the ledger row, which for a
	// replay is the session that first made the claim.
	SessionID     string
	Currency      Currency
	AmountAwarded int
	Multiplier    float64
	BypassedCap   bool
	NewStreak     int
	Replayed      bool
	Summary       Summary
	Celebration   *Celebration
	Err           error
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	Catalog  *Catalog
	Ledger   Ledger
	Streaks  StreakSource
	DailyCap int
	Logger   *slog.Logger
	Now      func() time.Time
}

// Service awards rewards against the ledger.
type Service struct {
	catalog  *Catalog
	ledger   Ledger
	streaks  StreakSource
	dailyCap int
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a reward service. Zero config fields get defaults.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		catalog:  cfg.Catalog,
		ledger:   cfg.Ledger,
		streaks:  cfg.Streaks,
		dailyCap: cfg.DailyCap,
		log:      cfg.Logger,
		now:      cfg.Now,
	}
	if s.catalog == nil {
		s.catalog = DefaultCatalog()
	}
	if s.dailyCap <= 0 {
		s.dailyCap = DefaultDailyCap
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Catalog returns the service's reward catalog.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// DailyCap returns the configured daily diamond cap.
func (s *Service) DailyCap() int {
	return s.dailyCap
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistenceUnavailable, err)
}

// Claim awards kind to userID for the event described by cc. Calling it
// again with the same logical event replays the recorded result without
// awarding anything new. Store failures yield Success=false with Err
// wrapping ErrPersistenceUnavailable.
func (s *Service) Claim(ctx context.Context, userID string, kind Kind, cc ClaimContext) ClaimResult {
	res := ClaimResult{Kind: kind}

	def, ok := s.catalog.Lookup(kind)
	if !ok {
		res.Err = fmt.Errorf("%w: %q", ErrUnknownRewardKind, kind)
		return res
	}
	res.Currency = def.Currency

	now := cc.Now
	if now.IsZero() {
		now = s.now()
	}

	id, err := ClaimID(userID, def, cc, now)
	if err != nil {
		res.Err = err
		return res
	}
	res.ClaimID = id

	existing, err := s.ledger.FindClaim(ctx, id)
	if err != nil {
		res.Err = unavailable("find claim", err)
		return res
	}
	if existing != nil {
		return s.replay(ctx, res, def, existing, now)
	}

	streak, err := s.streaks.RollingStreakDays(ctx, userID, now)
	if err != nil {
		res.Err = unavailable("read streak", err)
		return res
	}

	rec := ClaimRecord{
		ClaimID:     id,
		UserID:      userID,
		Kind:        kind,
		Currency:    def.Currency,
		BypassesCap: def.BypassesCap,
		StreakDays:  streak,
		LevelID:     cc.LevelID,
		SessionID:   cc.SessionID,
		ClaimedAt:   now,
		Multiplier:  1,
	}

	switch def.Currency {
	case CurrencyXP:
		rec.Amount = max(cc.Amount, 0)
	default:
		base := def.BaseAmount
		if kind == KindDailyLogin {
			base = DailyLoginBase(streak)
		}
		if base == 0 {
			base = cc.Amount
		}
		rec.Multiplier = StreakMultiplier(streak)
		rec.Amount = ScaleAmount(base, rec.Multiplier, def.MaxAmount)

		if !def.BypassesCap {
			earned, err := s.earnedToday(ctx, userID, now)
			if err != nil {
				res.Err = unavailable("read daily earnings", err)
				return res
			}
			clamped := ClampToCap(rec.Amount, earned, s.dailyCap)
			if clamped < rec.Amount {
				s.log.Debug("claim clamped by daily cap",
					"user", userID, "kind", kind, "amount", rec.Amount, "awarded", clamped, "earned_today", earned)
			}
			rec.Amount = clamped
		}
	}

	inserted, stored, err := s.ledger.AppendClaim(ctx, rec)
	if err != nil {
		res.Err = unavailable("append claim", err)
		return res
	}
	if !inserted && stored != nil {
		// Lost a race with a concurrent claim of the same event.
		return s.replay(ctx, res, def, stored, now)
	}

	res.Success = true
	res.SessionID = rec.SessionID
	res.AmountAwarded = rec.Amount
	res.Multiplier = rec.Multiplier
	res.BypassedCap = def.BypassesCap
	res.NewStreak = streak
	res.Celebration = celebrate(def, rec.Amount)
	res.Summary = s.summaryOrLog(ctx, userID, now)
	return res
}

func (s *Service) replay(ctx context.Context, res ClaimResult, def Definition, rec *ClaimRecord, now time.Time) ClaimResult {
	res.Success = true
	res.Replayed = true
	res.SessionID = rec.SessionID
	res.AmountAwarded = rec.Amount
	res.Multiplier = rec.Multiplier
	res.BypassedCap = rec.BypassesCap
	res.NewStreak = rec.StreakDays
	res.Celebration = celebrate(def, rec.Amount)
	res.Summary = s.summaryOrLog(ctx, rec.UserID, now)
	return res
}

func (s *Service) summaryOrLog(ctx context.Context, userID string, now time.Time) Summary {
	sum, err := s.Summary(ctx, userID, now)
	if err != nil {
		s.log.Warn("recompute reward summary", "user", userID, "err", err)
	}
	return sum
}

func celebrate(def Definition, amount int) *Celebration {
	if amount <= 0 || def.Currency != CurrencyDiamonds {
		return nil
	}
	return &Celebration{
		Kind:    def.ID,
		Name:    def.Name,
		Amount:  amount,
		Rarity:  def.Rarity,
		Icon:    def.Icon,
		Message: def.Rarity.CelebrationMessage(),
	}
}

// earnedToday sums the capped diamond claims on now's UTC day.
func (s *Service) earnedToday(ctx context.Context, userID string, now time.Time) (int, error) {
	from, to := DayBounds(now)
	claims, err := s.ledger.ClaimsBetween(ctx, userID, from, to)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range claims {
		if c.Currency == CurrencyDiamonds && !c.BypassesCap {
			total += c.Amount
		}
	}
	return total, nil
}

// Summary recomputes a user's reward summary from the ledger and the
// streak source.
func (s *Service) Summary(ctx context.Context, userID string, now time.Time) (Summary, error) {
	var sum Summary

	totals, err := s.ledger.Totals(ctx, userID)
	if err != nil {
		return sum, unavailable("read totals", err)
	}
	sum.TotalLifetime = totals.Diamonds
	sum.TotalXP = totals.XP

	earned, err := s.earnedToday(ctx, userID, now)
	if err != nil {
		return sum, unavailable("read daily earnings", err)
	}
	sum.EarnedToday = earned
	sum.RemainingCapToday = max(0, s.dailyCap-earned)

	if sum.CurrentStreakDays, err = s.streaks.RollingStreakDays(ctx, userID, now); err != nil {
		return sum, unavailable("read streak", err)
	}
	if sum.LongestStreakDays, err = s.streaks.LongestStreakDays(ctx, userID); err != nil {
		return sum, unavailable("read longest streak", err)
	}
	sum.StreakMultiplier = StreakMultiplier(sum.CurrentStreakDays)
	return sum, nil
}
