package rewards

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/drillz/internal/campaign"
)

// ClaimRecord is one append-only ledger row.
type ClaimRecord struct {
	ClaimID     string    `json:"claim_id"`
	UserID      string    `json:"user_id"`
	Kind        Kind      `json:"kind"`
	Currency    Currency  `json:"currency"`
	Amount      int       `json:"amount"`
	Multiplier  float64   `json:"multiplier"`
	BypassesCap bool      `json:"bypasses_cap"`
	StreakDays  int       `json:"streak_days"`
	LevelID     string    `json:"level_id,omitempty"`
	SessionID   string    `json:"session_id,omitempty"`
	ClaimedAt   time.Time `json:"claimed_at"`
}

// Totals are a user's lifetime balances.
type Totals struct {
	Diamonds int `json:"diamonds"`
	XP       int `json:"xp"`
}

// Ledger is the authoritative reward ledger.
type Ledger interface {
	// AppendClaim inserts rec unless a row with the same claim id exists.
	// When it exists, inserted is false and existing holds the stored row.
	AppendClaim(ctx context.Context, rec ClaimRecord) (inserted bool, existing *ClaimRecord, err error)

	// FindClaim returns the row for claimID, or nil if there is none.
	FindClaim(ctx context.Context, claimID string) (*ClaimRecord, error)

	// ClaimsBetween returns a user's rows with from <= ClaimedAt < to in
	// claim order. A zero to means no upper bound.
	ClaimsBetween(ctx context.Context, userID string, from, to time.Time) ([]ClaimRecord, error)

	Totals(ctx context.Context, userID string) (Totals, error)
}

// ProgressStore persists per-level progress records.
type ProgressStore interface {
	ReadProgress(ctx context.Context, userID string) (map[string]campaign.LevelProgress, error)

	// WriteProgress upserts a record, merging with campaign.MergeProgress.
	WriteProgress(ctx context.Context, userID, levelID string, p campaign.LevelProgress) error
}

// StreakSource reports login streaks computed from distinct activity days.
type StreakSource interface {
	RollingStreakDays(ctx context.Context, userID string, now time.Time) (int, error)
	LongestStreakDays(ctx context.Context, userID string) (int, error)
}

// ClaimContext carries the fields that identify a logical reward event.
// Which fields matter depends on the reward's Scope.
type ClaimContext struct {
	LevelID   string
	SessionID string

	// EventRef identifies an external event, e.g. the referred user.
	EventRef string

	// Amount is the payout for kinds whose definition has no base amount.
	Amount int

	// Now overrides the service clock.
	Now time.Time
}

// ClaimID derives the idempotency key for a claim. Identical logical
// events always produce the same id.
func ClaimID(userID string, def Definition, cc ClaimContext, now time.Time) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrInvalidClaimContext)
	}
	parts := []string{"drillz-claim", userID, string(def.ID), string(def.Scope)}
	switch def.Scope {
	case ScopeOnce:
	case ScopeDaily:
		parts = append(parts, DayKey(now))
	case ScopeLevel:
		if cc.LevelID == "" {
			return "", fmt.Errorf("%w: %s needs a level id", ErrInvalidClaimContext, def.ID)
		}
		parts = append(parts, cc.LevelID)
	case ScopeSession:
		if cc.SessionID == "" {
			return "", fmt.Errorf("%w: %s needs a session id", ErrInvalidClaimContext, def.ID)
		}
		parts = append(parts, cc.LevelID, cc.SessionID)
	case ScopeEvent:
		if cc.EventRef == "" {
			return "", fmt.Errorf("%w: %s needs an event reference", ErrInvalidClaimContext, def.ID)
		}
		parts = append(parts, cc.EventRef)
	default:
		return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidClaimContext, def.Scope)
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:]), nil
}

// DayKey returns the UTC calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// DayBounds returns the UTC day containing t as [start, end).
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
