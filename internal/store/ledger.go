package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/drillz/internal/rewards"
)

var ledgerColumns = []string{
	"claim_id", "user_id", "kind", "currency", "amount", "multiplier",
	"bypasses_cap", "streak_days", "level_id", "session_id", "claimed_at",
}

// AppendClaim inserts rec unless its claim id is already in the ledger, in
// which case the stored row is returned. Insert and lookup share one
// transaction.
func (s *Store) AppendClaim(ctx context.Context, rec rewards.ClaimRecord) (bool, *rewards.ClaimRecord, error) {
	var (
		inserted bool
		existing *rewards.ClaimRecord
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ins := s.builder().Insert(tableLedger).
			Columns(ledgerColumns...).
			Values(rec.ClaimID, rec.UserID, string(rec.Kind), string(rec.Currency), int64(rec.Amount),
				rec.Multiplier, rec.BypassesCap, int64(rec.StreakDays),
				nullString(rec.LevelID), nullString(rec.SessionID), toMillis(rec.ClaimedAt)).
			OnConflict(
				entsql.ConflictColumns("claim_id"),
				entsql.DoNothing(),
			)
		res, err := execBuilt(ctx, tx, ins)
		if err != nil {
			return fmt.Errorf("insert claim: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert claim: %w", err)
		}
		if n > 0 {
			inserted = true
			return nil
		}
		existing, err = s.findClaim(ctx, tx, rec.ClaimID)
		return err
	})
	if err != nil {
		return false, nil, err
	}
	return inserted, existing, nil
}

// FindClaim returns the ledger row for claimID, or nil if there is none.
func (s *Store) FindClaim(ctx context.Context, claimID string) (*rewards.ClaimRecord, error) {
	return s.findClaim(ctx, s.db, claimID)
}

func (s *Store) findClaim(ctx context.Context, q querier, claimID string) (*rewards.ClaimRecord, error) {
	recs, err := s.queryClaims(ctx, q, entsql.EQ("claim_id", claimID), 0)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ClaimsBetween returns a user's claims with from <= claimed_at < to in
// claim order. A zero to means no upper bound.
func (s *Store) ClaimsBetween(ctx context.Context, userID string, from, to time.Time) ([]rewards.ClaimRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if !from.IsZero() {
		preds = append(preds, entsql.GTE("claimed_at", from.UnixMilli()))
	}
	if !to.IsZero() {
		preds = append(preds, entsql.LT("claimed_at", to.UnixMilli()))
	}
	return s.queryClaims(ctx, s.db, entsql.And(preds...), 0)
}

// RecentClaims returns a user's latest claims, newest first.
func (s *Store) RecentClaims(ctx context.Context, userID string, limit int) ([]rewards.ClaimRecord, error) {
	return s.queryClaims(ctx, s.db, entsql.EQ("user_id", userID), limit)
}

// Totals sums a user's lifetime balances per currency.
func (s *Store) Totals(ctx context.Context, userID string) (rewards.Totals, error) {
	var t rewards.Totals
	b := s.builder()
	sel := b.Select("currency", entsql.Sum("amount")).
		From(b.Table(tableLedger)).
		Where(entsql.EQ("user_id", userID)).
		GroupBy("currency")

	rows, err := queryBuilt(ctx, s.db, sel)
	if err != nil {
		return t, fmt.Errorf("sum ledger: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			currency string
			sum      sql.NullInt64
		)
		if err := rows.Scan(&currency, &sum); err != nil {
			return t, fmt.Errorf("scan ledger total: %w", err)
		}
		switch rewards.Currency(currency) {
		case rewards.CurrencyDiamonds:
			t.Diamonds = int(sum.Int64)
		case rewards.CurrencyXP:
			t.XP = int(sum.Int64)
		}
	}
	return t, rows.Err()
}

// queryClaims runs a ledger query. With limit > 0 the newest rows come
// first; otherwise rows are in claim order.
func (s *Store) queryClaims(ctx context.Context, q querier, pred *entsql.Predicate, limit int) ([]rewards.ClaimRecord, error) {
	b := s.builder()
	sel := b.Select(ledgerColumns...).From(b.Table(tableLedger)).Where(pred)
	if limit > 0 {
		sel = sel.OrderBy(entsql.Desc("claimed_at")).Limit(limit)
	} else {
		sel = sel.OrderBy("claimed_at")
	}

	rows, err := queryBuilt(ctx, q, sel)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var out []rewards.ClaimRecord
	for rows.Next() {
		var (
			r                  rewards.ClaimRecord
			kind, currency     string
			amount, streak, at int64
			level, session     sql.NullString
		)
		if err := rows.Scan(&r.ClaimID, &r.UserID, &kind, &currency, &amount, &r.Multiplier,
			&r.BypassesCap, &streak, &level, &session, &at); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		r.Kind = rewards.Kind(kind)
		r.Currency = rewards.Currency(currency)
		r.Amount = int(amount)
		r.StreakDays = int(streak)
		r.LevelID = level.String
		r.SessionID = session.String
		r.ClaimedAt = fromMillis(at)
		out = append(out, r)
	}
	return out, rows.Err()
}
