package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/drillz/internal/campaign"
)

var progressColumns = []string{
	"user_id", "level_id", "best_accuracy", "is_unlocked", "times_played", "last_played_at", "last_session_id",
}

// ReadProgress returns all of a user's level records keyed by level id.
func (s *Store) ReadProgress(ctx context.Context, userID string) (map[string]campaign.LevelProgress, error) {
	return s.readProgress(ctx, s.db, userID, "")
}

func (s *Store) readProgress(ctx context.Context, q querier, userID, levelID string) (map[string]campaign.LevelProgress, error) {
	b := s.builder()
	pred := entsql.EQ("user_id", userID)
	if levelID != "" {
		pred = entsql.And(pred, entsql.EQ("level_id", levelID))
	}
	sel := b.Select(progressColumns[1:]...).From(b.Table(tableProgress)).Where(pred)

	rows, err := queryBuilt(ctx, q, sel)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]campaign.LevelProgress)
	for rows.Next() {
		var (
			id          string
			p           campaign.LevelProgress
			times       int64
			lastPlayed  int64
			lastSession sql.NullString
		)
		if err := rows.Scan(&id, &p.BestAccuracy, &p.IsUnlocked, &times, &lastPlayed, &lastSession); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		p.TimesPlayed = int(times)
		p.LastPlayedAt = fromMillis(lastPlayed)
		p.LastSessionID = lastSession.String
		out[id] = p
	}
	return out, rows.Err()
}

// WriteProgress merges p into the stored record for the level with
// campaign.MergeProgress and upserts the result. Best accuracy never
// decreases and the unlock flag is never cleared.
func (s *Store) WriteProgress(ctx context.Context, userID, levelID string, p campaign.LevelProgress) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := s.readProgress(ctx, tx, userID, levelID)
		if err != nil {
			return err
		}
		merged := campaign.MergeProgress(existing[levelID], p)

		ins := s.builder().Insert(tableProgress).
			Columns(progressColumns...).
			Values(userID, levelID, merged.BestAccuracy, merged.IsUnlocked,
				int64(merged.TimesPlayed), toMillis(merged.LastPlayedAt), nullString(merged.LastSessionID)).
			OnConflict(
				entsql.ConflictColumns("user_id", "level_id"),
				entsql.ResolveWithNewValues(),
			)
		if _, err := execBuilt(ctx, tx, ins); err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}
		return nil
	})
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
