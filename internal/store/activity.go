package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/drillz/internal/rewards"
)

// RecordActivity marks now's UTC day as active for the user. It reports
// whether this was the first activity of the day.
func (s *Store) RecordActivity(ctx context.Context, userID string, now time.Time) (bool, error) {
	ins := s.builder().Insert(tableActivity).
		Columns("user_id", "day", "first_seen_at").
		Values(userID, rewards.DayKey(now), now.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("user_id", "day"),
			entsql.DoNothing(),
		)
	res, err := execBuilt(ctx, s.db, ins)
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	return n > 0, nil
}

// activeDays returns the user's active days, oldest first.
func (s *Store) activeDays(ctx context.Context, userID string) ([]time.Time, error) {
	b := s.builder()
	sel := b.Select("day").From(b.Table(tableActivity)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("day")
	rows, err := queryBuilt(ctx, s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		d, err := time.Parse(time.DateOnly, key)
		if err != nil {
			return nil, fmt.Errorf("parse activity day %q: %w", key, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// RollingStreakDays counts consecutive active days ending today. A streak
// that ended yesterday is still alive until today is over.
func (s *Store) RollingStreakDays(ctx context.Context, userID string, now time.Time) (int, error) {
	days, err := s.activeDays(ctx, userID)
	if err != nil {
		return 0, err
	}
	return rollingStreak(days, now), nil
}

// LongestStreakDays returns the longest run of consecutive active days.
func (s *Store) LongestStreakDays(ctx context.Context, userID string) (int, error) {
	days, err := s.activeDays(ctx, userID)
	if err != nil {
		return 0, err
	}
	return longestStreak(days), nil
}

func rollingStreak(days []time.Time, now time.Time) int {
	today, _ := rewards.DayBounds(now)
	set := make(map[time.Time]bool, len(days))
	for _, d := range days {
		set[d] = true
	}

	cursor := today
	if !set[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	n := 0
	for set[cursor] {
		n++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return n
}

func longestStreak(days []time.Time) int {
	days = slices.Clone(days)
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	best, run := 0, 0
	for i, d := range days {
		if i > 0 && d.Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else if i == 0 || !d.Equal(days[i-1]) {
			run = 1
		}
		best = max(best, run)
	}
	return best
}
