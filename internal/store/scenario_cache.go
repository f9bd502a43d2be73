package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/drillz/internal/scenario"
)

// SaveScenarios caches generated scenarios for a content set. Scenarios
// whose key is already cached for the set are skipped. It returns the
// number of new rows.
func (s *Store) SaveScenarios(ctx context.Context, setID, model string, scenarios []scenario.Scenario) (int, error) {
	saved := 0
	now := time.Now().UnixMilli()
	for _, sc := range scenarios {
		payload, err := json.Marshal(sc)
		if err != nil {
			return saved, fmt.Errorf("marshal scenario %q: %w", sc.Key, err)
		}
		ins := s.builder().Insert(tableScenarioCache).
			Columns("set_id", "scenario_key", "payload", "model", "created_at").
			Values(setID, sc.Key, string(payload), model, now).
			OnConflict(
				entsql.ConflictColumns("set_id", "scenario_key"),
				entsql.DoNothing(),
			)
		res, err := execBuilt(ctx, s.db, ins)
		if err != nil {
			return saved, fmt.Errorf("cache scenario %q: %w", sc.Key, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			saved++
		}
	}
	return saved, nil
}

// CachedScenarios returns the cached scenarios for a content set in the
// order they were cached.
func (s *Store) CachedScenarios(ctx context.Context, setID string) ([]scenario.Scenario, error) {
	b := s.builder()
	sel := b.Select("payload").From(b.Table(tableScenarioCache)).
		Where(entsql.EQ("set_id", setID)).
		OrderBy("created_at", "scenario_key")
	rows, err := queryBuilt(ctx, s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query scenario cache: %w", err)
	}
	defer rows.Close()

	var out []scenario.Scenario
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan scenario cache: %w", err)
		}
		var sc scenario.Scenario
		if err := json.Unmarshal([]byte(payload), &sc); err != nil {
			return nil, fmt.Errorf("decode cached scenario: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// CachedHands returns the hand/position pairs already cached for a set,
// used to avoid generating duplicates.
func (s *Store) CachedHands(ctx context.Context, setID string) ([]string, error) {
	cached, err := s.CachedScenarios(ctx, setID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cached))
	for i, sc := range cached {
		out[i] = sc.Hand + "@" + sc.Position
	}
	return out, nil
}
