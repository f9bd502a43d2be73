package store

import (
	"context"
	"fmt"
	"strings"
)

// Portable column types accepted by SQLite, PostgreSQL and MySQL alike.
// Key columns are VARCHAR(191) so composite primary keys fit MySQL's
// index length limit under utf8mb4. Timestamps are unix milliseconds.
const (
	typeKey   = "VARCHAR(191)"
	typeInt   = "BIGINT"
	typeFloat = "DOUBLE PRECISION"
	typeBool  = "BOOLEAN"
	typeText  = "TEXT"
)

// Table names.
const (
	tableProgress      = "level_progress"
	tableLedger        = "reward_ledger"
	tableActivity      = "activity_days"
	tableScenarioCache = "scenario_cache"
	tableLLMEvents     = "llm_request_events"
	tableSessionEvents = "session_events"
)

type column struct {
	name     string
	typ      string
	nullable bool
}

type table struct {
	name       string
	columns    []column
	primaryKey []string
}

func col(name, typ string) column      { return column{name: name, typ: typ} }
func nullable(name, typ string) column { return column{name: name, typ: typ, nullable: true} }

// ddl renders the table as a CREATE TABLE IF NOT EXISTS statement that all
// three dialects accept.
func (t table) ddl() string {
	defs := make([]string, 0, len(t.columns)+1)
	for _, c := range t.columns {
		def := c.name + " " + c.typ
		if !c.nullable {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	defs = append(defs, "PRIMARY KEY ("+strings.Join(t.primaryKey, ", ")+")")
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.name, strings.Join(defs, ",\n\t"))
}

var schema = []table{
	{
		name: tableProgress,
		columns: []column{
			col("user_id", typeKey),
			col("level_id", typeKey),
			col("best_accuracy", typeFloat),
			col("is_unlocked", typeBool),
			col("times_played", typeInt),
			col("last_played_at", typeInt),
			nullable("last_session_id", typeKey),
		},
		primaryKey: []string{"user_id", "level_id"},
	},
	{
		name: tableLedger,
		columns: []column{
			col("claim_id", typeKey),
			col("user_id", typeKey),
			col("kind", typeKey),
			col("currency", typeKey),
			col("amount", typeInt),
			col("multiplier", typeFloat),
			col("bypasses_cap", typeBool),
			col("streak_days", typeInt),
			nullable("level_id", typeKey),
			nullable("session_id", typeKey),
			col("claimed_at", typeInt),
		},
		primaryKey: []string{"claim_id"},
	},
	{
		name: tableActivity,
		columns: []column{
			col("user_id", typeKey),
			col("day", typeKey),
			col("first_seen_at", typeInt),
		},
		primaryKey: []string{"user_id", "day"},
	},
	{
		name: tableScenarioCache,
		columns: []column{
			col("set_id", typeKey),
			col("scenario_key", typeKey),
			col("payload", typeText),
			col("model", typeKey),
			col("created_at", typeInt),
		},
		primaryKey: []string{"set_id", "scenario_key"},
	},
	{
		name: tableLLMEvents,
		columns: []column{
			col("id", typeKey),
			col("provider", typeKey),
			col("model", typeKey),
			col("purpose", typeKey),
			col("input_tokens", typeInt),
			col("output_tokens", typeInt),
			col("latency_ms", typeInt),
			col("success", typeBool),
			nullable("error_message", typeText),
			col("created_at", typeInt),
		},
		primaryKey: []string{"id"},
	},
	{
		name: tableSessionEvents,
		columns: []column{
			col("id", typeKey),
			col("session_id", typeKey),
			col("user_id", typeKey),
			col("level_id", typeKey),
			col("action", typeKey),
			col("answered", typeInt),
			col("correct", typeInt),
			col("accuracy", typeFloat),
			col("passed", typeBool),
			col("duration_ms", typeInt),
			nullable("results", typeText),
			col("created_at", typeInt),
		},
		primaryKey: []string{"id"},
	},
}

// migrate creates any missing tables. Tables are only ever added to; the
// schema has no destructive migrations.
func (s *Store) migrate(ctx context.Context) error {
	for _, t := range schema {
		if _, err := s.db.ExecContext(ctx, t.ddl()); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}
