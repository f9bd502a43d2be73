package store

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/drillz/internal/drill"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Session event actions.
const (
	SessionActionStart = "start"
	SessionActionEnd   = "end"
)

// SessionEventData records the start or end of a drill session.
type SessionEventData struct {
	SessionID string
	UserID    string
	LevelID   string
	Action    string
	Answered  int
	Correct   int
	Accuracy  float64
	Passed    bool
	Duration  time.Duration
	Results   []drill.Result
}

// EventRepo provides append access to the event log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
}

// AppendLLMRequest records an LLM API call event.
func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	ins := s.builder().Insert(tableLLMEvents).
		Columns("id", "provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "created_at").
		Values(uuid.NewString(), data.Provider, data.Model, data.Purpose,
			int64(data.InputTokens), int64(data.OutputTokens), data.LatencyMs,
			data.Success, nullString(data.ErrorMessage), time.Now().UnixMilli())
	if _, err := execBuilt(ctx, s.db, ins); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// AppendSessionEvent records a session start or end.
func (s *Store) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	var results any
	if len(data.Results) > 0 {
		b, err := json.Marshal(data.Results)
		if err != nil {
			return fmt.Errorf("marshal session results: %w", err)
		}
		results = string(b)
	}
	ins := s.builder().Insert(tableSessionEvents).
		Columns("id", "session_id", "user_id", "level_id", "action", "answered", "correct",
			"accuracy", "passed", "duration_ms", "results", "created_at").
		Values(uuid.NewString(), data.SessionID, data.UserID, data.LevelID, data.Action,
			int64(data.Answered), int64(data.Correct), data.Accuracy, data.Passed,
			data.Duration.Milliseconds(), results, time.Now().UnixMilli())
	if _, err := execBuilt(ctx, s.db, ins); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// RecentResults returns up to limit answer results from the user's most
// recent finished sessions, oldest first.
func (s *Store) RecentResults(ctx context.Context, userID string, limit int) ([]drill.Result, error) {
	b := s.builder()
	sel := b.Select("results").From(b.Table(tableSessionEvents)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("action", SessionActionEnd),
		)).
		OrderBy(entsql.Desc("created_at")).
		Limit(limit)
	rows, err := queryBuilt(ctx, s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var batches [][]drill.Result
	total := 0
	for rows.Next() && total < limit {
		var raw *string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if raw == nil {
			continue
		}
		var rs []drill.Result
		if err := json.Unmarshal([]byte(*raw), &rs); err != nil {
			return nil, fmt.Errorf("decode session results: %w", err)
		}
		batches = append(batches, rs)
		total += len(rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []drill.Result
	for i := len(batches) - 1; i >= 0; i-- {
		out = append(out, batches[i]...)
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// SessionStats summarizes a user's finished sessions.
type SessionStats struct {
	Sessions     int
	Passed       int
	Answered     int
	Correct      int
	LastPlayedAt time.Time
}

// SessionStats aggregates the user's session end events.
func (s *Store) SessionStats(ctx context.Context, userID string) (SessionStats, error) {
	var st SessionStats
	b := s.builder()
	sel := b.Select("answered", "correct", "passed", "created_at").From(b.Table(tableSessionEvents)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("action", SessionActionEnd),
		))
	rows, err := queryBuilt(ctx, s.db, sel)
	if err != nil {
		return st, fmt.Errorf("query session stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			answered, correct, at int64
			passed                bool
		)
		if err := rows.Scan(&answered, &correct, &passed, &at); err != nil {
			return st, fmt.Errorf("scan session stats: %w", err)
		}
		st.Sessions++
		st.Answered += int(answered)
		st.Correct += int(correct)
		if passed {
			st.Passed++
		}
		if t := fromMillis(at); t.After(st.LastPlayedAt) {
			st.LastPlayedAt = t
		}
	}
	return st, rows.Err()
}

// LLMEvent is a recorded LLM request.
type LLMEvent struct {
	ID           string
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// QueryLLMEvents returns the latest LLM events, newest first. An empty
// purpose matches every event.
func (s *Store) QueryLLMEvents(ctx context.Context, purpose string, limit int) ([]LLMEvent, error) {
	b := s.builder()
	sel := b.Select("id", "provider", "model", "purpose", "input_tokens", "output_tokens",
		"latency_ms", "success", "error_message", "created_at").
		From(b.Table(tableLLMEvents)).
		OrderBy(entsql.Desc("created_at"))
	if purpose != "" {
		sel = sel.Where(entsql.EQ("purpose", purpose))
	}
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	rows, err := queryBuilt(ctx, s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var (
			e           LLMEvent
			in, outTok  int64
			errMsg      sql.NullString
			createdAtMs int64
		)
		if err := rows.Scan(&e.ID, &e.Provider, &e.Model, &e.Purpose, &in, &outTok,
			&e.LatencyMs, &e.Success, &errMsg, &createdAtMs); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.InputTokens = int(in)
		e.OutputTokens = int(outTok)
		e.ErrorMessage = errMsg.String
		e.Timestamp = fromMillis(createdAtMs)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ModelUsage aggregates LLM token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByModel aggregates every recorded LLM event per model, ordered
// by model name.
func (s *Store) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	events, err := s.QueryLLMEvents(ctx, "", 0)
	if err != nil {
		return nil, err
	}
	byModel := make(map[string]*ModelUsage)
	latency := make(map[string]int64)
	for _, e := range events {
		mu, ok := byModel[e.Model]
		if !ok {
			mu = &ModelUsage{Model: e.Model}
			byModel[e.Model] = mu
		}
		mu.Calls++
		if !e.Success {
			mu.Failures++
		}
		mu.InputTokens += e.InputTokens
		mu.OutputTokens += e.OutputTokens
		latency[e.Model] += e.LatencyMs
	}

	out := make([]ModelUsage, 0, len(byModel))
	for model, mu := range byModel {
		mu.AvgLatencyMs = latency[model] / int64(mu.Calls)
		out = append(out, *mu)
	}
	slices.SortFunc(out, func(a, b ModelUsage) int { return cmp.Compare(a.Model, b.Model) })
	return out, nil
}
