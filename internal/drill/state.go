package drill

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/scenario"
)

// Session scoring constants.
const (
	SessionLength    = 20
	BaseXP           = 10
	SpeedBonusXP     = 5
	PassBonusXP      = 100
	FastAnswerCutoff = 2000 * time.Millisecond
)

// Result is one scored answer.
type Result struct {
	ScenarioKey    string          `json:"scenario_key"`
	Category       string          `json:"category,omitempty"`
	Answer         scenario.Action `json:"answer"`
	Correct        bool            `json:"correct"`
	ResponseTimeMs int64           `json:"response_time_ms"`
}

// Fast reports whether the answer beat the speed-bonus cutoff.
func (r Result) Fast() bool {
	return r.ResponseTimeMs < FastAnswerCutoff.Milliseconds()
}

// State is the full, ephemeral state of one drill session. Transition
// never mutates a State it is given.
type State struct {
	Phase Phase

	Level campaign.Level
	Deck  *scenario.Deck

	// SessionLength is the number of hands in the session.
	SessionLength int

	// Seed and Draws determine every scenario draw: draw n of a session is
	// made from a generator seeded with (Seed, n).
	Seed  uint64
	Draws uint64

	// HandIndex is the zero-based index of the current hand.
	HandIndex int
	Current   scenario.Scenario
	DealtAt   time.Time

	// SeenKeys holds every scenario key dealt in this level-entry lifetime.
	// It survives a retry.
	SeenKeys map[string]bool

	CorrectCount int
	Streak       int
	MaxStreak    int
	SessionXP    int
	Results      []Result
	LastCorrect  bool

	StartedAt  time.Time
	EndedAt    time.Time
	EndedEarly bool
}

// NewState returns an idle state for a level. seen may be nil.
func NewState(level campaign.Level, seen map[string]bool) State {
	s := State{
		Phase:         PhaseIdle,
		Level:         level,
		SessionLength: SessionLength,
		SeenKeys:      make(map[string]bool, len(seen)),
	}
	maps.Copy(s.SeenKeys, seen)
	return s
}

// clone deep-copies the mutable parts of s.
func (s State) clone() State {
	out := s
	out.SeenKeys = maps.Clone(s.SeenKeys)
	if out.SeenKeys == nil {
		out.SeenKeys = make(map[string]bool)
	}
	out.Results = slices.Clone(s.Results)
	return out
}

// Answered returns the number of scored answers.
func (s State) Answered() int {
	return len(s.Results)
}

// LastResult returns the most recent result, if any.
func (s State) LastResult() (Result, bool) {
	if len(s.Results) == 0 {
		return Result{}, false
	}
	return s.Results[len(s.Results)-1], true
}

// ProgressPct returns the fraction of the session completed.
func (s State) ProgressPct() float64 {
	if s.SessionLength == 0 {
		return 0
	}
	return float64(len(s.Results)) / float64(s.SessionLength)
}
