package drill

import "time"

// Summary is the scored outcome of a finished session.
type Summary struct {
	LevelID       string        `json:"level_id"`
	SessionLength int           `json:"session_length"`
	Answered      int           `json:"answered"`
	Correct       int           `json:"correct"`
	Accuracy      float64       `json:"accuracy"`
	Threshold     float64       `json:"threshold"`
	Passed        bool          `json:"passed"`
	EndedEarly    bool          `json:"ended_early"`
	SessionXP     int           `json:"session_xp"`
	PassBonusXP   int           `json:"pass_bonus_xp"`
	MaxStreak     int           `json:"max_streak"`
	FastAnswers   int           `json:"fast_answers"`
	AvgResponse   time.Duration `json:"avg_response"`
	Duration      time.Duration `json:"duration"`
	Leaks         []Leak        `json:"leaks,omitempty"`
}

// TotalXP is the optimistic XP estimate shown before reconciliation.
func (s Summary) TotalXP() int {
	return s.SessionXP + s.PassBonusXP
}

// BuildSummary scores a state. Accuracy is always taken over the full
// session length, so ending early cannot inflate it.
func BuildSummary(s State) Summary {
	sum := Summary{
		LevelID:       s.Level.ID,
		SessionLength: s.SessionLength,
		Answered:      len(s.Results),
		Correct:       s.CorrectCount,
		Threshold:     s.Level.Threshold(),
		EndedEarly:    s.EndedEarly,
		SessionXP:     s.SessionXP,
		MaxStreak:     s.MaxStreak,
		Duration:      s.EndedAt.Sub(s.StartedAt),
		Leaks:         DetectLeaks(s.Results),
	}
	if s.SessionLength > 0 {
		sum.Accuracy = float64(s.CorrectCount) / float64(s.SessionLength)
	}
	sum.Passed = sum.Accuracy >= sum.Threshold
	if sum.Passed {
		sum.PassBonusXP = PassBonusXP
	}

	var total int64
	for _, r := range s.Results {
		if r.Correct && r.Fast() {
			sum.FastAnswers++
		}
		total += r.ResponseTimeMs
	}
	if n := len(s.Results); n > 0 {
		sum.AvgResponse = time.Duration(total/int64(n)) * time.Millisecond
	}
	return sum
}
