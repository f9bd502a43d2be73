package drill

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/drillz/internal/scenario"
)

// ErrInvalidTransition is returned when an event does not apply to the
// current phase. The returned state is always the unchanged input.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition applies ev to s and returns the next state. It is pure: the
// same state and event always yield the same result, and s is not
// modified. On error the input state is returned as is.
func Transition(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case Start:
		return start(s, e)
	case Submit:
		return submit(s, e)
	case Next:
		return next(s, e)
	case End:
		return end(s, e)
	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
}

func invalid(s State, ev Event) error {
	return fmt.Errorf("%w: %T in phase %s", ErrInvalidTransition, ev, s.Phase)
}

func start(s State, e Start) (State, error) {
	if s.Phase != PhaseIdle {
		return s, invalid(s, e)
	}
	if e.Deck == nil || e.Deck.Size() == 0 {
		return s, fmt.Errorf("start level %q: %w", e.Level.ID, scenario.ErrEmptyContent)
	}

	out := s.clone()
	out.Level = e.Level
	out.Deck = e.Deck
	out.Seed = e.Seed
	out.Draws = 0
	out.SessionLength = SessionLength
	if e.Length > 0 {
		out.SessionLength = e.Length
	}
	out.HandIndex = 0
	out.CorrectCount = 0
	out.Streak = 0
	out.MaxStreak = 0
	out.SessionXP = 0
	out.Results = nil
	out.LastCorrect = false
	out.StartedAt = e.At
	out.EndedAt = e.At
	out.EndedEarly = false
	out.deal(e.At)
	out.Phase = PhasePlaying
	return out, nil
}

// deal draws the next scenario. When every key in the deck has been seen
// the seen set starts a new cycle.
func (s *State) deal(at time.Time) {
	if s.Deck.Exhausted(s.SeenKeys) {
		clear(s.SeenKeys)
	}
	r := rand.New(rand.NewPCG(s.Seed, s.Draws))
	s.Draws++
	s.Current = s.Deck.Sample(s.SeenKeys, r)
	s.SeenKeys[s.Current.Key] = true
	s.DealtAt = at
}

func submit(s State, e Submit) (State, error) {
	if s.Phase != PhasePlaying {
		return s, invalid(s, e)
	}

	out := s.clone()
	rt := max(e.At.Sub(s.DealtAt).Milliseconds(), 0)
	res := Result{
		ScenarioKey:    s.Current.Key,
		Category:       s.Current.Category,
		Answer:         e.Answer,
		Correct:        e.Answer == s.Current.CorrectAction,
		ResponseTimeMs: rt,
	}
	out.Results = append(out.Results, res)
	out.LastCorrect = res.Correct
	if res.Correct {
		out.CorrectCount++
		out.Streak++
		out.SessionXP += answerXP(res)
	} else {
		out.Streak = 0
	}
	out.MaxStreak = max(out.MaxStreak, out.Streak)
	out.EndedAt = e.At
	out.Phase = PhaseFeedback
	return out, nil
}

func next(s State, e Next) (State, error) {
	if s.Phase != PhaseFeedback {
		return s, invalid(s, e)
	}
	if e.Auto && !s.LastCorrect {
		return s, fmt.Errorf("%w: auto-advance after an incorrect answer", ErrInvalidTransition)
	}

	out := s.clone()
	if s.HandIndex+1 >= s.SessionLength {
		out.Phase = PhaseSummary
		out.EndedAt = e.At
		return out, nil
	}
	out.HandIndex++
	out.deal(e.At)
	out.Phase = PhasePlaying
	return out, nil
}

func end(s State, e End) (State, error) {
	if s.Phase != PhasePlaying && s.Phase != PhaseFeedback {
		return s, invalid(s, e)
	}
	out := s.clone()
	out.Phase = PhaseSummary
	out.EndedAt = e.At
	out.EndedEarly = len(s.Results) < s.SessionLength
	return out, nil
}

// answerXP is the provisional XP for one result.
func answerXP(r Result) int {
	if !r.Correct {
		return 0
	}
	xp := BaseXP
	if r.Fast() {
		xp += SpeedBonusXP
	}
	return xp
}

// ScoreResults recomputes session XP from raw results.
func ScoreResults(results []Result) int {
	total := 0
	for _, r := range results {
		total += answerXP(r)
	}
	return total
}
