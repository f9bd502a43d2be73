package scengen

import (
	"regexp"

	"github.com/abhisek/drillz/internal/scenario"
)

const (
	maxSituationLen   = 160
	maxExplanationLen = 600
	maxNoteLen        = 200
)

// StructuralValidator checks required fields, lengths and alternates.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(s *scenario.Scenario, _ GenerateInput) *ValidationError {
	switch {
	case s.Situation == "":
		return reject(v, s, "situation is empty")
	case len(s.Situation) > maxSituationLen:
		return reject(v, s, "situation exceeds %d characters", maxSituationLen)
	case s.Explanation == "":
		return reject(v, s, "explanation is empty")
	case len(s.Explanation) > maxExplanationLen:
		return reject(v, s, "explanation exceeds %d characters", maxExplanationLen)
	case !s.CorrectAction.Valid():
		return reject(v, s, "invalid correct action")
	}

	seen := map[scenario.Action]bool{s.CorrectAction: true}
	for _, a := range s.Alternates {
		if seen[a.Action] {
			return reject(v, s, "alternate %s repeats an earlier action", a.Action)
		}
		seen[a.Action] = true
		if a.Note == "" || len(a.Note) > maxNoteLen {
			return reject(v, s, "alternate %s note must be 1-%d characters", a.Action, maxNoteLen)
		}
	}
	return nil
}

var handPattern = regexp.MustCompile(`^([AKQJT2-9])([AKQJT2-9])([so]?)$`)

const rankOrder = "23456789TJQKA"

var positions = map[string]bool{
	"UTG": true, "UTG+1": true, "MP": true, "LJ": true, "HJ": true,
	"CO": true, "BTN": true, "SB": true, "BB": true,
}

// HandValidator checks canonical hand notation and the seat name. Pairs
// carry no suffix, other hands need "s" or "o" with the higher rank first.
type HandValidator struct{}

func (v *HandValidator) Name() string { return "hand" }

func (v *HandValidator) Validate(s *scenario.Scenario, _ GenerateInput) *ValidationError {
	if !positions[s.Position] {
		return reject(v, s, "unknown position %q", s.Position)
	}
	m := handPattern.FindStringSubmatch(s.Hand)
	if m == nil {
		return reject(v, s, "hand is not in shorthand notation")
	}
	hi, lo, suffix := rankIndex(m[1]), rankIndex(m[2]), m[3]
	switch {
	case hi == lo && suffix != "":
		return reject(v, s, "pairs take no suited/offsuit suffix")
	case hi != lo && suffix == "":
		return reject(v, s, "non-pair hands need an s or o suffix")
	case hi < lo:
		return reject(v, s, "higher rank must come first")
	}
	return nil
}

func rankIndex(r string) int {
	for i := range len(rankOrder) {
		if rankOrder[i] == r[0] {
			return i
		}
	}
	return -1
}

// DuplicateValidator rejects hand/position pairs already in the set.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(s *scenario.Scenario, input GenerateInput) *ValidationError {
	key := handKey(s.Hand, s.Position)
	for _, prior := range input.PriorHands {
		if prior == key {
			return reject(v, s, "%s already exists in the set", key)
		}
	}
	return nil
}
