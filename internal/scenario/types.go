package scenario

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is a preflop decision.
type Action int

const (
	ActionFold Action = iota
	ActionCall
	ActionRaise
)

// AllActions returns the actions in display order.
func AllActions() []Action {
	return []Action{ActionFold, ActionCall, ActionRaise}
}

// String returns the lowercase wire form of the action.
func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// DisplayName returns a human-readable label for the action.
func (a Action) DisplayName() string {
	switch a {
	case ActionFold:
		return "Fold"
	case ActionCall:
		return "Call"
	case ActionRaise:
		return "Raise"
	default:
		return a.String()
	}
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a >= ActionFold && a <= ActionRaise
}

// ParseAction parses "fold", "call" or "raise" (case-insensitive).
// Single-letter shortcuts f, c and r are accepted as well.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return ActionFold, nil
	case "call", "c":
		return ActionCall, nil
	case "raise", "r":
		return ActionRaise, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

func (a Action) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("marshal invalid action %d", int(a))
	}
	return json.Marshal(a.String())
}

func (a *Action) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Alternate is a non-optimal action with a short note on why it loses.
type Alternate struct {
	Action Action `json:"action"`
	Note   string `json:"note"`
}

// Scenario is a single labeled decision: a hand in a situation and the
// action the chart prescribes.
type Scenario struct {
	// Key uniquely identifies the hand/situation within a content set.
	Key string `json:"key"`

	// Hand is the hole-card shorthand, e.g. "AKs", "T9o", "77".
	Hand string `json:"hand"`

	// Position is the seat the hero acts from, e.g. "BTN", "UTG".
	Position string `json:"position"`

	// Situation describes the action before the hero, e.g. "folded to you".
	Situation string `json:"situation"`

	CorrectAction Action      `json:"correct_action"`
	Alternates    []Alternate `json:"alternates,omitempty"`
	Explanation   string      `json:"explanation"`

	// Category groups scenarios for leak analysis, e.g. "open", "3bet", "defend".
	Category string `json:"category,omitempty"`
}

// Prompt renders the scenario as a one-line question.
func (s Scenario) Prompt() string {
	situation := s.Situation
	if situation == "" {
		situation = "action on you"
	}
	return fmt.Sprintf("%s on the %s, %s. What do you do?", s.Hand, s.Position, situation)
}

// Content is the scenario pool for a single level.
type Content struct {
	LevelID   string     `json:"level_id"`
	Scenarios []Scenario `json:"scenarios"`
}
