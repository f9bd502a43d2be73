package campaign

import (
	"cmp"
	"slices"

	"github.com/abhisek/drillz/internal/scenario"
)

// Level is one ordered unit of the training campaign.
type Level struct {
	ID              string `json:"id"`
	OrderIndex      int    `json:"order_index"`
	ScenarioSetRef  string `json:"scenario_set_ref"`
	DifficultyIndex int    `json:"difficulty_index"`
	Name            string `json:"name"`

	// StakeDepth is the effective stack in big blinds. Deeper levels sort
	// first among levels sharing an OrderIndex.
	StakeDepth int    `json:"stake_depth"`
	Position   string `json:"position"`
}

// Threshold returns the pass threshold for the level.
func (l Level) Threshold() float64 {
	return Threshold(l.DifficultyIndex)
}

// Threshold returns min(1.0, 0.85 + 0.02 × difficultyIndex). It is computed
// in whole percent so that 19/20 compares equal to a 0.95 threshold.
func Threshold(difficultyIndex int) float64 {
	pct := 85 + 2*max(difficultyIndex, 0)
	if pct > 100 {
		pct = 100
	}
	return float64(pct) / 100
}

// SortLevels orders levels by OrderIndex, then StakeDepth (deeper first),
// then Position, then ID. The input is not modified.
func SortLevels(levels []Level) []Level {
	out := slices.Clone(levels)
	slices.SortStableFunc(out, func(a, b Level) int {
		if c := cmp.Compare(a.OrderIndex, b.OrderIndex); c != 0 {
			return c
		}
		if c := cmp.Compare(b.StakeDepth, a.StakeDepth); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// NextLevel returns the level that follows id in the sorted sequence.
func NextLevel(levels []Level, id string) (Level, bool) {
	sorted := SortLevels(levels)
	for i, l := range sorted {
		if l.ID == id && i+1 < len(sorted) {
			return sorted[i+1], true
		}
	}
	return Level{}, false
}

// LevelByID finds a level by id.
func LevelByID(levels []Level, id string) (Level, bool) {
	for _, l := range levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// campaign is the built-in level sequence, in play order.
var campaign = []Level{
	{ID: "l01-open-late", OrderIndex: 0, ScenarioSetRef: scenario.SetOpenLate, Name: "Stealing from the Button", StakeDepth: 100, Position: "BTN"},
	{ID: "l02-open-early", OrderIndex: 1, ScenarioSetRef: scenario.SetOpenEarly, Name: "Early Position Discipline", StakeDepth: 100, Position: "UTG"},
	{ID: "l03-blind-defense", OrderIndex: 2, ScenarioSetRef: scenario.SetBlindDefense, Name: "Defending the Big Blind", StakeDepth: 100, Position: "BB"},
	{ID: "l04-small-blind", OrderIndex: 3, ScenarioSetRef: scenario.SetSmallBlind, Name: "Small Blind Battles", StakeDepth: 100, Position: "SB"},
	{ID: "l05-facing-3bet", OrderIndex: 4, ScenarioSetRef: scenario.SetFacing3Bet, Name: "Facing the 3-Bet", StakeDepth: 100, Position: "CO"},
	{ID: "l06-three-bet-ip", OrderIndex: 5, ScenarioSetRef: scenario.SetThreeBetIP, Name: "3-Betting in Position", StakeDepth: 100, Position: "BTN"},
	{ID: "l07-squeeze", OrderIndex: 6, ScenarioSetRef: scenario.SetSqueeze, Name: "The Squeeze", StakeDepth: 100, Position: "BB"},
	{ID: "l08-short-stack", OrderIndex: 7, ScenarioSetRef: scenario.SetShortStack, Name: "Short Stack Push/Fold", StakeDepth: 20, Position: "BTN"},
	{ID: "l09-bubble", OrderIndex: 8, ScenarioSetRef: scenario.SetBubble, Name: "Bubble Pressure", StakeDepth: 30, Position: "BB"},
	{ID: "l10-deep-stack", OrderIndex: 9, ScenarioSetRef: scenario.SetDeepStack, Name: "Deep Stack Play", StakeDepth: 200, Position: "BTN"},
}

func init() {
	for i := range campaign {
		campaign[i].DifficultyIndex = i
	}
}

// Campaign returns the built-in level sequence in sorted order.
func Campaign() []Level {
	return SortLevels(campaign)
}
