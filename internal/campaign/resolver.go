package campaign

// LevelCard is a level as shown on the campaign map.
type LevelCard struct {
	Level     Level
	Progress  LevelProgress
	Threshold float64
	Unlocked  bool
	Mastered  bool
}

// ComputeLevelCards derives which levels are playable and which are
// mastered. levels must already be in campaign order (see SortLevels).
// Level 0 is always unlocked; level i is unlocked when level i-1's record
// carries the unlock flag or its best accuracy meets its threshold.
func ComputeLevelCards(levels []Level, progress map[string]LevelProgress) []LevelCard {
	cards := make([]LevelCard, len(levels))
	for i, l := range levels {
		p := progress[l.ID]
		card := LevelCard{
			Level:     l,
			Progress:  p,
			Threshold: l.Threshold(),
			Mastered:  p.BestAccuracy >= l.Threshold(),
		}
		if i == 0 {
			card.Unlocked = true
		} else {
			prev := levels[i-1]
			pp := progress[prev.ID]
			card.Unlocked = pp.IsUnlocked || pp.BestAccuracy >= prev.Threshold()
		}
		cards[i] = card
	}
	return cards
}

// IsPlayable reports whether the level with the given id is unlocked.
func IsPlayable(levels []Level, progress map[string]LevelProgress, id string) bool {
	for _, c := range ComputeLevelCards(levels, progress) {
		if c.Level.ID == id {
			return c.Unlocked
		}
	}
	return false
}

// CountMastered returns the number of mastered cards.
func CountMastered(cards []LevelCard) int {
	n := 0
	for _, c := range cards {
		if c.Mastered {
			n++
		}
	}
	return n
}
