package scenario

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Deck is the immutable scenario pool for one level. It is owned by a
// single drill session and never mutated after construction.
type Deck struct {
	levelID   string
	scenarios []Scenario
	byKey     map[string]int
}

// NewDeck builds a deck from a level's scenarios. Duplicate keys keep the
// first occurrence. Returns ErrEmptyContent if no scenarios remain.
func NewDeck(levelID string, scenarios []Scenario) (*Deck, error) {
	d := &Deck{
		levelID: levelID,
		byKey:   make(map[string]int, len(scenarios)),
	}
	for _, s := range scenarios {
		if _, dup := d.byKey[s.Key]; dup {
			continue
		}
		d.byKey[s.Key] = len(d.scenarios)
		d.scenarios = append(d.scenarios, s)
	}
	if len(d.scenarios) == 0 {
		return nil, fmt.Errorf("level %q: %w", levelID, ErrEmptyContent)
	}
	return d, nil
}

// LevelID returns the level this deck was loaded for.
func (d *Deck) LevelID() string {
	return d.levelID
}

// Size returns the number of unique scenarios in the deck.
func (d *Deck) Size() int {
	return len(d.scenarios)
}

// Keys returns all scenario keys in load order.
func (d *Deck) Keys() []string {
	keys := make([]string, len(d.scenarios))
	for i, s := range d.scenarios {
		keys[i] = s.Key
	}
	return keys
}

// Get returns the scenario with the given key.
func (d *Deck) Get(key string) (Scenario, bool) {
	i, ok := d.byKey[key]
	if !ok {
		return Scenario{}, false
	}
	return d.scenarios[i], true
}

// Scenarios returns a copy of the pool.
func (d *Deck) Scenarios() []Scenario {
	return slices.Clone(d.scenarios)
}

// Sample picks a scenario uniformly at random from the pool minus exclude.
// When exclude covers the whole pool the exclusion set is treated as
// exhausted and the draw is made from the full pool, so a session revisits
// hands instead of stalling.
func (d *Deck) Sample(exclude map[string]bool, r *rand.Rand) Scenario {
	candidates := make([]int, 0, len(d.scenarios))
	for i, s := range d.scenarios {
		if !exclude[s.Key] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return d.scenarios[r.IntN(len(d.scenarios))]
	}
	return d.scenarios[candidates[r.IntN(len(candidates))]]
}

// Exhausted reports whether exclude covers every scenario in the deck.
func (d *Deck) Exhausted(exclude map[string]bool) bool {
	for _, s := range d.scenarios {
		if !exclude[s.Key] {
			return false
		}
	}
	return true
}
