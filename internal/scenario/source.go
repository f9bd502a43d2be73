package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Source loads the scenario pool for a content set. Content sets are
// addressed by the level's scenario set reference.
type Source interface {
	// Load returns the scenarios for setID, or an error wrapping
	// ErrContentNotFound if the set is unknown to this source.
	Load(ctx context.Context, setID string) (*Content, error)
}

// LoadDeck loads a content set from src and builds a deck from it.
func LoadDeck(ctx context.Context, src Source, setID string) (*Deck, error) {
	content, err := src.Load(ctx, setID)
	if err != nil {
		return nil, err
	}
	return NewDeck(setID, content.Scenarios)
}

// Library is the immutable built-in content catalog.
type Library struct {
	sets map[string][]Scenario
}

// NewLibrary builds a library from the given sets. The input is copied.
func NewLibrary(sets map[string][]Scenario) *Library {
	l := &Library{sets: make(map[string][]Scenario, len(sets))}
	for id, scenarios := range sets {
		l.sets[id] = slices.Clone(scenarios)
	}
	return l
}

// BuiltinLibrary returns the library shipped with the binary.
func BuiltinLibrary() *Library {
	return builtin
}

// Load implements Source.
func (l *Library) Load(_ context.Context, setID string) (*Content, error) {
	scenarios, ok := l.sets[setID]
	if !ok {
		return nil, fmt.Errorf("content set %q: %w", setID, ErrContentNotFound)
	}
	return &Content{LevelID: setID, Scenarios: slices.Clone(scenarios)}, nil
}

// SetIDs returns all content set ids in sorted order.
func (l *Library) SetIDs() []string {
	ids := make([]string, 0, len(l.sets))
	for id := range l.sets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ChainSource merges several sources in order. Scenarios from every source
// that knows a set are appended, so on a duplicate key the earlier source
// wins once NewDeck drops the repeat. A set unknown to every source is
// ErrContentNotFound.
type ChainSource []Source

// Load implements Source.
func (c ChainSource) Load(ctx context.Context, setID string) (*Content, error) {
	var merged *Content
	for _, src := range c {
		content, err := src.Load(ctx, setID)
		if errors.Is(err, ErrContentNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = &Content{LevelID: setID}
		}
		merged.Scenarios = append(merged.Scenarios, content.Scenarios...)
	}
	if merged == nil {
		return nil, fmt.Errorf("content set %q: %w", setID, ErrContentNotFound)
	}
	return merged, nil
}
