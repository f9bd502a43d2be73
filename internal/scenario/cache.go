package scenario

import (
	"context"
	"fmt"
)

// CacheReader returns generated scenarios previously stored for a set.
type CacheReader interface {
	CachedScenarios(ctx context.Context, setID string) ([]Scenario, error)
}

// CacheSource exposes cached generated scenarios as a Source. A set with no
// cached scenarios is reported as ErrContentNotFound so that a ChainSource
// falls through to the next source.
type CacheSource struct {
	Reader CacheReader
}

// Load implements Source.
func (c CacheSource) Load(ctx context.Context, setID string) (*Content, error) {
	scenarios, err := c.Reader.CachedScenarios(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("load cached scenarios: %w", err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("content set %q: %w", setID, ErrContentNotFound)
	}
	return &Content{LevelID: setID, Scenarios: scenarios}, nil
}
