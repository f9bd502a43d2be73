package scengen

import (
	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/llm"
	"github.com/abhisek/drillz/internal/scenario"
)

// GenerateInput holds the context for one generation call.
type GenerateInput struct {
	// Level is the campaign level the scenarios are for. Its set ref keys
	// the cache.
	Level campaign.Level

	// Count is the number of scenarios to request.
	Count int

	// PriorHands lists "hand@position" pairs already in the set. The model
	// is told to avoid them and duplicates are rejected.
	PriorHands []string

	// FocusCategories biases generation toward the player's leaks.
	FocusCategories []string
}

// Batch is the outcome of one generation call.
type Batch struct {
	Scenarios []scenario.Scenario
	Rejected  []*ValidationError
	Model     string
	Usage     llm.Usage
}

// handKey is the dedup identity of a scenario within a set.
func handKey(hand, position string) string {
	return hand + "@" + position
}
