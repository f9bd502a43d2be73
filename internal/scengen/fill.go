package scengen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/llm"
	"github.com/abhisek/drillz/internal/scenario"
)

// Cache is the scenario cache the filler tops up.
type Cache interface {
	CachedHands(ctx context.Context, setID string) ([]string, error)
	SaveScenarios(ctx context.Context, setID, model string, scenarios []scenario.Scenario) (int, error)
}

// FillReport summarizes a Fill run.
type FillReport struct {
	LevelID  string
	SetID    string
	Before   int
	After    int
	Rounds   int
	Rejected int
	Usage    llm.Usage
	CostUSD  float64
}

// Saved returns the number of scenarios added to the cache.
func (r FillReport) Saved() int {
	return r.After - r.Before
}

// Filler generates scenarios until a level's cached set reaches a target.
type Filler struct {
	gen   Generator
	cache Cache
	log   *slog.Logger

	// MaxStalls is the number of consecutive rounds without a new scenario
	// after which Fill gives up.
	MaxStalls int
}

// NewFiller creates a Filler. A nil logger uses slog.Default().
func NewFiller(gen Generator, cache Cache, logger *slog.Logger) *Filler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filler{gen: gen, cache: cache, log: logger, MaxStalls: 2}
}

// Fill generates batches for level until its cached set holds target
// scenarios, the generator stalls, or ctx is done.
func (f *Filler) Fill(ctx context.Context, level campaign.Level, target int, focus []string) (FillReport, error) {
	setID := level.ScenarioSetRef
	report := FillReport{LevelID: level.ID, SetID: setID}

	hands, err := f.cache.CachedHands(ctx, setID)
	if err != nil {
		return report, fmt.Errorf("read cached hands: %w", err)
	}
	report.Before = len(hands)
	report.After = len(hands)

	stalls := 0
	for report.After < target && stalls < f.MaxStalls {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Rounds++

		batch, err := f.gen.Generate(ctx, GenerateInput{
			Level:           level,
			Count:           target - report.After,
			PriorHands:      hands,
			FocusCategories: focus,
		})
		if batch != nil {
			report.Rejected += len(batch.Rejected)
			report.Usage.InputTokens += batch.Usage.InputTokens
			report.Usage.OutputTokens += batch.Usage.OutputTokens
			report.Usage.TotalTokens += batch.Usage.TotalTokens
			report.CostUSD += batch.Usage.Cost(batch.Model)
			for _, r := range batch.Rejected {
				f.log.Debug("generated scenario rejected", "level", level.ID, "err", r)
			}
		}
		if errors.Is(err, ErrNoValidScenarios) {
			stalls++
			continue
		}
		if err != nil {
			return report, err
		}

		saved, err := f.cache.SaveScenarios(ctx, setID, batch.Model, batch.Scenarios)
		if err != nil {
			return report, fmt.Errorf("save generated scenarios: %w", err)
		}
		if saved == 0 {
			stalls++
		} else {
			stalls = 0
		}
		report.After += saved
		for _, s := range batch.Scenarios {
			hands = append(hands, handKey(s.Hand, s.Position))
		}
		f.log.Info("generated scenarios", "level", level.ID, "saved", saved, "total", report.After, "target", target)
	}
	return report, nil
}
