package scengen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/drillz/internal/llm"
	"github.com/abhisek/drillz/internal/scenario"
)

// ErrNoValidScenarios is returned when every scenario in a batch was
// rejected.
var ErrNoValidScenarios = errors.New("no valid scenarios generated")

// Generator produces validated scenarios for a level.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*Batch, error)
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type batchOutput struct {
	Scenarios []struct {
		Hand          string               `json:"hand"`
		Position      string               `json:"position"`
		Situation     string               `json:"situation"`
		CorrectAction scenario.Action      `json:"correct_action"`
		Alternates    []scenario.Alternate `json:"alternates"`
		Explanation   string               `json:"explanation"`
		Category      string               `json:"category"`
	} `json:"scenarios"`
}

// Generate requests one batch and keeps the scenarios that pass every
// validator. Hands repeated within the batch are rejected as duplicates.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Batch, error) {
	ctx = llm.WithLevel(llm.WithPurpose(ctx, llm.PurposeScenarioGen), input.Level.ID)
	if input.Count <= 0 || input.Count > g.config.BatchSize {
		input.Count = g.config.BatchSize
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)}},
		Schema:      ScenarioBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	batch := &Batch{Model: resp.Model, Usage: resp.Usage}
	prior := input.PriorHands
	for _, out := range raw.Scenarios {
		s := scenario.Scenario{
			Key:           scenarioKey(input.Level.ScenarioSetRef, out.Hand, out.Position),
			Hand:          strings.TrimSpace(out.Hand),
			Position:      strings.ToUpper(strings.TrimSpace(out.Position)),
			Situation:     strings.TrimSpace(out.Situation),
			CorrectAction: out.CorrectAction,
			Alternates:    out.Alternates,
			Explanation:   strings.TrimSpace(out.Explanation),
			Category:      strings.ToLower(strings.TrimSpace(out.Category)),
		}

		in := input
		in.PriorHands = prior
		if verr := g.validate(&s, in); verr != nil {
			batch.Rejected = append(batch.Rejected, verr)
			continue
		}
		batch.Scenarios = append(batch.Scenarios, s)
		prior = append(prior, handKey(s.Hand, s.Position))
	}

	if len(batch.Scenarios) == 0 {
		return batch, ErrNoValidScenarios
	}
	return batch, nil
}

func (g *LLMGenerator) validate(s *scenario.Scenario, input GenerateInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(s, input); verr != nil {
			return verr
		}
	}
	return nil
}

// scenarioKey derives a stable key so regenerating the same hand and seat
// lands on the same cache row.
func scenarioKey(setID, hand, position string) string {
	return fmt.Sprintf("gen-%s-%s-%s", setID,
		strings.ToLower(strings.TrimSpace(position)),
		strings.ToLower(strings.TrimSpace(hand)))
}
