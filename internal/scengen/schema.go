package scengen

import "github.com/abhisek/drillz/internal/llm"

// ScenarioBatchSchema is the structured output requested from the model.
var ScenarioBatchSchema = &llm.Schema{
	Name:        "preflop-scenarios",
	Description: "A batch of labeled preflop poker decisions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scenarios": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"hand": map[string]any{
							"type":        "string",
							"description": "Hole cards in shorthand, higher rank first: AKs, T9o, 77",
						},
						"position": map[string]any{
							"type": "string",
							"enum": []any{"UTG", "UTG+1", "MP", "LJ", "HJ", "CO", "BTN", "SB", "BB"},
						},
						"situation": map[string]any{
							"type":        "string",
							"description": "The action before the hero, e.g. \"CO opens 2.5bb, folds to you\"",
						},
						"correct_action": map[string]any{
							"type": "string",
							"enum": []any{"fold", "call", "raise"},
						},
						"alternates": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"action": map[string]any{"type": "string", "enum": []any{"fold", "call", "raise"}},
									"note":   map[string]any{"type": "string"},
								},
								"required":             []any{"action", "note"},
								"additionalProperties": false,
							},
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why the correct action wins",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "Short lowercase leak category, e.g. open, defend, 3bet, push",
						},
					},
					"required":             []any{"hand", "position", "situation", "correct_action", "alternates", "explanation", "category"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"scenarios"},
		"additionalProperties": false,
	},
}
