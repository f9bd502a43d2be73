package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt. Scenario generation is
// the only consumer; it always sends a Schema.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the returned Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for its native structured output
	// and enables response validation. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case, e.g. "preflop-scenarios". It doubles as the cache
	// key for the compiled validator.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the provider output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Cost estimates the USD cost of the usage for the given model. It returns
// zero for models missing from the pricing table.
func (u Usage) Cost(modelID string) float64 {
	c := LookupCost(modelID)
	if c == nil {
		return 0
	}
	return c.Cost(u.InputTokens, u.OutputTokens)
}
