package llm

import "context"

type (
	purposeKey struct{}
	levelKey   struct{}
)

// Purposes recorded on LLM request events.
const (
	PurposeScenarioGen = "scenario-gen"
	PurposeUnknown     = "unknown"
)

// tagHeader carries RequestTag on providers without a request metadata field.
const tagHeader = "X-Drillz-Request"

// WithPurpose labels every request made with ctx for the event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

// WithLevel records the campaign level a request is made for.
func WithLevel(ctx context.Context, levelID string) context.Context {
	return context.WithValue(ctx, levelKey{}, levelID)
}

// LevelFrom returns the level recorded by WithLevel, or "".
func LevelFrom(ctx context.Context) string {
	v, _ := ctx.Value(levelKey{}).(string)
	return v
}

// RequestTag is the opaque label sent upstream with each request, such as
// "drillz/scenario-gen/btn-open-100". It never carries user data.
func RequestTag(ctx context.Context) string {
	tag := "drillz/" + PurposeFrom(ctx)
	if level := LevelFrom(ctx); level != "" {
		tag += "/" + level
	}
	return tag
}
