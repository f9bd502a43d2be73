package scengen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a poker coach writing preflop drills for a No-Limit Hold'em cash game and tournament trainer.

Rules:
- Each scenario is a single preflop decision with exactly one best action: fold, call or raise.
- Use standard solver-approved ranges for the stated stack depth. Do not invent exotic lines.
- Write hands in shorthand with the higher rank first: AKs, T9o, 77.
- The situation describes only the action before the hero, in plain ASCII.
- Alternates list the other actions with one short sentence each on why they lose.
- Mix clear decisions with close ones near the edge of the range.
- Do not repeat any hand/position pair from the "already in the set" list.`

// buildUserMessage renders the generation request for a level.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Level: %s\n", input.Level.Name)
	fmt.Fprintf(&b, "Content set: %s\n", input.Level.ScenarioSetRef)
	fmt.Fprintf(&b, "Hero position: %s\n", input.Level.Position)
	fmt.Fprintf(&b, "Effective stack: %dbb\n", input.Level.StakeDepth)
	fmt.Fprintf(&b, "Scenarios wanted: %d\n", input.Count)

	if len(input.FocusCategories) > 0 {
		fmt.Fprintf(&b, "Emphasize these categories: %s\n", strings.Join(input.FocusCategories, ", "))
	}

	b.WriteString("\nAlready in the set:\n")
	b.WriteString(numbered(input.PriorHands, cfg.MaxPriorHands))
	return b.String()
}

// numbered lists the most recent max items, or "None".
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it)
	}
	return strings.TrimRight(b.String(), "\n")
}
