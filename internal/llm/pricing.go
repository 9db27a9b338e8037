package llm

import "strings"

// ModelCost holds per-million-token pricing for a model in USD.
// Image and PDF inputs are billed as input tokens by every provider used
// here, so two rates are enough.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter IDs ("google/gemini-2.5-flash") are matched on the part after
// the vendor prefix, and dated snapshots fall back to their base model.
func LookupCost(modelID string) *ModelCost {
	id := modelID
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	for id != "" {
		if c, ok := modelCosts[id]; ok {
			return &c
		}
		i := strings.LastIndex(id, "-")
		if i < 0 {
			break
		}
		id = id[:i]
	}
	return nil
}

// modelCosts covers the models the solver is configured with by default
// and their common alternatives. Last updated: 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Gemini, the default provider.
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash":        {0.5, 3},
	"gemini-3-pro":          {2, 12},
	"gemini-flash-latest":   {0.3, 2.5},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"o4-mini":      {1.1, 4.4},

	// Anthropic
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-5":   {5, 25},
}
