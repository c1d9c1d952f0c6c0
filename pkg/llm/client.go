package llm

import "context"

// GenerationResult describes the outcome of a single LLM call.
type GenerationResult struct {
	Text          string
	Model         string
	InputTokens   int
	OutputTokens  int
	TotalTokens   int
	EstimatedCost float64
}

// Client is the single contract every provider adapter satisfies. Vendor-specific
// request shaping (system-role handling, token parameter names) stays inside the
// adapter so callers see identical behavior regardless of provider.
type Client interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (*GenerationResult, error)
}
