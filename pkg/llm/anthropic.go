package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	retry       RetryPolicy
	logger      *slog.Logger
}

// NewAnthropicClient builds an adapter for the Anthropic Messages API. The API key
// comes from ANTHROPIC_API_KEY; a missing key fails here, not on the first call.
func NewAnthropicClient(model string, maxTokens int, temperature float64, logger *slog.Logger) (*AnthropicClient, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY not set", ErrMissingAPIKey)
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:      &client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		retry:       defaultRetryPolicy(anthropicRetryable),
		logger:      componentLogger(logger),
	}, nil
}

func anthropicRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return isNetworkError(err)
}

func (c *AnthropicClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (*GenerationResult, error) {
	c.logger.Info("generating content", "provider", "anthropic", "model", c.model, "max_tokens", c.maxTokens, "temperature", c.temperature)

	var resp *anthropic.Message
	err := c.retry.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(c.model),
			MaxTokens:   int64(c.maxTokens),
			Temperature: anthropic.Float(c.temperature),
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
			},
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("anthropic: empty response content")
	}

	inputTokens := int(resp.Usage.InputTokens)
	outputTokens := int(resp.Usage.OutputTokens)
	result := &GenerationResult{
		Text:          resp.Content[0].Text,
		Model:         c.model,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		TotalTokens:   inputTokens + outputTokens,
		EstimatedCost: estimateCost(c.model, inputTokens, outputTokens, anthropicCosts),
	}

	c.logger.Info("generated content",
		"chars", len(result.Text), "input_tokens", inputTokens, "output_tokens", outputTokens, "cost_usd", result.EstimatedCost)
	return result, nil
}
