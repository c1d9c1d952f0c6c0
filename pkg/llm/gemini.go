package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Google exposes Gemini models through an OpenAI-compatible chat completions
// endpoint, so this adapter reuses the openai-go SDK with a different base URL.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

type GeminiClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	retry       RetryPolicy
	logger      *slog.Logger
}

// NewGeminiClient builds an adapter for the Gemini API. The API key comes from
// GOOGLE_API_KEY; a missing key fails at construction.
func NewGeminiClient(model string, maxTokens int, temperature float64, logger *slog.Logger) (*GeminiClient, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_API_KEY not set", ErrMissingAPIKey)
	}

	client := openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(geminiBaseURL))
	return &GeminiClient{
		client:      &client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		retry:       defaultRetryPolicy(geminiRetryable),
		logger:      componentLogger(logger),
	}, nil
}

func geminiRetryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return isNetworkError(err)
}

func (c *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (*GenerationResult, error) {
	c.logger.Info("generating content", "provider", "google", "model", c.model, "max_tokens", c.maxTokens, "temperature", c.temperature)

	var resp *openai.ChatCompletion
	err := c.retry.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(userPrompt),
			},
			MaxTokens:   openai.Int(int64(c.maxTokens)),
			Temperature: openai.Float(c.temperature),
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("gemini: empty choices")
	}

	inputTokens := int(resp.Usage.PromptTokens)
	outputTokens := int(resp.Usage.CompletionTokens)
	result := &GenerationResult{
		Text:          resp.Choices[0].Message.Content,
		Model:         c.model,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		TotalTokens:   inputTokens + outputTokens,
		EstimatedCost: estimateCost(c.model, inputTokens, outputTokens, googleCosts),
	}

	c.logger.Info("generated content",
		"chars", len(result.Text), "input_tokens", inputTokens, "output_tokens", outputTokens, "cost_usd", result.EstimatedCost)
	return result, nil
}
