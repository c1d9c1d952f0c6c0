package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	reasoning   bool
	retry       RetryPolicy
	logger      *slog.Logger
}

// NewOpenAIClient builds an adapter for the OpenAI chat completions API. The API key
// comes from OPENAI_API_KEY; a missing key fails at construction.
func NewOpenAIClient(model string, maxTokens int, temperature float64, logger *slog.Logger) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrMissingAPIKey)
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:      &client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		reasoning:   isReasoningModel(model),
		retry:       defaultRetryPolicy(openaiRetryable),
		logger:      componentLogger(logger),
	}, nil
}

// isReasoningModel reports whether the model rejects system messages and the
// max_tokens parameter (o1/o3 families).
func isReasoningModel(model string) bool {
	return strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3")
}

func openaiRetryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return isNetworkError(err)
}

func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (*GenerationResult, error) {
	c.logger.Info("generating content", "provider", "openai", "model", c.model, "max_tokens", c.maxTokens, "temperature", c.temperature)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
	}

	if c.reasoning {
		// Reasoning models take the system prompt prepended to the user message.
		params.Messages = []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(systemPrompt + "\n\n" + userPrompt),
		}
		params.MaxCompletionTokens = openai.Int(int64(c.maxTokens))
	} else {
		params.Messages = []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		}
		params.MaxTokens = openai.Int(int64(c.maxTokens))
		params.Temperature = openai.Float(c.temperature)
	}

	var resp *openai.ChatCompletion
	err := c.retry.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.client.Chat.Completions.New(ctx, params)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices")
	}

	inputTokens := int(resp.Usage.PromptTokens)
	outputTokens := int(resp.Usage.CompletionTokens)
	result := &GenerationResult{
		Text:          resp.Choices[0].Message.Content,
		Model:         c.model,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		TotalTokens:   inputTokens + outputTokens,
		EstimatedCost: estimateCost(c.model, inputTokens, outputTokens, openaiCosts),
	}

	c.logger.Info("generated content",
		"chars", len(result.Text), "input_tokens", inputTokens, "output_tokens", outputTokens, "cost_usd", result.EstimatedCost)
	return result, nil
}
