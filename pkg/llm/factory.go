package llm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	// ErrMissingAPIKey means the provider's credential env var is empty.
	ErrMissingAPIKey = errors.New("llm: missing API key")
	// ErrUnknownProvider means neither the explicit provider name nor the
	// model prefix resolved to a supported vendor.
	ErrUnknownProvider = errors.New("llm: unknown provider")
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
)

var providerModelPrefixes = []struct {
	provider string
	prefixes []string
}{
	{ProviderAnthropic, []string{"claude-"}},
	{ProviderOpenAI, []string{"gpt-", "o1", "o3"}},
	{ProviderGoogle, []string{"gemini-"}},
}

// DetectProvider infers the vendor from the model identifier prefix.
func DetectProvider(model string) (string, error) {
	for _, entry := range providerModelPrefixes {
		for _, prefix := range entry.prefixes {
			if strings.HasPrefix(model, prefix) {
				return entry.provider, nil
			}
		}
	}
	return "", fmt.Errorf("%w: cannot detect provider for model %q, set generation.provider to anthropic, openai, or google", ErrUnknownProvider, model)
}

// NewClient builds a fresh adapter for the given model. An empty provider is
// inferred from the model prefix. No caching: one adapter per caller.
func NewClient(model string, maxTokens int, temperature float64, provider string, logger *slog.Logger) (Client, error) {
	if provider == "" {
		detected, err := DetectProvider(model)
		if err != nil {
			return nil, err
		}
		provider = detected
	}

	switch provider {
	case ProviderAnthropic:
		return NewAnthropicClient(model, maxTokens, temperature, logger)
	case ProviderOpenAI:
		return NewOpenAIClient(model, maxTokens, temperature, logger)
	case ProviderGoogle:
		return NewGeminiClient(model, maxTokens, temperature, logger)
	default:
		return nil, fmt.Errorf("%w: %q, use anthropic, openai, or google", ErrUnknownProvider, provider)
	}
}

// componentLogger returns a usable logger even when none was injected, so
// adapters stay quiet in tests without nil checks at every call site.
func componentLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
