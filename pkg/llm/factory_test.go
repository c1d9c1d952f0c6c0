package llm

import (
	"errors"
	"testing"
)

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		model   string
		want    string
		wantErr bool
	}{
		{model: "claude-sonnet-4-6", want: ProviderAnthropic},
		{model: "claude-x", want: ProviderAnthropic},
		{model: "gpt-4o", want: ProviderOpenAI},
		{model: "o1-mini", want: ProviderOpenAI},
		{model: "o3-mini", want: ProviderOpenAI},
		{model: "gemini-2.0-flash", want: ProviderGoogle},
		{model: "unknown-model", wantErr: true},
		{model: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, err := DetectProvider(tt.model)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownProvider) {
					t.Fatalf("DetectProvider(%q) error = %v, want ErrUnknownProvider", tt.model, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectProvider(%q) unexpected error: %v", tt.model, err)
			}
			if got != tt.want {
				t.Errorf("DetectProvider(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewClientUnknownExplicitProvider(t *testing.T) {
	_, err := NewClient("gpt-4o", 4096, 0.7, "azure", nil)
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("error = %v, want ErrUnknownProvider", err)
	}
}

func TestNewClientMissingAPIKey(t *testing.T) {
	tests := []struct {
		model  string
		envVar string
	}{
		{model: "claude-sonnet-4-6", envVar: "ANTHROPIC_API_KEY"},
		{model: "gpt-4o", envVar: "OPENAI_API_KEY"},
		{model: "gemini-2.0-flash", envVar: "GOOGLE_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			t.Setenv(tt.envVar, "")
			_, err := NewClient(tt.model, 4096, 0.7, "", nil)
			if !errors.Is(err, ErrMissingAPIKey) {
				t.Fatalf("error = %v, want ErrMissingAPIKey", err)
			}
		})
	}
}

func TestNewClientReturnsAdapter(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	client, err := NewClient("claude-sonnet-4-6", 4096, 0.7, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(*AnthropicClient); !ok {
		t.Errorf("client = %T, want *AnthropicClient", client)
	}
}

func TestIsReasoningModel(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"o1", true},
		{"o1-mini", true},
		{"o3-mini", true},
		{"gpt-4o", false},
		{"gpt-4-turbo", false},
	}

	for _, tt := range tests {
		if got := isReasoningModel(tt.model); got != tt.want {
			t.Errorf("isReasoningModel(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
