package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generation.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("model = %q, want default", cfg.Generation.Model)
	}
	if cfg.Generation.Tweet.MaxLength != 280 {
		t.Errorf("tweet max length = %d, want 280", cfg.Generation.Tweet.MaxLength)
	}
	if !cfg.Safety.ProfanityFilter {
		t.Error("profanity filter should default on")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
generation:
  model: gpt-4o
  temperature: 0.3
topics:
  primary: Quantum Computing
safety:
  blocked_words: [scam]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generation.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.Generation.Model)
	}
	if cfg.Topics.Primary != "Quantum Computing" {
		t.Errorf("topic = %q", cfg.Topics.Primary)
	}
	if len(cfg.Safety.BlockedWords) != 1 || cfg.Safety.BlockedWords[0] != "scam" {
		t.Errorf("blocked words = %v", cfg.Safety.BlockedWords)
	}
	// Untouched sections keep their defaults.
	if cfg.Generation.MaxTokens != 4096 {
		t.Errorf("max tokens = %d, want default 4096", cfg.Generation.MaxTokens)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("generation: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestTweetMaxLength(t *testing.T) {
	cfg := Default()
	if got := cfg.TweetMaxLength(); got != 280 {
		t.Errorf("standard account = %d, want 280", got)
	}

	cfg.Generation.Tweet.MaxLength = 0
	cfg.Accounts.Twitter.XPremium = true
	if got := cfg.TweetMaxLength(); got != 25000 {
		t.Errorf("premium account = %d, want 25000", got)
	}

	cfg.Generation.Tweet.MaxLength = 500
	if got := cfg.TweetMaxLength(); got != 500 {
		t.Errorf("explicit limit = %d, want 500", got)
	}
}
