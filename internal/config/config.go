// Package config loads the operator's YAML configuration, applying defaults
// for anything left unset. Credentials stay in the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Topics     TopicsConfig     `yaml:"topics"`
	Accounts   AccountsConfig   `yaml:"accounts"`
	Sources    SourcesConfig    `yaml:"sources"`
	Generation GenerationConfig `yaml:"generation"`
	Safety     SafetyConfig     `yaml:"safety"`
	Rules      RulesConfig      `yaml:"rules"`
	StyleExamples []string      `yaml:"style_examples"`
	Trends     TrendsConfig     `yaml:"trends"`
	Drafts     DraftsConfig     `yaml:"drafts"`
}

type TopicsConfig struct {
	Primary  string              `yaml:"primary"`
	Keywords []string            `yaml:"keywords"`
	Hashtags map[string][]string `yaml:"hashtags"`
}

type AccountConfig struct {
	Enabled        bool `yaml:"enabled"`
	XPremium       bool `yaml:"x_premium"`
	MaxPostsPerDay int  `yaml:"max_posts_per_day"`
}

type AccountsConfig struct {
	Twitter  AccountConfig `yaml:"twitter"`
	LinkedIn AccountConfig `yaml:"linkedin"`
}

type SourcesConfig struct {
	CacheTTLHours int `yaml:"cache_ttl_hours"`
}

type PlatformGenConfig struct {
	MaxLength   int `yaml:"max_length"`
	CountPerRun int `yaml:"count_per_run"`
}

type GenerationConfig struct {
	Provider     string            `yaml:"provider"` // empty = detect from model
	Model        string            `yaml:"model"`
	MaxTokens    int               `yaml:"max_tokens"`
	Temperature  float64           `yaml:"temperature"`
	DefaultTone  string            `yaml:"default_tone"`
	Tweet        PlatformGenConfig `yaml:"tweet"`
	LinkedInPost PlatformGenConfig `yaml:"linkedin_post"`
}

type SafetyConfig struct {
	ProfanityFilter bool     `yaml:"profanity_filter"`
	BlockedWords    []string `yaml:"blocked_words"`
	ComplianceNote  string   `yaml:"compliance_note"`
}

type RulesConfig struct {
	Do   []string `yaml:"do"`
	Dont []string `yaml:"dont"`
}

type TrendsConfig struct {
	RSSFeeds   []string `yaml:"rss_feeds"`
	MaxResults int      `yaml:"max_results"`
}

type DraftsConfig struct {
	ExpireAfterDays int `yaml:"expire_after_days"`
}

// Default returns the configuration used when the YAML file omits a value.
func Default() Config {
	return Config{
		Topics: TopicsConfig{
			Primary:  "Physical AI and Robotics",
			Keywords: []string{"physical AI", "robotics", "embodied AI"},
			Hashtags: map[string][]string{
				"twitter":  {"#PhysicalAI", "#Robotics"},
				"linkedin": {"#PhysicalAI", "#Robotics", "#AI"},
			},
		},
		Accounts: AccountsConfig{
			Twitter:  AccountConfig{Enabled: true, MaxPostsPerDay: 1},
			LinkedIn: AccountConfig{Enabled: true, MaxPostsPerDay: 1},
		},
		Sources: SourcesConfig{CacheTTLHours: 24},
		Generation: GenerationConfig{
			Model:        "claude-sonnet-4-5-20250929",
			MaxTokens:    4096,
			Temperature:  0.7,
			DefaultTone:  "informative, thought-provoking, professional",
			Tweet:        PlatformGenConfig{MaxLength: 280, CountPerRun: 1},
			LinkedInPost: PlatformGenConfig{MaxLength: 3000, CountPerRun: 1},
		},
		Safety: SafetyConfig{ProfanityFilter: true},
		Rules: RulesConfig{
			Do: []string{
				"Include specific data points or statistics when available",
				"Reference the source or study when citing facts",
			},
			Dont: []string{
				"Never use clickbait or sensationalist language",
				"Avoid generic hype phrases like 'revolutionize' or 'game-changer'",
			},
		},
		Trends: TrendsConfig{
			RSSFeeds:   []string{"https://news.google.com/rss/search?q=physical+AI+robotics"},
			MaxResults: 20,
		},
		Drafts: DraftsConfig{ExpireAfterDays: 7},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not an
// error: the defaults apply as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// HashtagsFor returns the configured hashtag list for a platform key.
func (c Config) HashtagsFor(platform string) []string {
	return c.Topics.Hashtags[platform]
}

// TweetMaxLength honors the premium tier's long-form ceiling when no explicit
// limit was configured.
func (c Config) TweetMaxLength() int {
	if c.Generation.Tweet.MaxLength > 0 {
		return c.Generation.Tweet.MaxLength
	}
	if c.Accounts.Twitter.XPremium {
		return 25000
	}
	return 280
}
