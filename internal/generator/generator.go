// Package generator orchestrates draft creation: it gathers stored context,
// renders prompts, drives the LLM adapter, applies safety and length
// constraints with bounded retries, and persists the resulting drafts.
package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sharmanirmal/social-plugin/internal/config"
	"github.com/sharmanirmal/social-plugin/internal/model"
	"github.com/sharmanirmal/social-plugin/pkg/llm"
	"github.com/sharmanirmal/social-plugin/pkg/safety"
)

const (
	recentDraftDays  = 10
	recentDraftLimit = 15
	feedbackDays     = 10
)

// DraftStore is the slice of the draft repository the generator needs.
type DraftStore interface {
	Create(draft *model.Draft) error
	Get(draftID string) (*model.Draft, error)
	UpdateContent(draftID string, content string, hashtags []string) (bool, error)
	GetRecentContents(days int, platform model.Platform, limit int) ([]string, error)
	GetRecentRejectionNotes(days int, platform model.Platform) ([]string, error)
	GetRecentApprovalNotes(days int, platform model.Platform) ([]string, error)
}

// ContextStore supplies trends and source documents gathered by ingestion.
type ContextStore interface {
	GetTrendsForDay(date string, limit int) ([]model.Trend, error)
	GetRecentSourceDocuments(hours int) ([]model.SourceDocument, error)
}

type Generator struct {
	cfg      config.Config
	llm      llm.Client
	safety   *safety.Checker
	drafts   DraftStore
	contexts ContextStore
	logger   *slog.Logger
}

// New wires a generator from explicit collaborators. Tests inject fakes here.
func New(cfg config.Config, client llm.Client, checker *safety.Checker, drafts DraftStore, contexts ContextStore, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		cfg:      cfg,
		llm:      client,
		safety:   checker,
		drafts:   drafts,
		contexts: contexts,
		logger:   logger,
	}
}

// NewFromConfig builds the LLM adapter and safety checker from configuration.
// A fresh adapter is built per generator; there is no client caching.
func NewFromConfig(cfg config.Config, drafts DraftStore, contexts ContextStore, logger *slog.Logger) (*Generator, error) {
	client, err := llm.NewClient(cfg.Generation.Model, cfg.Generation.MaxTokens, cfg.Generation.Temperature, cfg.Generation.Provider, logger)
	if err != nil {
		return nil, err
	}
	checker := safety.NewChecker(cfg.Safety.BlockedWords, cfg.Safety.ComplianceNote, logger)
	return New(cfg, client, checker, drafts, contexts, logger), nil
}

func (g *Generator) rules() Rules {
	return Rules{Do: g.cfg.Rules.Do, Dont: g.cfg.Rules.Dont}
}

// gatherContext pulls everything the user prompt can use for one platform.
func (g *Generator) gatherContext(platform model.Platform) (UserPromptParams, int, int, error) {
	today := time.Now().UTC().Format("2006-01-02")

	trends, err := g.contexts.GetTrendsForDay(today, g.cfg.Trends.MaxResults)
	if err != nil {
		return UserPromptParams{}, 0, 0, fmt.Errorf("load trends: %w", err)
	}

	sources, err := g.contexts.GetRecentSourceDocuments(g.cfg.Sources.CacheTTLHours)
	if err != nil {
		return UserPromptParams{}, 0, 0, fmt.Errorf("load sources: %w", err)
	}
	if len(sources) == 0 {
		g.logger.Warn("no source documents available, generating from trends and general knowledge only")
	}

	previous, err := g.drafts.GetRecentContents(recentDraftDays, platform, recentDraftLimit)
	if err != nil {
		return UserPromptParams{}, 0, 0, fmt.Errorf("load recent drafts: %w", err)
	}

	rejections, err := g.drafts.GetRecentRejectionNotes(feedbackDays, platform)
	if err != nil {
		return UserPromptParams{}, 0, 0, fmt.Errorf("load rejection notes: %w", err)
	}

	approvals, err := g.drafts.GetRecentApprovalNotes(feedbackDays, platform)
	if err != nil {
		return UserPromptParams{}, 0, 0, fmt.Errorf("load approval notes: %w", err)
	}

	return UserPromptParams{
		Topic:             g.cfg.Topics.Primary,
		Trends:            trends,
		Sources:           sources,
		PreviousDrafts:    previous,
		StyleExamples:     g.cfg.StyleExamples,
		RejectionFeedback: rejections,
		ApprovalFeedback:  approvals,
	}, len(trends), len(sources), nil
}

// generateChecked runs one LLM call plus the single corrective safety retry.
// Safety never blocks a draft: the second attempt is accepted as-is.
func (g *Generator) generateChecked(ctx context.Context, systemPrompt, userPrompt string) (*llm.GenerationResult, error) {
	result, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	check := g.safety.Check(result.Text)
	if !check.Safe {
		g.logger.Warn("draft failed safety check", "summary", check.Summary())
		if g.cfg.Safety.ProfanityFilter {
			result, err = g.llm.Generate(ctx,
				systemPrompt+"\n\nIMPORTANT: Avoid any profanity, vulgarity, or inappropriate language.",
				userPrompt)
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// GenerateTweet produces one tweet draft. Returns (nil, nil) when the content
// could not be brought under the platform ceiling; the over-length attempt is
// persisted as a failed draft so the spend stays recoverable.
func (g *Generator) GenerateTweet(ctx context.Context, tone string, dryRun bool) (*model.Draft, error) {
	if tone == "" {
		tone = g.cfg.Generation.DefaultTone
	}
	hashtags := g.cfg.HashtagsFor("twitter")
	maxLength := g.cfg.TweetMaxLength()

	systemPrompt := BuildTweetSystemPrompt(SystemPromptParams{
		MaxLength:      maxLength,
		Tone:           tone,
		Hashtags:       hashtags,
		ComplianceNote: g.cfg.Safety.ComplianceNote,
		Topic:          g.cfg.Topics.Primary,
		Rules:          g.rules(),
	})

	params, trendCount, sourceCount, err := g.gatherContext(model.PlatformTwitter)
	if err != nil {
		return nil, err
	}
	userPrompt := BuildUserPrompt("Twitter", params)

	result, err := g.generateChecked(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	draft := g.newDraft(model.PlatformTwitter, result, hashtags, tone, trendCount, sourceCount)

	if rendered := utf8.RuneCountInString(draft.DisplayContent()); rendered > maxLength {
		g.logger.Warn("tweet over length limit, retrying with stricter constraint", "chars", rendered, "limit", maxLength)
		result, err = g.llm.Generate(ctx,
			systemPrompt+fmt.Sprintf("\n\nCRITICAL: Your response MUST be under %d characters including hashtags.", maxLength),
			userPrompt)
		if err != nil {
			return nil, err
		}
		draft = g.newDraft(model.PlatformTwitter, result, hashtags, tone, trendCount, sourceCount)

		if rendered := utf8.RuneCountInString(draft.DisplayContent()); rendered > maxLength {
			g.logger.Error("tweet still over length limit, no draft produced", "chars", rendered, "limit", maxLength)
			if !dryRun {
				draft.Status = model.StatusFailed
				draft.ErrorMessage = fmt.Sprintf("content exceeds %d character limit (%d chars after retry)", maxLength, rendered)
				if err := g.drafts.Create(draft); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}
	}

	if dryRun {
		g.logger.Info("dry run, draft not persisted", "platform", "twitter", "preview", truncate(draft.Content, 100))
		return draft, nil
	}

	if err := g.drafts.Create(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GenerateLinkedIn produces one LinkedIn post draft.
func (g *Generator) GenerateLinkedIn(ctx context.Context, tone string, dryRun bool) (*model.Draft, error) {
	if tone == "" {
		tone = g.cfg.Generation.DefaultTone
	}
	hashtags := g.cfg.HashtagsFor("linkedin")

	systemPrompt := BuildLinkedInSystemPrompt(SystemPromptParams{
		MaxLength:      g.cfg.Generation.LinkedInPost.MaxLength,
		Tone:           tone,
		Hashtags:       hashtags,
		ComplianceNote: g.cfg.Safety.ComplianceNote,
		Topic:          g.cfg.Topics.Primary,
		Rules:          g.rules(),
	})

	params, trendCount, sourceCount, err := g.gatherContext(model.PlatformLinkedIn)
	if err != nil {
		return nil, err
	}
	userPrompt := BuildUserPrompt("LinkedIn", params)

	result, err := g.generateChecked(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	draft := g.newDraft(model.PlatformLinkedIn, result, hashtags, tone, trendCount, sourceCount)

	if dryRun {
		g.logger.Info("dry run, draft not persisted", "platform", "linkedin", "preview", truncate(draft.Content, 100))
		return draft, nil
	}

	if err := g.drafts.Create(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (g *Generator) newDraft(platform model.Platform, result *llm.GenerationResult, hashtags []string, tone string, trendCount, sourceCount int) *model.Draft {
	draft := model.NewDraft(platform, strings.TrimSpace(result.Text), hashtags, tone)
	draft.SourceReference = fmt.Sprintf("trends:%d,sources:%d", trendCount, sourceCount)
	draft.GenerationModel = result.Model
	draft.GenerationTokens = result.TotalTokens
	draft.GenerationCost = result.EstimatedCost
	return draft
}

// GenerateAll runs the configured per-platform counts, skipping disabled
// accounts. Length-violating calls yield fewer drafts, never an error.
func (g *Generator) GenerateAll(ctx context.Context, tone string, dryRun bool) ([]model.Draft, error) {
	var drafts []model.Draft

	if g.cfg.Accounts.Twitter.Enabled {
		for i := 0; i < g.cfg.Generation.Tweet.CountPerRun; i++ {
			draft, err := g.GenerateTweet(ctx, tone, dryRun)
			if err != nil {
				return drafts, err
			}
			if draft != nil {
				drafts = append(drafts, *draft)
			}
		}
	}

	if g.cfg.Accounts.LinkedIn.Enabled {
		for i := 0; i < g.cfg.Generation.LinkedInPost.CountPerRun; i++ {
			draft, err := g.GenerateLinkedIn(ctx, tone, dryRun)
			if err != nil {
				return drafts, err
			}
			if draft != nil {
				drafts = append(drafts, *draft)
			}
		}
	}

	return drafts, nil
}

// Regenerate rewrites an existing draft with a new tone, updating it in place.
// The rewrite always resets the draft to pending, re-opening rejected drafts.
// Returns (nil, nil) when the draft does not exist.
func (g *Generator) Regenerate(ctx context.Context, draftID, newTone string) (*model.Draft, error) {
	draft, err := g.drafts.Get(draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		g.logger.Error("draft not found", "draft_id", draftID)
		return nil, nil
	}

	var systemPrompt, platformName string
	if draft.Platform == model.PlatformTwitter {
		platformName = "tweet"
		systemPrompt = BuildTweetSystemPrompt(SystemPromptParams{
			Tone:      newTone,
			Hashtags:  draft.Hashtags,
			Topic:     g.cfg.Topics.Primary,
			Rules:     g.rules(),
			IsRewrite: true,
		})
	} else {
		platformName = "LinkedIn post"
		systemPrompt = BuildLinkedInSystemPrompt(SystemPromptParams{
			MaxLength: g.cfg.Generation.LinkedInPost.MaxLength,
			Tone:      newTone,
			Hashtags:  draft.Hashtags,
			Topic:     g.cfg.Topics.Primary,
			Rules:     g.rules(),
		})
	}

	result, err := g.llm.Generate(ctx, systemPrompt, BuildRegenPrompt(draft.Content, newTone, platformName))
	if err != nil {
		return nil, err
	}

	if check := g.safety.Check(result.Text); !check.Safe {
		g.logger.Warn("regenerated draft failed safety check", "summary", check.Summary())
	}

	if _, err := g.drafts.UpdateContent(draftID, strings.TrimSpace(result.Text), draft.Hashtags); err != nil {
		return nil, err
	}
	g.logger.Info("regenerated draft", "draft_id", draftID, "tone", newTone)

	// Re-fetch: the store owns the authoritative state.
	return g.drafts.Get(draftID)
}

// AddContext rewrites an existing draft to weave in new information, then
// updates it in place the same way Regenerate does.
func (g *Generator) AddContext(ctx context.Context, draftID, newContext string) (*model.Draft, error) {
	draft, err := g.drafts.Get(draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		g.logger.Error("draft not found", "draft_id", draftID)
		return nil, nil
	}

	var systemPrompt, platformName string
	if draft.Platform == model.PlatformTwitter {
		platformName = "tweet"
		systemPrompt = BuildTweetSystemPrompt(SystemPromptParams{
			Tone:      draft.Tone,
			Hashtags:  draft.Hashtags,
			Topic:     g.cfg.Topics.Primary,
			Rules:     g.rules(),
			IsRewrite: true,
		})
	} else {
		platformName = "LinkedIn post"
		systemPrompt = BuildLinkedInSystemPrompt(SystemPromptParams{
			MaxLength: g.cfg.Generation.LinkedInPost.MaxLength,
			Tone:      draft.Tone,
			Hashtags:  draft.Hashtags,
			Topic:     g.cfg.Topics.Primary,
			Rules:     g.rules(),
		})
	}

	result, err := g.llm.Generate(ctx, systemPrompt, BuildAddContextPrompt(draft.Content, newContext, platformName))
	if err != nil {
		return nil, err
	}

	if check := g.safety.Check(result.Text); !check.Safe {
		g.logger.Warn("rewritten draft failed safety check", "summary", check.Summary())
	}

	if _, err := g.drafts.UpdateContent(draftID, strings.TrimSpace(result.Text), draft.Hashtags); err != nil {
		return nil, err
	}
	g.logger.Info("added context to draft", "draft_id", draftID)

	return g.drafts.Get(draftID)
}
