package generator

import (
	"fmt"
	"strings"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

// Prompt assembly is pure string work: each section is an optional fragment and
// the final prompt joins only the fragments that exist, so absent inputs never
// leave empty headers or stray blank lines behind.

const (
	defaultTopic          = "Physical AI and Robotics"
	defaultTweetTone      = "informative, thought-provoking, professional"
	defaultLinkedInTone   = "thought-leadership, conversational"
	defaultComplianceNote = "No disclaimers needed."
	hashtagFallback       = "relevant hashtags of your choosing"

	trendSummaryMaxChars  = 200
	sourceContentMaxChars = 500
	maxTrendsInPrompt     = 5
	maxSourcesInPrompt    = 3
	maxStyleExamples      = 3
)

// Rules is the operator's DO/DON'T content rules.
type Rules struct {
	Do   []string
	Dont []string
}

func (r Rules) empty() bool {
	return len(r.Do) == 0 && len(r.Dont) == 0
}

// SystemPromptParams configures the per-platform system prompt.
type SystemPromptParams struct {
	MaxLength      int
	Tone           string
	Hashtags       []string
	ComplianceNote string
	Topic          string
	Rules          Rules
	IsRewrite      bool // rewrite mode relaxes the length constraint
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func hashtagPhrase(hashtags []string) string {
	if len(hashtags) == 0 {
		return hashtagFallback
	}
	return strings.Join(hashtags, ", ")
}

// BuildRulesSection renders the operator's content rules, omitting any empty
// sub-list and returning "" when there are no rules at all.
func BuildRulesSection(rules Rules) string {
	if rules.empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("Content rules:")
	if len(rules.Do) > 0 {
		b.WriteString("\nDO:")
		for _, r := range rules.Do {
			b.WriteString("\n- " + r)
		}
	}
	if len(rules.Dont) > 0 {
		b.WriteString("\nDON'T:")
		for _, r := range rules.Dont {
			b.WriteString("\n- " + r)
		}
	}
	return b.String()
}

// BuildTweetSystemPrompt renders the system prompt for tweet generation.
func BuildTweetSystemPrompt(p SystemPromptParams) string {
	topic := orDefault(p.Topic, defaultTopic)
	tone := orDefault(p.Tone, defaultTweetTone)
	maxLength := p.MaxLength
	if maxLength == 0 {
		maxLength = 280
	}

	var lengthNote string
	switch {
	case p.IsRewrite:
		lengthNote = "- Length is flexible for this rewrite; keep it tweet-appropriate"
	case maxLength > 280:
		lengthNote = fmt.Sprintf("- Stay within %d characters (including hashtags); aim for 200-600 characters unless the material justifies more", maxLength)
	default:
		lengthNote = fmt.Sprintf("- Stay within %d characters (including hashtags)", maxLength)
	}

	lines := []string{
		fmt.Sprintf("You are an expert social media strategist specializing in %s content.", topic),
		"You create concise, engaging tweets that drive engagement in the tech community.",
		"",
		"Guidelines:",
		"- Write exactly ONE tweet",
		lengthNote,
		"- Be insightful and thought-provoking, not generic",
		fmt.Sprintf("- Use a %s tone", tone),
		fmt.Sprintf("- Include 1-2 relevant hashtags from: %s", hashtagPhrase(p.Hashtags)),
		"- Reference specific trends or findings when possible",
		"- No emojis unless they add genuine value",
		"- " + orDefault(p.ComplianceNote, defaultComplianceNote),
	}

	if section := BuildRulesSection(p.Rules); section != "" {
		lines = append(lines, "", section)
	}

	lines = append(lines, "", "Output ONLY the tweet text, nothing else. No quotes, no labels, no explanations.")
	return strings.Join(lines, "\n")
}

// BuildLinkedInSystemPrompt renders the system prompt for LinkedIn posts.
func BuildLinkedInSystemPrompt(p SystemPromptParams) string {
	topic := orDefault(p.Topic, defaultTopic)
	tone := orDefault(p.Tone, defaultLinkedInTone)
	maxLength := p.MaxLength
	if maxLength == 0 {
		maxLength = 3000
	}

	lengthNote := fmt.Sprintf("- Stay within %d characters", maxLength)
	if p.IsRewrite {
		lengthNote = "- Length is flexible for this rewrite; keep it post-appropriate"
	}

	lines := []string{
		fmt.Sprintf("You are an expert social media strategist specializing in %s content.", topic),
		"You create engaging LinkedIn posts that establish thought leadership.",
		"",
		"Guidelines:",
		"- Write exactly ONE LinkedIn post",
		lengthNote,
		fmt.Sprintf("- Use a %s tone", tone),
		"- Use line breaks for readability (LinkedIn rewards this)",
		"- Start with a hook that grabs attention",
		"- Include personal perspective or insight",
		"- End with a question to drive comments",
		fmt.Sprintf("- Include 2-3 relevant hashtags from: %s", hashtagPhrase(p.Hashtags)),
		"- " + orDefault(p.ComplianceNote, defaultComplianceNote),
	}

	if section := BuildRulesSection(p.Rules); section != "" {
		lines = append(lines, "", section)
	}

	lines = append(lines, "", "Output ONLY the post text, nothing else. No quotes, no labels, no explanations.")
	return strings.Join(lines, "\n")
}

// UserPromptParams carries the generation context. Every collection is
// independently optional.
type UserPromptParams struct {
	Topic             string
	Trends            []model.Trend
	Sources           []model.SourceDocument
	PreviousDrafts    []string
	StyleExamples     []string
	RejectionFeedback []string
	ApprovalFeedback  []string
	AdditionalContext string
}

// BuildUserPrompt assembles the user prompt for a platform ("Twitter" or
// "LinkedIn") from whatever context is available.
func BuildUserPrompt(platform string, p UserPromptParams) string {
	topic := orDefault(p.Topic, defaultTopic)

	sections := []string{
		fmt.Sprintf("Create a %s post about %s.", platform, topic),
		trendsSection(p.Trends, topic),
		sourcesSection(p.Sources),
		styleExamplesSection(p.StyleExamples),
		previousDraftsSection(p.PreviousDrafts),
		rejectionFeedbackSection(p.RejectionFeedback),
		approvalFeedbackSection(p.ApprovalFeedback),
		urlInstruction(platform),
		strings.TrimSpace(p.AdditionalContext),
	}

	var present []string
	for _, s := range sections {
		if s != "" {
			present = append(present, s)
		}
	}
	return strings.Join(present, "\n\n")
}

func trendsSection(trends []model.Trend, topic string) string {
	if len(trends) == 0 {
		return fmt.Sprintf("No specific trends available — write about a general %s topic.", topic)
	}

	var lines []string
	for i, t := range trends {
		if i >= maxTrendsInPrompt {
			break
		}
		line := "- " + t.Title
		if t.Summary != "" {
			line += ": " + truncate(t.Summary, trendSummaryMaxChars)
		}
		if t.URL != "" {
			line += " (" + t.URL + ")"
		}
		lines = append(lines, line)
	}
	return "Recent trending topics:\n" + strings.Join(lines, "\n")
}

func sourcesSection(sources []model.SourceDocument) string {
	if len(sources) == 0 {
		return "No reference documents available — rely on the trending topics and your general knowledge."
	}

	var blocks []string
	for i, s := range sources {
		if i >= maxSourcesInPrompt {
			break
		}
		title := orDefault(s.Title, "Source")
		header := "--- " + title
		if s.SourcePath != "" {
			header += " (source: " + s.SourcePath + ")"
		}
		header += " ---"
		blocks = append(blocks, header+"\n"+truncate(s.Content, sourceContentMaxChars))
	}
	return "Reference material:\n" + strings.Join(blocks, "\n\n")
}

func styleExamplesSection(examples []string) string {
	if len(examples) == 0 {
		return ""
	}

	var lines []string
	for i, ex := range examples {
		if i >= maxStyleExamples {
			break
		}
		lines = append(lines, fmt.Sprintf("Example %d: %s", i+1, ex))
	}
	return "Match this voice and style in your writing:\n" + strings.Join(lines, "\n")
}

func previousDraftsSection(previous []string) string {
	if len(previous) == 0 {
		return ""
	}

	var lines []string
	for _, p := range previous {
		lines = append(lines, "- "+p)
	}
	return "You have already generated these recent posts. Create something SUBSTANTIALLY different in topic and angle:\n" +
		strings.Join(lines, "\n")
}

func rejectionFeedbackSection(feedback []string) string {
	if len(feedback) == 0 {
		return ""
	}

	var lines []string
	for _, f := range feedback {
		lines = append(lines, "- "+f)
	}
	return "Reviewer feedback on rejected drafts — things to AVOID:\n" + strings.Join(lines, "\n")
}

func approvalFeedbackSection(feedback []string) string {
	if len(feedback) == 0 {
		return ""
	}

	var lines []string
	for _, f := range feedback {
		lines = append(lines, "- "+f)
	}
	return "Reviewer feedback on approved drafts — things that worked WELL:\n" + strings.Join(lines, "\n")
}

func urlInstruction(platform string) string {
	if platform == "Twitter" {
		return "If you reference a specific trend or article, include the source URL in the tweet."
	}
	return "If you reference specific trends or articles, cite the source URLs in the post."
}

// BuildRegenPrompt asks for a rewrite of an existing draft with a new tone.
func BuildRegenPrompt(originalContent, newTone, platform string) string {
	return fmt.Sprintf(
		"Rewrite the following %s post with a '%s' tone. Keep the same core message and facts, "+
			"but restructure it so it reads genuinely different, not just reworded.\n\n"+
			"Original:\n%s\n\n"+
			"Rewrite it now. Output ONLY the rewritten text, nothing else.",
		platform, newTone, originalContent)
}

// BuildAddContextPrompt asks for a rewrite that works new information into an
// existing draft.
func BuildAddContextPrompt(originalContent, newContext, platform string) string {
	return fmt.Sprintf(
		"Substantially rewrite the following %s post to incorporate the new information. "+
			"Do NOT simply append it — weave it into the core message.\n\n"+
			"Original:\n%s\n\n"+
			"New information:\n%s\n\n"+
			"Output ONLY the rewritten text, nothing else.",
		platform, originalContent, newContext)
}
