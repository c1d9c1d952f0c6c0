package generator

import (
	"strings"
	"testing"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

func TestTweetSystemPrompt(t *testing.T) {
	prompt := BuildTweetSystemPrompt(SystemPromptParams{MaxLength: 280, Tone: "casual", Hashtags: []string{"#AI"}})
	for _, want := range []string{"280", "casual", "#AI"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestTweetSystemPromptDefaults(t *testing.T) {
	prompt := BuildTweetSystemPrompt(SystemPromptParams{Tone: "professional"})
	if !strings.Contains(prompt, "280") {
		t.Error("default max length should be 280")
	}
	if !strings.Contains(strings.ToLower(prompt), "concise") {
		t.Error("prompt should mention concise tweets")
	}
	if !strings.Contains(prompt, "No disclaimers needed.") {
		t.Error("blank compliance note should fall back to the default")
	}
}

func TestTweetSystemPromptLongForm(t *testing.T) {
	prompt := BuildTweetSystemPrompt(SystemPromptParams{MaxLength: 25000})
	if !strings.Contains(prompt, "25000") {
		t.Error("prompt should state the premium ceiling")
	}
	if !strings.Contains(prompt, "200-600 characters") {
		t.Error("long-form prompt should suggest a practical length")
	}
}

func TestTweetSystemPromptRewriteMode(t *testing.T) {
	prompt := BuildTweetSystemPrompt(SystemPromptParams{IsRewrite: true})
	if !strings.Contains(strings.ToLower(prompt), "flexible") {
		t.Error("rewrite mode should relax the length constraint")
	}
	if strings.Contains(prompt, "280") {
		t.Error("rewrite mode should not state a hard limit")
	}
}

func TestLinkedInSystemPrompt(t *testing.T) {
	prompt := BuildLinkedInSystemPrompt(SystemPromptParams{MaxLength: 3000, Tone: "professional"})
	for _, want := range []string{"3000", "professional"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(strings.ToLower(prompt), "question") {
		t.Error("LinkedIn prompt should ask for a closing question")
	}
}

func TestSystemPromptCustomTopic(t *testing.T) {
	tweet := BuildTweetSystemPrompt(SystemPromptParams{Topic: "Quantum Computing"})
	linkedin := BuildLinkedInSystemPrompt(SystemPromptParams{Topic: "Quantum Computing"})
	user := BuildUserPrompt("Twitter", UserPromptParams{Topic: "Quantum Computing"})

	for name, prompt := range map[string]string{"tweet": tweet, "linkedin": linkedin, "user": user} {
		if !strings.Contains(prompt, "Quantum Computing") {
			t.Errorf("%s prompt missing custom topic", name)
		}
		if strings.Contains(prompt, "Physical AI") {
			t.Errorf("%s prompt should not fall back to the default topic", name)
		}
	}
}

func TestSystemPromptEmptyHashtagsFallback(t *testing.T) {
	prompt := BuildTweetSystemPrompt(SystemPromptParams{Hashtags: nil})
	if !strings.Contains(prompt, "relevant hashtags") {
		t.Error("empty hashtag list should use the fallback phrase")
	}
}

func TestBuildRulesSection(t *testing.T) {
	tests := []struct {
		name        string
		rules       Rules
		wantDo      bool
		wantDont    bool
		wantPresent bool
	}{
		{
			name:        "both lists",
			rules:       Rules{Do: []string{"Use data points"}, Dont: []string{"No clickbait"}},
			wantDo:      true,
			wantDont:    true,
			wantPresent: true,
		},
		{
			name:        "do only",
			rules:       Rules{Do: []string{"Use data points"}},
			wantDo:      true,
			wantPresent: true,
		},
		{
			name:        "dont only",
			rules:       Rules{Dont: []string{"No hype"}},
			wantDont:    true,
			wantPresent: true,
		},
		{
			name:  "empty",
			rules: Rules{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := BuildRulesSection(tt.rules)
			if !tt.wantPresent {
				if section != "" {
					t.Fatalf("section = %q, want empty", section)
				}
				return
			}
			if !strings.Contains(section, "Content rules:") {
				t.Error("section missing header")
			}
			if got := strings.Contains(section, "DO:"); got != tt.wantDo {
				t.Errorf("DO present = %v, want %v", got, tt.wantDo)
			}
			if got := strings.Contains(section, "DON'T:"); got != tt.wantDont {
				t.Errorf("DON'T present = %v, want %v", got, tt.wantDont)
			}
		})
	}
}

func TestSystemPromptsIncludeRules(t *testing.T) {
	rules := Rules{Do: []string{"Be specific"}, Dont: []string{"No hype"}}
	for name, prompt := range map[string]string{
		"tweet":    BuildTweetSystemPrompt(SystemPromptParams{Rules: rules}),
		"linkedin": BuildLinkedInSystemPrompt(SystemPromptParams{Rules: rules}),
	} {
		for _, want := range []string{"Content rules:", "Be specific", "No hype"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("%s prompt missing %q", name, want)
			}
		}
	}
}

func TestUserPromptWithTrends(t *testing.T) {
	trends := []model.Trend{{Title: "Robot breakthrough", Summary: "New robot achieves...", URL: "https://example.com/article"}}
	prompt := BuildUserPrompt("Twitter", UserPromptParams{Trends: trends})
	for _, want := range []string{"Robot breakthrough", "Twitter", "https://example.com/article"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestUserPromptWithoutTrendsFallback(t *testing.T) {
	prompt := BuildUserPrompt("LinkedIn", UserPromptParams{})
	if !strings.Contains(prompt, "No specific trends") {
		t.Error("prompt should state the no-trends fallback")
	}
}

func TestUserPromptCapsTrendsAtFive(t *testing.T) {
	var trends []model.Trend
	for _, title := range []string{"one", "two", "three", "four", "five", "six"} {
		trends = append(trends, model.Trend{Title: "trend-" + title})
	}
	prompt := BuildUserPrompt("Twitter", UserPromptParams{Trends: trends})
	if strings.Contains(prompt, "trend-six") {
		t.Error("prompt should only include the top 5 trends")
	}
	if !strings.Contains(prompt, "trend-five") {
		t.Error("prompt should include the fifth trend")
	}
}

func TestUserPromptWithSources(t *testing.T) {
	sources := []model.SourceDocument{{Title: "Paper", Content: "Interesting findings about embodied AI...", SourcePath: "/docs/paper.pdf"}}
	prompt := BuildUserPrompt("Twitter", UserPromptParams{Sources: sources})
	for _, want := range []string{"Paper", "embodied AI", "/docs/paper.pdf", "source:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestUserPromptNoSourcesNote(t *testing.T) {
	prompt := BuildUserPrompt("Twitter", UserPromptParams{})
	if !strings.Contains(prompt, "No reference documents available") {
		t.Error("prompt should state that no reference material exists")
	}
}

func TestUserPromptTruncatesSourceContent(t *testing.T) {
	long := strings.Repeat("x", 2000)
	prompt := BuildUserPrompt("Twitter", UserPromptParams{
		Sources: []model.SourceDocument{{Title: "Big", Content: long}},
	})
	if strings.Contains(prompt, strings.Repeat("x", 501)) {
		t.Error("source content should be truncated to 500 characters")
	}
}

func TestUserPromptPreviousDrafts(t *testing.T) {
	previous := []string{"Previous tweet about robotics advances", "Another tweet about embodied AI"}
	prompt := BuildUserPrompt("Twitter", UserPromptParams{PreviousDrafts: previous})
	if !strings.Contains(prompt, "SUBSTANTIALLY different") {
		t.Error("prompt should demand a substantially different post")
	}
	for _, want := range previous {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestUserPromptOmitsPreviousDraftsWhenEmpty(t *testing.T) {
	prompt := BuildUserPrompt("Twitter", UserPromptParams{})
	if strings.Contains(prompt, "already generated") {
		t.Error("prompt should omit the previous drafts section")
	}
}

func TestUserPromptStyleExamples(t *testing.T) {
	examples := []string{
		"Boston Dynamics' Atlas does backflips. #Robotics",
		"Toyota Research achieves 94% success rate.",
	}
	prompt := BuildUserPrompt("Twitter", UserPromptParams{StyleExamples: examples})
	for _, want := range []string{"Boston Dynamics", "Toyota Research", "Match this voice", "Example 1:", "Example 2:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestUserPromptOmitsStyleSectionWhenEmpty(t *testing.T) {
	prompt := BuildUserPrompt("Twitter", UserPromptParams{})
	if strings.Contains(prompt, "Match this voice") {
		t.Error("prompt should omit the style section")
	}
}

func TestUserPromptFeedbackSections(t *testing.T) {
	prompt := BuildUserPrompt("Twitter", UserPromptParams{
		RejectionFeedback: []string{"too generic", "needs more data"},
		ApprovalFeedback:  []string{"loved the data points", "great hook"},
	})
	for _, want := range []string{"things to AVOID", "too generic", "needs more data", "things that worked WELL", "loved the data points", "great hook"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestUserPromptOmitsFeedbackWhenEmpty(t *testing.T) {
	prompt := BuildUserPrompt("Twitter", UserPromptParams{})
	if strings.Contains(prompt, "things to AVOID") || strings.Contains(prompt, "things that worked WELL") {
		t.Error("prompt should omit feedback sections")
	}
}

func TestUserPromptURLInstruction(t *testing.T) {
	twitter := BuildUserPrompt("Twitter", UserPromptParams{})
	if !strings.Contains(twitter, "source URL") {
		t.Error("Twitter prompt should instruct citing the source URL")
	}
	linkedin := BuildUserPrompt("LinkedIn", UserPromptParams{})
	if !strings.Contains(linkedin, "source URLs") {
		t.Error("LinkedIn prompt should instruct citing source URLs")
	}
}

func TestUserPromptNoEmptyResidue(t *testing.T) {
	prompt := BuildUserPrompt("Twitter", UserPromptParams{})
	if strings.Contains(prompt, "\n\n\n") {
		t.Errorf("prompt contains blank residue:\n%s", prompt)
	}
}

func TestRegenPrompt(t *testing.T) {
	prompt := BuildRegenPrompt("Original tweet text", "more casual", "tweet")
	for _, want := range []string{"Original tweet text", "more casual", "restructure", "genuinely different", "Output ONLY the rewritten text"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAddContextPrompt(t *testing.T) {
	prompt := BuildAddContextPrompt("Original post about robots", "New study shows 50% efficiency gain", "tweet")
	for _, want := range []string{"Original post about robots", "50% efficiency gain", "Substantially rewrite", "NOT simply append", "Output ONLY the rewritten text"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
