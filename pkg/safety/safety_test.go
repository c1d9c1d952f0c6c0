package safety

import (
	"strings"
	"testing"
)

func newTestChecker() *Checker {
	return NewChecker([]string{"cryptoscam", "FORBIDDEN"}, "", nil)
}

func TestCleanContentPasses(t *testing.T) {
	result := newTestChecker().Check("Robotics research is making steady progress this year.")
	if !result.Safe {
		t.Fatalf("expected safe, got issues: %v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("issues = %v, want none", result.Issues)
	}
}

func TestBlockedWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "lowercase match", content: "this cryptoscam is great"},
		{name: "case-insensitive match", content: "a Forbidden topic appears"},
		{name: "substring match", content: "xxCRYPTOSCAMxx embedded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestChecker().Check(tt.content)
			if result.Safe {
				t.Fatal("expected blocked word to be flagged")
			}
			found := false
			for _, issue := range result.Issues {
				if strings.Contains(issue, "blocked word") {
					found = true
				}
			}
			if !found {
				t.Errorf("issues = %v, want a blocked word issue", result.Issues)
			}
		})
	}
}

func TestComplianceFinancial(t *testing.T) {
	tests := []string{
		"You should invest now before it's too late",
		"This strategy has guaranteed returns",
		"Buy today, this is not financial advice",
	}

	for _, content := range tests {
		result := newTestChecker().Check(content)
		if result.Safe {
			t.Errorf("Check(%q) safe, want financial advice flag", content)
			continue
		}
		found := false
		for _, issue := range result.Issues {
			if strings.Contains(issue, "financial advice") {
				found = true
			}
		}
		if !found {
			t.Errorf("Check(%q) issues = %v, want financial advice issue", content, result.Issues)
		}
	}
}

func TestComplianceMedical(t *testing.T) {
	result := newTestChecker().Check("this drug cured cancer in trials")
	if result.Safe {
		t.Fatal("expected medical claim to be flagged")
	}
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "medical claims") {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %v, want medical claims issue", result.Issues)
	}
}

func TestIssuesAreUnioned(t *testing.T) {
	result := newTestChecker().Check("invest now in this cryptoscam")
	if result.Safe {
		t.Fatal("expected unsafe")
	}
	if len(result.Issues) < 2 {
		t.Errorf("issues = %v, want both blocked word and financial advice", result.Issues)
	}
}

func TestCensorMasksProfanity(t *testing.T) {
	censored := newTestChecker().Censor("that was a shitty take")
	if strings.Contains(censored, "shitty") {
		t.Errorf("Censor left profanity in place: %q", censored)
	}
	if !strings.Contains(censored, "*") {
		t.Errorf("Censor produced no mask: %q", censored)
	}
}

func TestSummary(t *testing.T) {
	safe := Result{Safe: true}
	if safe.Summary() != "Content passed safety checks" {
		t.Errorf("Summary() = %q", safe.Summary())
	}

	flagged := Result{Safe: false, Issues: []string{"a", "b"}}
	if flagged.Summary() != "Content flagged: a; b" {
		t.Errorf("Summary() = %q", flagged.Summary())
	}
}
