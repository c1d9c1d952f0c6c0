package publish

import (
	"context"
	"strings"
	"testing"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

func TestFormatPostTwitter(t *testing.T) {
	draft := model.NewDraft(model.PlatformTwitter, "Robots are getting good.", []string{"#AI"}, "")
	if got := FormatPost(draft); got != "Robots are getting good. #AI" {
		t.Errorf("FormatPost() = %q", got)
	}
}

func TestFormatPostLinkedIn(t *testing.T) {
	draft := model.NewDraft(model.PlatformLinkedIn, "A longer reflection.", []string{"#AI", "#Robotics"}, "")
	got := FormatPost(draft)
	if !strings.HasSuffix(got, "\n\n#AI #Robotics") {
		t.Errorf("FormatPost() = %q, want trailing hashtag paragraph", got)
	}
}

func TestFormatPostLinkedInSkipsPresentHashtags(t *testing.T) {
	draft := model.NewDraft(model.PlatformLinkedIn, "Already tagged #AI #Robotics here.", []string{"#AI", "#Robotics"}, "")
	got := FormatPost(draft)
	if strings.Count(got, "#AI") != 1 {
		t.Errorf("FormatPost() duplicated hashtags: %q", got)
	}
}

func TestManualPublish(t *testing.T) {
	draft := model.NewDraft(model.PlatformTwitter, "Short and sweet.", []string{"#AI"}, "")
	p := NewManualPublisher(280, nil)

	result, err := p.Publish(context.Background(), draft)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.PostURL != "manual://twitter" {
		t.Errorf("post URL = %q", result.PostURL)
	}
	if result.Mode != "manual" {
		t.Errorf("mode = %q", result.Mode)
	}
	if result.Text != "Short and sweet. #AI" {
		t.Errorf("text = %q", result.Text)
	}
}

func TestManualPublishDropsHashtagsToFit(t *testing.T) {
	content := strings.Repeat("a", 275)
	draft := model.NewDraft(model.PlatformTwitter, content, []string{"#PhysicalAI"}, "")
	p := NewManualPublisher(280, nil)

	result, err := p.Publish(context.Background(), draft)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.Text != content {
		t.Errorf("text = %q, want the bare content", result.Text)
	}
}

func TestManualPublishRejectsOverLength(t *testing.T) {
	content := strings.Repeat("a", 300)
	draft := model.NewDraft(model.PlatformTwitter, content, nil, "")
	p := NewManualPublisher(280, nil)

	if _, err := p.Publish(context.Background(), draft); err == nil {
		t.Fatal("expected an over-length error")
	}
}
