// Package publish hands approved drafts to a posting backend. The manual
// backend formats the post and logs it for the operator to paste; API-backed
// posting slots in behind the same interface.
package publish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

type Result struct {
	PostURL string
	Mode    string
	Text    string
}

type Publisher interface {
	Publish(ctx context.Context, draft *model.Draft) (*Result, error)
	Name() string
}

// FormatPost renders the final post text. Twitter gets hashtags appended
// inline; LinkedIn gets them as a separate trailing paragraph.
func FormatPost(draft *model.Draft) string {
	if draft.Platform == model.PlatformLinkedIn {
		text := draft.Content
		if len(draft.Hashtags) > 0 {
			tags := strings.Join(draft.Hashtags, " ")
			if !strings.Contains(text, tags) {
				text = text + "\n\n" + tags
			}
		}
		return text
	}
	return draft.DisplayContent()
}

// ManualPublisher is the manual-posting workflow: the text is logged for the
// operator and the draft gets a manual:// URL so the lifecycle still advances.
type ManualPublisher struct {
	maxTweetLength int
	logger         *slog.Logger
}

func NewManualPublisher(maxTweetLength int, logger *slog.Logger) *ManualPublisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ManualPublisher{maxTweetLength: maxTweetLength, logger: logger}
}

func (p *ManualPublisher) Name() string {
	return "manual"
}

func (p *ManualPublisher) Publish(ctx context.Context, draft *model.Draft) (*Result, error) {
	text := FormatPost(draft)

	if draft.Platform == model.PlatformTwitter {
		limit := p.maxTweetLength
		if limit == 0 {
			limit = 280
		}
		// Drop appended hashtags when the content alone still fits.
		if utf8.RuneCountInString(text) > limit && utf8.RuneCountInString(draft.Content) <= limit {
			p.logger.Info("dropped appended hashtags to fit length limit", "draft_id", draft.ID, "limit", limit)
			text = draft.Content
		}
		if utf8.RuneCountInString(text) > limit {
			return nil, fmt.Errorf("draft %s exceeds %d character limit", draft.ID, limit)
		}
	}

	p.logger.Info("post ready for manual publishing",
		"draft_id", draft.ID,
		"platform", string(draft.Platform),
		"text", text)

	return &Result{
		PostURL: "manual://" + string(draft.Platform),
		Mode:    "manual",
		Text:    text,
	}, nil
}
