package trends

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

type RSSSource struct {
	name     string
	feedURL  string
	keywords []string
	parser   *gofeed.Parser
}

func NewRSSSource(name, feedURL string, keywords []string) *RSSSource {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &RSSSource{
		name:     name,
		feedURL:  feedURL,
		keywords: keywords,
		parser:   parser,
	}
}

func (s *RSSSource) Name() string {
	return s.name
}

func (s *RSSSource) Fetch(ctx context.Context, limit int) ([]Item, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", s.name, err)
	}

	entries := feed.Items
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{
			Source:         s.name,
			Title:          entry.Title,
			Summary:        entry.Description,
			URL:            entry.Link,
			Author:         authorName(entry),
			RelevanceScore: scoreRelevance(s.keywords, entry.Title, entry.Description),
		})
	}
	return items, nil
}

func authorName(entry *gofeed.Item) string {
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	return ""
}

// DefaultFeedURL builds a Google News RSS search for the primary topic, used
// when no feeds are configured.
func DefaultFeedURL(primaryTopic string) string {
	return "https://news.google.com/rss/search?q=" + strings.ReplaceAll(primaryTopic, " ", "+")
}
