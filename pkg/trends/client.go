package trends

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

type Item struct {
	Source         string
	Title          string
	Summary        string
	URL            string
	Author         string
	RelevanceScore float64
}

type Source interface {
	Fetch(ctx context.Context, limit int) ([]Item, error)
	Name() string
}

// scoreRelevance counts keyword hits in the title and summary, normalized to
// the 0-1 range.
func scoreRelevance(keywords []string, title, summary string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	text := strings.ToLower(title + " " + summary)
	var score float64
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			score++
		}
	}

	score /= float64(len(keywords))
	if score > 1 {
		score = 1
	}
	return score
}

// Aggregate fetches from every source, sorts by relevance and keeps the top
// limit items. A failing source is logged and skipped so one dead feed never
// empties the run.
func Aggregate(ctx context.Context, sources []Source, limit int, logger *slog.Logger) []Item {
	var items []Item
	for _, source := range sources {
		fetched, err := source.Fetch(ctx, limit)
		if err != nil {
			logger.Warn("failed to fetch trend source", "source", source.Name(), "error", err)
			continue
		}
		logger.Info("fetched trend source", "source", source.Name(), "items", len(fetched))
		items = append(items, fetched...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RelevanceScore > items[j].RelevanceScore
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
