package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sharmanirmal/social-plugin/db"
	"github.com/sharmanirmal/social-plugin/internal/config"
	"github.com/sharmanirmal/social-plugin/internal/model"
	"github.com/sharmanirmal/social-plugin/internal/repository"
	"github.com/sharmanirmal/social-plugin/pkg/trends"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	feeds := cfg.Trends.RSSFeeds
	if len(feeds) == 0 {
		feeds = []string{trends.DefaultFeedURL(cfg.Topics.Primary)}
	}

	var sources []trends.Source
	for _, feed := range feeds {
		sources = append(sources, trends.NewRSSSource(feed, feed, cfg.Topics.Keywords))
	}

	contextRepo := repository.NewContextRepository(db.DB)
	runRepo := repository.NewRunRepository(db.DB)

	runID, err := runRepo.StartRun("fetch")
	if err != nil {
		log.Fatalf("error recording run start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	items := trends.Aggregate(ctx, sources, cfg.Trends.MaxResults, slog.Default())

	today := time.Now().UTC().Format("2006-01-02")
	var saved, errors int
	for _, item := range items {
		trend := model.Trend{
			Source:         item.Source,
			Title:          item.Title,
			Summary:        item.Summary,
			URL:            item.URL,
			Author:         item.Author,
			RelevanceScore: item.RelevanceScore,
			Date:           today,
		}

		if err := contextRepo.SaveTrend(&trend); err != nil {
			slog.Error("error saving trend", "error", err, "title", item.Title)
			errors++
			continue
		}
		saved++
	}

	status := model.RunStatusCompleted
	if errors > 0 && saved == 0 {
		status = model.RunStatusFailed
	}

	err = runRepo.CompleteRun(runID, status, fmt.Sprintf("saved %d trends, %d errors", saved, errors), "")
	if err != nil {
		slog.Error("error recording run completion", "error", err)
	}

	slog.Info("fetch complete", "saved", saved, "errors", errors, "date", today)
}
