package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sharmanirmal/social-plugin/db"
	"github.com/sharmanirmal/social-plugin/internal/config"
	"github.com/sharmanirmal/social-plugin/internal/model"
	"github.com/sharmanirmal/social-plugin/internal/repository"
	"github.com/sharmanirmal/social-plugin/pkg/publish"
)

const (
	popTimeout      = 30 * time.Second
	dailyLimitRetry = 10 * time.Minute
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	draftRepo := repository.NewDraftRepository(db.DB)
	publisher := publish.NewManualPublisher(cfg.TweetMaxLength(), slog.Default())

	for {
		id, err := db.PopFromQueue(db.PublishQueueKey, popTimeout)
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			slog.Error("error popping from publish queue", "error", err)
			break
		}

		draft, err := draftRepo.Get(id)
		if err != nil {
			slog.Error("error loading draft", "error", err, "draft_id", id)
			db.PushToQueue(db.DeadLetterKey, id)
			continue
		}

		if draft == nil {
			slog.Warn("queued draft not found, dead-lettering", "draft_id", id)
			db.PushToQueue(db.DeadLetterKey, id)
			continue
		}

		if draft.Status != model.StatusApproved {
			slog.Warn("queued draft is not approved, skipping", "draft_id", id, "status", draft.Status)
			continue
		}

		if limitReached(draftRepo, cfg, draft.Platform) {
			slog.Warn("daily post limit reached, requeueing", "draft_id", id, "platform", draft.Platform)
			db.PushToQueue(db.PublishQueueKey, id)
			time.Sleep(dailyLimitRetry)
			continue
		}

		result, err := publisher.Publish(context.Background(), draft)
		if err != nil {
			slog.Error("error publishing draft", "error", err, "draft_id", id)
			draftRepo.MarkFailed(id, err.Error())
			db.PushToQueue(db.DeadLetterKey, id)
			continue
		}

		ok, err := draftRepo.MarkPosted(id, result.PostURL)
		if err != nil {
			slog.Error("error marking draft posted", "error", err, "draft_id", id)
			db.PushToQueue(db.DeadLetterKey, id)
			continue
		}
		if !ok {
			slog.Warn("draft state changed during publish, not marked posted", "draft_id", id)
			continue
		}

		slog.Info("draft published", "draft_id", id, "platform", draft.Platform, "post_url", result.PostURL, "mode", result.Mode)
	}
}

func limitReached(repo *repository.DraftRepository, cfg config.Config, platform model.Platform) bool {
	var maxPerDay int
	switch platform {
	case model.PlatformTwitter:
		maxPerDay = cfg.Accounts.Twitter.MaxPostsPerDay
	case model.PlatformLinkedIn:
		maxPerDay = cfg.Accounts.LinkedIn.MaxPostsPerDay
	}
	if maxPerDay <= 0 {
		return false
	}

	posted, err := repo.PostedCountToday(platform)
	if err != nil {
		slog.Error("error checking daily limit", "error", err, "platform", platform)
		return false
	}
	return posted >= maxPerDay
}
