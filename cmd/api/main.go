package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sharmanirmal/social-plugin/db"
	"github.com/sharmanirmal/social-plugin/internal/config"
	"github.com/sharmanirmal/social-plugin/internal/generator"
	"github.com/sharmanirmal/social-plugin/internal/handler"
	"github.com/sharmanirmal/social-plugin/internal/repository"
)

// publishQueue adapts the Redis queue helpers to the handler's Queue interface.
type publishQueue struct{}

func (publishQueue) Push(data string) error {
	return db.PushToQueue(db.PublishQueueKey, data)
}

func (publishQueue) Length() (int64, error) {
	return db.GetQueueLength(db.PublishQueueKey)
}

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

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	draftRepo := repository.NewDraftRepository(db.DB)
	contextRepo := repository.NewContextRepository(db.DB)

	gen, err := generator.NewFromConfig(cfg, draftRepo, contextRepo, slog.Default())
	if err != nil {
		log.Fatalf("error building generator: %v", err)
	}

	draftHandler := handler.NewDraftHandler(draftRepo, gen, publishQueue{}, cfg.Drafts.ExpireAfterDays)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/drafts", draftHandler.GetDrafts)
	r.GET("/drafts/:id", draftHandler.GetDraft)
	r.GET("/drafts/:id/analytics", draftHandler.GetDraftAnalytics)
	r.POST("/drafts/:id/approve", draftHandler.ApproveDraft)
	r.POST("/drafts/:id/reject", draftHandler.RejectDraft)
	r.POST("/drafts/:id/posted", draftHandler.MarkPosted)
	r.POST("/drafts/:id/failed", draftHandler.MarkFailed)
	r.POST("/drafts/:id/regenerate", draftHandler.RegenerateDraft)
	r.POST("/drafts/:id/context", draftHandler.AddContext)
	r.DELETE("/drafts/:id", draftHandler.DeleteDraft)
	r.POST("/drafts/expire", draftHandler.ExpireDrafts)
	r.POST("/generate", draftHandler.GenerateDrafts)
	r.GET("/stats", draftHandler.GetStats)
	r.GET("/health", draftHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
