package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sharmanirmal/social-plugin/db"
	"github.com/sharmanirmal/social-plugin/internal/config"
	"github.com/sharmanirmal/social-plugin/internal/generator"
	"github.com/sharmanirmal/social-plugin/internal/model"
	"github.com/sharmanirmal/social-plugin/internal/repository"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	tone := flag.String("tone", "", "override the default tone for this run")
	dryRun := flag.Bool("dry-run", false, "generate without persisting drafts")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	draftRepo := repository.NewDraftRepository(db.DB)
	contextRepo := repository.NewContextRepository(db.DB)
	runRepo := repository.NewRunRepository(db.DB)

	gen, err := generator.NewFromConfig(cfg, draftRepo, contextRepo, slog.Default())
	if err != nil {
		log.Fatalf("error building generator: %v", err)
	}

	runID, err := runRepo.StartRun("generate")
	if err != nil {
		log.Fatalf("error recording run start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	drafts, err := gen.GenerateAll(ctx, *tone, *dryRun)
	if err != nil {
		slog.Error("generation run failed", "error", err, "drafts_before_failure", len(drafts))
		runRepo.CompleteRun(runID, model.RunStatusFailed, fmt.Sprintf("generated %d drafts before failure", len(drafts)), err.Error())
		os.Exit(1)
	}

	var totalTokens int
	var totalCost float64
	for _, d := range drafts {
		totalTokens += d.GenerationTokens
		totalCost += d.GenerationCost
	}

	err = runRepo.CompleteRun(runID, model.RunStatusCompleted,
		fmt.Sprintf("generated %d drafts, %d tokens, $%.4f", len(drafts), totalTokens, totalCost), "")
	if err != nil {
		slog.Error("error recording run completion", "error", err)
	}

	slog.Info("generation complete", "drafts", len(drafts), "tokens", totalTokens, "cost", totalCost, "dry_run", *dryRun)
}
