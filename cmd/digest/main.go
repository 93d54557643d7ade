// Command main prints the weekly digest of top issues for leadership.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"civicpulse/internal/ai"
	"civicpulse/internal/config"
	"civicpulse/internal/repository"
	"civicpulse/internal/service"
	"civicpulse/internal/store"
	"civicpulse/internal/trending"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	kv, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}

	var collaborator ai.Collaborator
	if cfg.GeminiAPIKey != "" {
		collaborator = ai.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	ctx := context.Background()
	digests := repository.NewDigestRepository(kv)
	issues := repository.NewIssueRepository(kv)
	svc := service.NewDigestService(digests, issues, collaborator)

	settings := svc.Settings(ctx)
	top := svc.TopIssues(ctx, settings.LookbackDays, settings.TopN)

	now := time.Now()
	fmt.Printf("Top %d issues of the past %d days:\n", settings.TopN, settings.LookbackDays)
	for _, issue := range top {
		fmt.Printf("  [%5.1f] %-40s %d upvotes (%s)\n",
			trending.Score(issue, now), issue.Title, issue.UpvoteCount, issue.Status)
	}

	fmt.Println()
	fmt.Println(svc.BuildWeeklyDigest(ctx))
}
