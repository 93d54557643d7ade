// Command main runs the demo-data seeder for CivicPulse.
package main

import (
	"context"
	"flag"
	"log"

	"civicpulse/internal/config"
	"civicpulse/internal/repository"
	"civicpulse/internal/seed"
	"civicpulse/internal/service"
	"civicpulse/internal/store"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of residents to create")
	numIssues := flag.Int("issues", 60, "Number of issues to create")
	flag.Parse()

	log.Println("🌱 CivicPulse Seeder")
	log.Println("====================")
	log.Printf("Target: %d users, %d issues\n", *numUsers, *numIssues)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	kv, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}

	ctx := context.Background()

	users := repository.NewUserRepository(kv)
	issues := repository.NewIssueRepository(kv)
	comments := repository.NewCommentRepository(kv)
	upvotes := repository.NewUpvoteRepository(kv)
	notifs := repository.NewNotificationRepository(kv)

	admin, err := seed.EnsureAdmin(ctx, users, cfg)
	if err != nil {
		log.Fatalf("❌ Admin seeding failed: %v", err)
	}
	log.Printf("Administrator account: %s\n", admin.Email)

	issueSvc := service.NewIssueService(issues, upvotes, notifs, store.NewLocker(), nil)
	seeder := seed.NewSeeder(seed.NewFactory(users, issues, comments), issueSvc)

	if err := seeder.Seed(ctx, *numUsers, *numIssues); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Println("✅ Seeding complete")
}
