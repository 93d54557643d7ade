// Package main provides admin management utilities for CivicPulse.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"civicpulse/internal/config"
	"civicpulse/internal/models"
	"civicpulse/internal/repository"
	"civicpulse/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <email>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <email>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin list-admins          - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	kv, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(kv)

	command := os.Args[1]
	switch command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin promote <email>")
			os.Exit(1)
		}
		setRole(ctx, users, os.Args[2], models.RoleAdmin)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin demote <email>")
			os.Exit(1)
		}
		setRole(ctx, users, os.Args[2], models.RoleResident)

	case "list-admins":
		listAdmins(ctx, users)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setRole(ctx context.Context, users repository.UserRepository, email string, role models.UserRole) {
	user, ok := users.GetByEmail(ctx, email)
	if !ok {
		log.Fatalf("User %s not found", email)
	}
	if user.Role == models.RoleSuperAdmin {
		log.Fatalf("Refusing to change the role of a super_admin account")
	}
	user.Role = role
	users.Update(ctx, user)
	fmt.Printf("✅ %s is now %s\n", user.Email, role)
}

func listAdmins(ctx context.Context, users repository.UserRepository) {
	fmt.Println("Administrators:")
	for _, user := range users.List(ctx) {
		if user.Role.CanTriage() {
			fmt.Printf("  %-30s %-12s %s\n", user.Email, user.Role, user.Name)
		}
	}
}
