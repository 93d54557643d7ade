package seed

import (
	"context"
	"fmt"
	"time"

	"civicpulse/internal/config"
	"civicpulse/internal/models"
	"civicpulse/internal/repository"
	"civicpulse/internal/service"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeder populates the store with a demo neighborhood: residents,
// issues, upvotes, and comments.
type Seeder struct {
	factory  *Factory
	issueSvc *service.IssueService
}

// NewSeeder creates a new Seeder.
func NewSeeder(factory *Factory, issueSvc *service.IssueService) *Seeder {
	return &Seeder{factory: factory, issueSvc: issueSvc}
}

// Seed creates numUsers residents and numIssues issues, then spreads
// upvotes and comments across them. Upvotes go through ToggleUpvote so
// the denormalized counters stay consistent with the upvote records.
func (s *Seeder) Seed(ctx context.Context, numUsers, numIssues int) error {
	if numUsers < 1 || numIssues < 1 {
		return fmt.Errorf("need at least one user and one issue")
	}

	users := make([]*models.StoredUser, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		users = append(users, s.factory.CreateUser(ctx))
	}

	for i := 0; i < numIssues; i++ {
		reporter := users[s.factory.rand.Intn(len(users))]
		issue := s.factory.CreateIssue(ctx, reporter)

		// Random slice of the community endorses the issue.
		for _, voter := range users {
			if voter.ID == reporter.ID || s.factory.rand.Intn(3) != 0 {
				continue
			}
			if _, err := s.issueSvc.ToggleUpvote(ctx, issue.ID, voter.ID); err != nil {
				return fmt.Errorf("seed upvote: %w", err)
			}
		}

		for c := s.factory.rand.Intn(4); c > 0; c-- {
			commenter := users[s.factory.rand.Intn(len(users))]
			s.factory.CreateComment(ctx, issue, commenter)
		}
	}
	return nil
}

// EnsureAdmin creates the configured administrator account through the
// normal user-creation path if it does not exist yet. Login treats it
// like any other stored user.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) (*models.StoredUser, error) {
	if existing, ok := users.GetByEmail(ctx, cfg.AdminEmail); ok {
		return existing, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	admin := &models.StoredUser{
		User: models.User{
			ID:            uuid.NewString(),
			Name:          cfg.AdminName,
			Email:         cfg.AdminEmail,
			Role:          models.RoleSuperAdmin,
			CreatedAt:     now,
			LastLoginAt:   now,
			NotifsEnabled: true,
		},
		PasswordHash: string(hashed),
	}
	users.Create(ctx, admin)
	return admin, nil
}
