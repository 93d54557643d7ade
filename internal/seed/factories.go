// Package seed provides helpers to create demo data in the record
// store, plus the administrator account seeding run at initialization.
// The demo helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"civicpulse/internal/models"
	"civicpulse/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Factory builds domain records and persists them through the
// repositories.
type Factory struct {
	users    repository.UserRepository
	issues   repository.IssueRepository
	comments repository.CommentRepository
	rand     *rand.Rand
}

// NewFactory creates a new Factory over the given repositories.
func NewFactory(
	users repository.UserRepository,
	issues repository.IssueRepository,
	comments repository.CommentRepository,
) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		users:    users,
		issues:   issues,
		comments: comments,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample resident. Optional
// override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.StoredUser)) *models.StoredUser {
	now := time.Now()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password-123!"), bcrypt.DefaultCost)
	user := &models.StoredUser{
		User: models.User{
			ID:            uuid.NewString(),
			Name:          gofakeit.Name(),
			Email:         gofakeit.Email(),
			Role:          models.RoleResident,
			CreatedAt:     now,
			LastLoginAt:   now,
			NotifsEnabled: true,
			Neighborhood:  gofakeit.City(),
		},
		PasswordHash: string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}
	f.users.Create(ctx, user)
	return user
}

// CreateIssue constructs and persists a sample issue reported by user,
// with a realistic created_at spread over the past days.
func (f *Factory) CreateIssue(ctx context.Context, user *models.StoredUser, overrides ...func(*models.Issue)) *models.Issue {
	categories := models.Categories()
	category := categories[f.rand.Intn(len(categories))]

	daysBack := f.rand.Intn(30)
	hoursBack := f.rand.Intn(24)
	createdAt := time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	issue := &models.Issue{
		ID:          uuid.NewString(),
		CreatedBy:   user.ID,
		CreatorName: user.Name,
		Title:       fmt.Sprintf("%s on %s", category.Name, gofakeit.Street()),
		Description: gofakeit.Paragraph(1, 3, 8, " "),
		CategoryID:  category.ID,
		Status:      models.StatusOpen,
		Latitude:    gofakeit.Latitude(),
		Longitude:   gofakeit.Longitude(),
		Address:     gofakeit.Address().Address,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Photos:      []models.IssuePhoto{},
	}
	for _, override := range overrides {
		override(issue)
	}
	f.issues.Create(ctx, issue)
	return issue
}

// CreateComment constructs and persists a sample comment by user on issue.
func (f *Factory) CreateComment(ctx context.Context, issue *models.Issue, user *models.StoredUser) *models.Comment {
	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.NewString(),
		IssueID:   issue.ID,
		UserID:    user.ID,
		UserName:  user.Name,
		Body:      gofakeit.Sentence(12),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.comments.Create(ctx, comment)
	return comment
}
