package service

import (
	"context"
	"strings"
	"time"

	"civicpulse/internal/models"
	"civicpulse/internal/observability"
	"civicpulse/internal/repository"
	"civicpulse/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService manages login, signup, the single current session, and
// profile reads/updates. Administrator accounts are ordinary stored
// users seeded at initialization; login has no special cases.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	issueRepo   repository.IssueRepository
	log         *observability.ServiceLogger
}

// UpdateProfileInput carries a partial profile update. Nil/empty fields
// are left unchanged.
type UpdateProfileInput struct {
	UserID        string
	Name          string
	Neighborhood  string
	NotifsEnabled *bool
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	issueRepo repository.IssueRepository,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		issueRepo:   issueRepo,
		log:         observability.NewServiceLogger("auth"),
	}
}

// Login verifies the credentials against the stored hash and, on
// success, establishes the session and returns the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, ok := s.userRepo.GetByEmail(ctx, email)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if user.PasswordHash == "" {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if user.IsBanned {
		return nil, models.NewUnauthorizedError("This account has been banned")
	}

	user.LastLoginAt = time.Now()
	s.userRepo.Update(ctx, user)

	session := user.User
	s.sessionRepo.Set(ctx, &session)
	s.log.LogCall(ctx, "Login", map[string]interface{}{"user_id": user.ID})
	return &session, nil
}

// Signup finds or creates a user by email and establishes a session for
// the result, so repeated signups with the same email act as login.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, ok := s.userRepo.GetByEmail(ctx, email)
	if !ok {
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		var hash string
		if password != "" {
			if err := validation.ValidatePassword(password); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return nil, models.NewInternalError(err)
			}
			hash = string(hashed)
		}

		now := time.Now()
		user = &models.StoredUser{
			User: models.User{
				ID:            uuid.NewString(),
				Name:          name,
				Email:         email,
				Role:          models.RoleResident,
				CreatedAt:     now,
				LastLoginAt:   now,
				IsBanned:      false,
				NotifsEnabled: true,
			},
			PasswordHash: hash,
		}
		s.userRepo.Create(ctx, user)
	} else {
		if user.IsBanned {
			return nil, models.NewUnauthorizedError("This account has been banned")
		}
		user.LastLoginAt = time.Now()
		s.userRepo.Update(ctx, user)
	}

	session := user.User
	s.sessionRepo.Set(ctx, &session)
	s.log.LogCall(ctx, "Signup", map[string]interface{}{"user_id": user.ID})
	return &session, nil
}

// GetCurrentUser reads the session record, if any.
func (s *AuthService) GetCurrentUser(ctx context.Context) (*models.User, bool) {
	return s.sessionRepo.Get(ctx)
}

// Logout clears the session record.
func (s *AuthService) Logout(ctx context.Context) {
	s.sessionRepo.Clear(ctx)
}

// UpdateProfile merges the given fields into the stored user and, when
// the target is the session user, refreshes the session copy too.
func (s *AuthService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateDisplayName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Neighborhood != "" {
		user.Neighborhood = in.Neighborhood
	}
	if in.NotifsEnabled != nil {
		user.NotifsEnabled = *in.NotifsEnabled
	}
	s.userRepo.Update(ctx, user)

	if current, ok := s.sessionRepo.Get(ctx); ok && current.ID == user.ID {
		session := user.User
		s.sessionRepo.Set(ctx, &session)
	}

	result := user.User
	return &result, nil
}

// GetUserStats computes the user's report count and total upvotes
// received. Derived on every call, never stored.
func (s *AuthService) GetUserStats(ctx context.Context, userID string) models.UserStats {
	var stats models.UserStats
	for _, issue := range s.issueRepo.ListByUser(ctx, userID) {
		stats.ReportCount++
		stats.UpvoteCount += issue.UpvoteCount
	}
	return stats
}
