package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"civicpulse/internal/models"
	"civicpulse/internal/repository"
	"civicpulse/internal/store"
)

type authTestEnv struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	issueRepo   repository.IssueRepository
	svc         *AuthService
}

func newAuthTestEnv() *authTestEnv {
	kv := store.NewMemory()
	env := &authTestEnv{
		userRepo:    repository.NewUserRepository(kv),
		sessionRepo: repository.NewSessionRepository(kv),
		issueRepo:   repository.NewIssueRepository(kv),
	}
	env.svc = NewAuthService(env.userRepo, env.sessionRepo, env.issueRepo)
	return env
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates resident with hashed password", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()

		user, err := env.svc.Signup(ctx, "maria@example.com", "SecurePass12!", "Maria")
		require.NoError(t, err)
		assert.Equal(t, models.RoleResident, user.Role)
		assert.True(t, user.NotifsEnabled)

		stored, ok := env.userRepo.GetByEmail(ctx, "maria@example.com")
		require.True(t, ok)
		assert.NotEqual(t, "SecurePass12!", stored.PasswordHash, "password must not be stored in plaintext")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("SecurePass12!")))

		session, ok := env.svc.GetCurrentUser(ctx)
		require.True(t, ok)
		assert.Equal(t, user.ID, session.ID)
	})

	t.Run("name defaults to email local part", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		user, err := env.svc.Signup(ctx, "sam.reyes@example.com", "", "")
		require.NoError(t, err)
		assert.Equal(t, "sam.reyes", user.Name)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		_, err := env.svc.Signup(ctx, "not-an-email", "SecurePass12!", "X")
		assertValidationError(t, err)
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		_, err := env.svc.Signup(ctx, "maria@example.com", "weak", "Maria")
		assertValidationError(t, err)
	})

	t.Run("existing email acts as login", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		first, err := env.svc.Signup(ctx, "maria@example.com", "SecurePass12!", "Maria")
		require.NoError(t, err)

		again, err := env.svc.Signup(ctx, "maria@example.com", "", "Someone Else")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID, "no duplicate account")
		assert.Equal(t, "Maria", again.Name, "existing profile untouched")
		assert.Len(t, env.userRepo.List(ctx), 1)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newEnvWithUser := func(t *testing.T) *authTestEnv {
		t.Helper()
		env := newAuthTestEnv()
		_, err := env.svc.Signup(ctx, "maria@example.com", "SecurePass12!", "Maria")
		require.NoError(t, err)
		env.svc.Logout(ctx)
		return env
	}

	t.Run("valid credentials establish session", func(t *testing.T) {
		t.Parallel()
		env := newEnvWithUser(t)

		user, err := env.svc.Login(ctx, "maria@example.com", "SecurePass12!")
		require.NoError(t, err)
		assert.Equal(t, "Maria", user.Name)
		assert.False(t, user.LastLoginAt.IsZero())

		session, ok := env.svc.GetCurrentUser(ctx)
		require.True(t, ok)
		assert.Equal(t, user.ID, session.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		env := newEnvWithUser(t)
		_, err := env.svc.Login(ctx, "maria@example.com", "WrongPass12!")
		assertUnauthorizedError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		_, err := env.svc.Login(ctx, "nobody@example.com", "SecurePass12!")
		assertUnauthorizedError(t, err)
	})

	t.Run("passwordless account cannot password-login", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		_, err := env.svc.Signup(ctx, "guest@example.com", "", "")
		require.NoError(t, err)
		env.svc.Logout(ctx)

		_, err = env.svc.Login(ctx, "guest@example.com", "")
		assertUnauthorizedError(t, err)
	})

	t.Run("banned account rejected", func(t *testing.T) {
		t.Parallel()
		env := newEnvWithUser(t)
		stored, ok := env.userRepo.GetByEmail(ctx, "maria@example.com")
		require.True(t, ok)
		stored.IsBanned = true
		env.userRepo.Update(ctx, stored)

		_, err := env.svc.Login(ctx, "maria@example.com", "SecurePass12!")
		assertUnauthorizedError(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newAuthTestEnv()

	_, err := env.svc.Signup(ctx, "maria@example.com", "SecurePass12!", "Maria")
	require.NoError(t, err)

	env.svc.Logout(ctx)
	_, ok := env.svc.GetCurrentUser(ctx)
	assert.False(t, ok)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("merges fields and refreshes session", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		user, err := env.svc.Signup(ctx, "maria@example.com", "SecurePass12!", "Maria")
		require.NoError(t, err)

		off := false
		updated, err := env.svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID:        user.ID,
			Name:          "Maria C.",
			Neighborhood:  "Riverside",
			NotifsEnabled: &off,
		})
		require.NoError(t, err)
		assert.Equal(t, "Maria C.", updated.Name)
		assert.Equal(t, "Riverside", updated.Neighborhood)
		assert.False(t, updated.NotifsEnabled)

		session, ok := env.svc.GetCurrentUser(ctx)
		require.True(t, ok)
		assert.Equal(t, "Maria C.", session.Name)
	})

	t.Run("empty fields untouched", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		user, err := env.svc.Signup(ctx, "maria@example.com", "SecurePass12!", "Maria")
		require.NoError(t, err)

		updated, err := env.svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID})
		require.NoError(t, err)
		assert.Equal(t, "Maria", updated.Name)
		assert.True(t, updated.NotifsEnabled)
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		user, err := env.svc.Signup(ctx, "maria@example.com", "SecurePass12!", "Maria")
		require.NoError(t, err)

		_, err = env.svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Name: "X"})
		assertValidationError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		env := newAuthTestEnv()
		_, err := env.svc.UpdateProfile(ctx, UpdateProfileInput{UserID: "missing", Name: "New Name"})
		assertNotFoundError(t, err)
	})
}

func TestAuthService_GetUserStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newAuthTestEnv()

	env.issueRepo.Create(ctx, &models.Issue{ID: "i1", CreatedBy: "u1", UpvoteCount: 3})
	env.issueRepo.Create(ctx, &models.Issue{ID: "i2", CreatedBy: "u1", UpvoteCount: 2})
	env.issueRepo.Create(ctx, &models.Issue{ID: "i3", CreatedBy: "u2", UpvoteCount: 7})

	stats := env.svc.GetUserStats(ctx, "u1")
	assert.Equal(t, 2, stats.ReportCount)
	assert.Equal(t, 5, stats.UpvoteCount)

	assert.Zero(t, env.svc.GetUserStats(ctx, "nobody"))
}
