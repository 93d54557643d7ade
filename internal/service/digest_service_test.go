package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicpulse/internal/ai"
	"civicpulse/internal/models"
	"civicpulse/internal/repository"
	"civicpulse/internal/store"
)

type digestTestEnv struct {
	digestRepo repository.DigestRepository
	issueRepo  repository.IssueRepository
	svc        *DigestService
}

func newDigestTestEnv(collaborator ai.Collaborator) *digestTestEnv {
	kv := store.NewMemory()
	env := &digestTestEnv{
		digestRepo: repository.NewDigestRepository(kv),
		issueRepo:  repository.NewIssueRepository(kv),
	}
	env.svc = NewDigestService(env.digestRepo, env.issueRepo, collaborator)
	return env
}

func TestDigestService_Settings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newDigestTestEnv(nil)

	assert.Equal(t, models.DefaultDigestSettings(), env.svc.Settings(ctx))

	settings := env.svc.Settings(ctx)
	settings.Enabled = true
	settings.TopN = 3
	require.NoError(t, env.svc.UpdateSettings(ctx, settings))
	assert.Equal(t, 3, env.svc.Settings(ctx).TopN)

	settings.LookbackDays = 0
	assertValidationError(t, env.svc.UpdateSettings(ctx, settings))

	settings.LookbackDays = 7
	settings.TopN = -1
	assertValidationError(t, env.svc.UpdateSettings(ctx, settings))
}

func TestDigestService_TopIssues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newDigestTestEnv(nil)

	now := time.Now()
	env.issueRepo.Create(ctx, &models.Issue{ID: "in-window-hot", CreatedAt: now.AddDate(0, 0, -1), UpvoteCount: 8})
	env.issueRepo.Create(ctx, &models.Issue{ID: "in-window-cool", CreatedAt: now.AddDate(0, 0, -2), UpvoteCount: 1})
	env.issueRepo.Create(ctx, &models.Issue{ID: "too-old", CreatedAt: now.AddDate(0, 0, -30), UpvoteCount: 50})
	env.issueRepo.Create(ctx, &models.Issue{ID: "hidden", CreatedAt: now, UpvoteCount: 99, Hidden: true})

	t.Run("window and hidden filtering with trending order", func(t *testing.T) {
		issues := env.svc.TopIssues(ctx, 7, 5)
		require.Len(t, issues, 2)
		assert.Equal(t, "in-window-hot", issues[0].ID)
		assert.Equal(t, "in-window-cool", issues[1].ID)
	})

	t.Run("capped at topN", func(t *testing.T) {
		issues := env.svc.TopIssues(ctx, 7, 1)
		require.Len(t, issues, 1)
		assert.Equal(t, "in-window-hot", issues[0].ID)
	})
}

func TestDigestService_BuildWeeklyDigest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no issues in window", func(t *testing.T) {
		t.Parallel()
		env := newDigestTestEnv(&collaboratorStub{})
		assert.Equal(t, ai.FallbackNoIssues, env.svc.BuildWeeklyDigest(ctx))
	})

	t.Run("no collaborator configured", func(t *testing.T) {
		t.Parallel()
		env := newDigestTestEnv(nil)
		env.issueRepo.Create(ctx, &models.Issue{ID: "i1", CreatedAt: time.Now()})
		assert.Equal(t, ai.FallbackNoKey, env.svc.BuildWeeklyDigest(ctx))
	})

	t.Run("collaborator failure", func(t *testing.T) {
		t.Parallel()
		stub := &collaboratorStub{
			weeklySummaryFn: func(context.Context, []*models.Issue) (string, error) {
				return "", errors.New("backend down")
			},
		}
		env := newDigestTestEnv(stub)
		env.issueRepo.Create(ctx, &models.Issue{ID: "i1", CreatedAt: time.Now()})
		assert.Equal(t, ai.FallbackError, env.svc.BuildWeeklyDigest(ctx))
	})

	t.Run("summary passes through", func(t *testing.T) {
		t.Parallel()
		var gotIssues []*models.Issue
		stub := &collaboratorStub{
			weeklySummaryFn: func(_ context.Context, issues []*models.Issue) (string, error) {
				gotIssues = issues
				return "Potholes dominated this week's reports.", nil
			},
		}
		env := newDigestTestEnv(stub)
		env.issueRepo.Create(ctx, &models.Issue{ID: "i1", Title: "Pothole", CreatedAt: time.Now()})

		assert.Equal(t, "Potholes dominated this week's reports.", env.svc.BuildWeeklyDigest(ctx))
		require.Len(t, gotIssues, 1)
		assert.Equal(t, "Pothole", gotIssues[0].Title)
	})
}
