package service

import (
	"context"
	"sort"
	"time"

	"civicpulse/internal/ai"
	"civicpulse/internal/models"
	"civicpulse/internal/observability"
	"civicpulse/internal/repository"
	"civicpulse/internal/trending"
)

// DigestService builds the weekly leadership digest: the top trending
// issues of the lookback window summarized by the AI collaborator, with
// fixed fallback text when the collaborator is missing or failing.
type DigestService struct {
	digestRepo   repository.DigestRepository
	issueRepo    repository.IssueRepository
	collaborator ai.Collaborator
	log          *observability.ServiceLogger
}

// NewDigestService creates a new DigestService. collaborator may be nil
// when no API key is configured.
func NewDigestService(
	digestRepo repository.DigestRepository,
	issueRepo repository.IssueRepository,
	collaborator ai.Collaborator,
) *DigestService {
	return &DigestService{
		digestRepo:   digestRepo,
		issueRepo:    issueRepo,
		collaborator: collaborator,
		log:          observability.NewServiceLogger("digest"),
	}
}

// Settings returns the digest settings, defaults included.
func (s *DigestService) Settings(ctx context.Context) models.DigestSettings {
	return s.digestRepo.Get(ctx)
}

// UpdateSettings validates and persists new digest settings.
func (s *DigestService) UpdateSettings(ctx context.Context, settings models.DigestSettings) error {
	if settings.LookbackDays <= 0 {
		return models.NewValidationError("Lookback days must be positive")
	}
	if settings.TopN <= 0 {
		return models.NewValidationError("Top N must be positive")
	}
	s.digestRepo.Save(ctx, settings)
	return nil
}

// TopIssues returns the non-hidden issues created within the lookback
// window, best trending score first, capped at topN.
func (s *DigestService) TopIssues(ctx context.Context, lookbackDays, topN int) []*models.Issue {
	now := time.Now()
	cutoff := now.AddDate(0, 0, -lookbackDays)

	var issues []*models.Issue
	for _, issue := range s.issueRepo.List(ctx) {
		if issue.Hidden || issue.CreatedAt.Before(cutoff) {
			continue
		}
		issues = append(issues, issue)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return trending.Score(issues[i], now) > trending.Score(issues[j], now)
	})
	if len(issues) > topN {
		issues = issues[:topN]
	}
	return issues
}

// BuildWeeklyDigest produces the digest prose. It never fails: missing
// collaborator, empty window, and backend errors all map to fixed text.
func (s *DigestService) BuildWeeklyDigest(ctx context.Context) string {
	settings := s.digestRepo.Get(ctx)
	issues := s.TopIssues(ctx, settings.LookbackDays, settings.TopN)

	if len(issues) == 0 {
		return ai.FallbackNoIssues
	}
	if s.collaborator == nil {
		return ai.FallbackNoKey
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	summary, err := s.collaborator.WeeklySummary(ctx, issues)
	if err != nil {
		s.log.LogError(ctx, "BuildWeeklyDigest", err)
		return ai.FallbackError
	}
	return summary
}
