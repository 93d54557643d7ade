// Package repository provides record-store-backed data access for the
// application's collections. Writes follow the store's swallow-on-failure
// contract, so only reads that can miss return errors.
package repository

import (
	"context"
	"sort"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// IssueRepository defines data access for issue records.
type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue)
	GetByID(ctx context.Context, id string) (*models.Issue, error)
	List(ctx context.Context) []*models.Issue
	ListByUser(ctx context.Context, userID string) []*models.Issue
	Update(ctx context.Context, issue *models.Issue)
}

type issueRepository struct {
	kv store.KV
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(kv store.KV) IssueRepository {
	return &issueRepository{kv: kv}
}

func (r *issueRepository) Create(ctx context.Context, issue *models.Issue) {
	store.SaveRecord(ctx, r.kv, store.KeyIssues, issue.ID, issue)
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*models.Issue, error) {
	issue, ok := store.LoadRecord[models.Issue](ctx, r.kv, store.KeyIssues, id)
	if !ok {
		return nil, models.NewNotFoundError("issue", id)
	}
	return issue, nil
}

// List returns every issue ordered by creation time (id as tiebreak).
// Backends hand records back in map order, so the repository fixes a
// deterministic base order for the sort modes layered above.
func (r *issueRepository) List(ctx context.Context) []*models.Issue {
	issues := store.LoadAll[models.Issue](ctx, r.kv, store.KeyIssues)
	out := make([]*models.Issue, 0, len(issues))
	for i := range issues {
		out = append(out, &issues[i])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *issueRepository) ListByUser(ctx context.Context, userID string) []*models.Issue {
	var out []*models.Issue
	for _, issue := range r.List(ctx) {
		if issue.CreatedBy == userID {
			out = append(out, issue)
		}
	}
	return out
}

func (r *issueRepository) Update(ctx context.Context, issue *models.Issue) {
	store.SaveRecord(ctx, r.kv, store.KeyIssues, issue.ID, issue)
}
