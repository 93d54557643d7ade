package repository

import (
	"context"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// UpvoteRepository defines data access for upvote records. The
// (issue, user) pair is unique; callers enforce it via Find before Create.
type UpvoteRepository interface {
	Find(ctx context.Context, issueID, userID string) (*models.Upvote, bool)
	Create(ctx context.Context, upvote *models.Upvote)
	Delete(ctx context.Context, id string)
	CountByIssue(ctx context.Context, issueID string) int
}

type upvoteRepository struct {
	kv store.KV
}

// NewUpvoteRepository creates a new UpvoteRepository.
func NewUpvoteRepository(kv store.KV) UpvoteRepository {
	return &upvoteRepository{kv: kv}
}

func (r *upvoteRepository) Find(ctx context.Context, issueID, userID string) (*models.Upvote, bool) {
	for _, u := range store.LoadAll[models.Upvote](ctx, r.kv, store.KeyUpvotes) {
		if u.IssueID == issueID && u.UserID == userID {
			v := u
			return &v, true
		}
	}
	return nil, false
}

func (r *upvoteRepository) Create(ctx context.Context, upvote *models.Upvote) {
	store.SaveRecord(ctx, r.kv, store.KeyUpvotes, upvote.ID, upvote)
}

func (r *upvoteRepository) Delete(ctx context.Context, id string) {
	store.DeleteRecord(ctx, r.kv, store.KeyUpvotes, id)
}

func (r *upvoteRepository) CountByIssue(ctx context.Context, issueID string) int {
	count := 0
	for _, u := range store.LoadAll[models.Upvote](ctx, r.kv, store.KeyUpvotes) {
		if u.IssueID == issueID {
			count++
		}
	}
	return count
}
