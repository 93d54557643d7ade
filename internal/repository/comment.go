package repository

import (
	"context"
	"sort"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// CommentRepository defines data access for comment records.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByIssue(ctx context.Context, issueID string) []*models.Comment
	Update(ctx context.Context, comment *models.Comment)
}

type commentRepository struct {
	kv store.KV
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(kv store.KV) CommentRepository {
	return &commentRepository{kv: kv}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) {
	store.SaveRecord(ctx, r.kv, store.KeyComments, comment.ID, comment)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, ok := store.LoadRecord[models.Comment](ctx, r.kv, store.KeyComments, id)
	if !ok {
		return nil, models.NewNotFoundError("comment", id)
	}
	return comment, nil
}

// ListByIssue returns the issue's non-hidden comments, newest first.
func (r *commentRepository) ListByIssue(ctx context.Context, issueID string) []*models.Comment {
	var out []*models.Comment
	comments := store.LoadAll[models.Comment](ctx, r.kv, store.KeyComments)
	for i := range comments {
		if comments[i].IssueID == issueID && !comments[i].Hidden {
			out = append(out, &comments[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) {
	store.SaveRecord(ctx, r.kv, store.KeyComments, comment.ID, comment)
}
