package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"civicpulse/internal/models"
	"civicpulse/internal/observability"
	"civicpulse/internal/repository"

	"github.com/google/uuid"
)

// commentPreviewLen is how much of a comment body the creator sees in
// their notification.
const commentPreviewLen = 30

// CommentService manages issue discussion threads.
type CommentService struct {
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
	notifRepo   repository.NotificationRepository
	log         *observability.ServiceLogger
}

// CreateCommentInput carries a new comment submission.
type CreateCommentInput struct {
	IssueID  string
	UserID   string
	UserName string
	Body     string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	issueRepo repository.IssueRepository,
	notifRepo repository.NotificationRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
		notifRepo:   notifRepo,
		log:         observability.NewServiceLogger("comment"),
	}
}

// ListComments returns the issue's visible comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, issueID string) ([]*models.Comment, error) {
	if _, err := s.issueRepo.GetByID(ctx, issueID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByIssue(ctx, issueID), nil
}

// AddComment appends a comment and notifies the issue's creator unless
// they wrote it themselves.
func (s *CommentService) AddComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Comment body is required")
	}
	if len(in.Body) > 2000 {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	issue, err := s.issueRepo.GetByID(ctx, in.IssueID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.NewString(),
		IssueID:   in.IssueID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
		Hidden:    false,
	}
	s.commentRepo.Create(ctx, comment)

	if issue.CreatedBy != in.UserID {
		preview := in.Body
		if len(preview) > commentPreviewLen {
			preview = preview[:commentPreviewLen]
		}
		s.notifRepo.Create(ctx, &models.Notification{
			ID:        uuid.NewString(),
			UserID:    issue.CreatedBy,
			Title:     "New Comment",
			Message:   fmt.Sprintf("%s commented on your report: %q...", in.UserName, preview),
			Type:      models.NotifComment,
			IssueID:   in.IssueID,
			Read:      false,
			CreatedAt: now,
		})
		observability.NotificationsEmitted.WithLabelValues(string(models.NotifComment)).Inc()
	}

	s.log.LogCall(ctx, "AddComment", map[string]interface{}{"issue_id": in.IssueID, "comment_id": comment.ID})
	return comment, nil
}

// SetHidden hides or unhides a comment. Admin only; used when resolving
// moderation reports.
func (s *CommentService) SetHidden(ctx context.Context, actor *models.User, commentID string, hidden bool) error {
	if actor == nil || !actor.Role.CanTriage() {
		return models.NewUnauthorizedError("Only administrators can hide comments")
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	comment.Hidden = hidden
	comment.UpdatedAt = time.Now()
	s.commentRepo.Update(ctx, comment)
	return nil
}
