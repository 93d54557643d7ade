// Package service implements the domain logic over the repositories:
// issue lifecycle, comments, notifications, auth, moderation, and the
// weekly digest.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"civicpulse/internal/ai"
	"civicpulse/internal/models"
	"civicpulse/internal/observability"
	"civicpulse/internal/repository"
	"civicpulse/internal/store"
	"civicpulse/internal/trending"

	"github.com/google/uuid"
)

// Sort modes accepted by ListIssues. An unknown mode returns the
// filtered issues in their base (creation) order.
const (
	SortTrending = "trending"
	SortNewest   = "newest"
	SortUpvoted  = "upvoted"
)

var statusRank = map[models.IssueStatus]int{
	models.StatusOpen:         0,
	models.StatusAcknowledged: 1,
	models.StatusResolved:     2,
}

// IssueService manages the issue lifecycle: reporting, listing,
// triage, and upvote toggling.
type IssueService struct {
	issueRepo  repository.IssueRepository
	upvoteRepo repository.UpvoteRepository
	notifRepo  repository.NotificationRepository
	locks      *store.Locker
	dup        ai.Collaborator
	log        *observability.ServiceLogger
}

// NewIssueService creates a new IssueService. dup may be nil, in which
// case duplicate checks always answer false.
func NewIssueService(
	issueRepo repository.IssueRepository,
	upvoteRepo repository.UpvoteRepository,
	notifRepo repository.NotificationRepository,
	locks *store.Locker,
	dup ai.Collaborator,
) *IssueService {
	return &IssueService{
		issueRepo:  issueRepo,
		upvoteRepo: upvoteRepo,
		notifRepo:  notifRepo,
		locks:      locks,
		dup:        dup,
		log:        observability.NewServiceLogger("issue"),
	}
}

// CreateIssueInput carries the fields a resident submits for a new report.
type CreateIssueInput struct {
	CreatedBy   string
	CreatorName string
	Title       string
	Description string
	CategoryID  string
	Latitude    float64
	Longitude   float64
	Address     string
	Photos      []models.IssuePhoto
}

// ListIssuesInput selects and orders issues for a feed.
type ListIssuesInput struct {
	Sort       string
	CategoryID string
	Status     models.IssueStatus
}

// UpdateStatusInput carries an admin's triage decision.
type UpdateStatusInput struct {
	Actor   *models.User
	IssueID string
	Status  models.IssueStatus
	Note    string
}

// ListIssues returns non-hidden issues matching the optional category
// and status filters, ordered by the requested sort mode.
func (s *IssueService) ListIssues(ctx context.Context, in ListIssuesInput) []*models.Issue {
	var issues []*models.Issue
	for _, issue := range s.issueRepo.List(ctx) {
		if issue.Hidden {
			continue
		}
		if in.CategoryID != "" && issue.CategoryID != in.CategoryID {
			continue
		}
		if in.Status != "" && issue.Status != in.Status {
			continue
		}
		issues = append(issues, issue)
	}

	switch in.Sort {
	case SortTrending:
		now := time.Now()
		sort.SliceStable(issues, func(i, j int) bool {
			return trending.Score(issues[i], now) > trending.Score(issues[j], now)
		})
	case SortNewest:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].CreatedAt.After(issues[j].CreatedAt)
		})
	case SortUpvoted:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].UpvoteCount > issues[j].UpvoteCount
		})
	}
	return issues
}

// GetIssue returns the issue or a NOT_FOUND error.
func (s *IssueService) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	return s.issueRepo.GetByID(ctx, id)
}

// CreateIssue validates the submission and persists a new open issue.
func (s *IssueService) CreateIssue(ctx context.Context, in CreateIssueInput) (*models.Issue, error) {
	if in.CreatedBy == "" {
		return nil, models.NewValidationError("Reporter is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > 200 {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if len(in.Description) > 5000 {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}
	category, ok := models.CategoryByID(in.CategoryID)
	if !ok || !category.Active {
		return nil, models.NewValidationError("Unknown category")
	}
	if in.Latitude < -90 || in.Latitude > 90 || in.Longitude < -180 || in.Longitude > 180 {
		return nil, models.NewValidationError("Location is outside valid coordinate range")
	}

	creatorName := in.CreatorName
	if creatorName == "" {
		creatorName = "Resident"
	}
	address := in.Address
	if address == "" {
		address = "Unknown Address"
	}
	photos := in.Photos
	if photos == nil {
		photos = []models.IssuePhoto{}
	}

	now := time.Now()
	issue := &models.Issue{
		ID:          uuid.NewString(),
		CreatedBy:   in.CreatedBy,
		CreatorName: creatorName,
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Status:      models.StatusOpen,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
		Hidden:      false,
		UpvoteCount: 0,
		Photos:      photos,
	}
	s.issueRepo.Create(ctx, issue)
	s.log.LogCall(ctx, "CreateIssue", map[string]interface{}{"issue_id": issue.ID, "category": issue.CategoryID})
	return issue, nil
}

// UpdateStatus applies a triage decision. Only admin roles may call it,
// and statuses only move forward (same-status updates refresh the note).
func (s *IssueService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*models.Issue, error) {
	if in.Actor == nil || !in.Actor.Role.CanTriage() {
		return nil, models.NewUnauthorizedError("Only administrators can update issue status")
	}
	if !models.ValidStatus(in.Status) {
		return nil, models.NewValidationError("Unknown status")
	}

	issue, err := s.issueRepo.GetByID(ctx, in.IssueID)
	if err != nil {
		return nil, err
	}
	if statusRank[in.Status] < statusRank[issue.Status] {
		return nil, models.NewValidationError(
			fmt.Sprintf("Status cannot move backwards from %s to %s", issue.Status, in.Status))
	}

	issue.Status = in.Status
	issue.StatusNote = in.Note
	issue.UpdatedAt = time.Now()
	s.issueRepo.Update(ctx, issue)

	s.notify(ctx, issue.CreatedBy, "Report Updated",
		fmt.Sprintf("The status of your report %q has been updated to %s.", issue.Title, in.Status),
		models.NotifStatusChange, issue.ID)

	s.log.LogCall(ctx, "UpdateStatus", map[string]interface{}{"issue_id": issue.ID, "status": in.Status})
	return issue, nil
}

// ToggleUpvote flips the user's endorsement of an issue. The upvote
// record and the denormalized counter change inside one per-issue
// critical section so they cannot drift apart.
func (s *IssueService) ToggleUpvote(ctx context.Context, issueID, userID string) (*models.Issue, error) {
	unlock := s.locks.Lock(issueID)
	defer unlock()

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if existing, ok := s.upvoteRepo.Find(ctx, issueID, userID); ok {
		s.upvoteRepo.Delete(ctx, existing.ID)
		issue.UpvoteCount--
	} else {
		s.upvoteRepo.Create(ctx, &models.Upvote{
			ID:      uuid.NewString(),
			IssueID: issueID,
			UserID:  userID,
		})
		issue.UpvoteCount++

		if issue.CreatedBy != userID {
			s.notify(ctx, issue.CreatedBy, "New Endorsement",
				fmt.Sprintf("Your report %q received a new upvote!", issue.Title),
				models.NotifUpvote, issueID)
		}
	}

	s.issueRepo.Update(ctx, issue)
	return issue, nil
}

// HasUpvoted reports whether the user currently endorses the issue.
func (s *IssueService) HasUpvoted(ctx context.Context, issueID, userID string) bool {
	_, ok := s.upvoteRepo.Find(ctx, issueID, userID)
	return ok
}

// SetHidden hides or unhides an issue. Admin only; used when resolving
// moderation reports.
func (s *IssueService) SetHidden(ctx context.Context, actor *models.User, issueID string, hidden bool) error {
	if actor == nil || !actor.Role.CanTriage() {
		return models.NewUnauthorizedError("Only administrators can hide issues")
	}
	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return err
	}
	issue.Hidden = hidden
	issue.UpdatedAt = time.Now()
	s.issueRepo.Update(ctx, issue)
	return nil
}

// LikelyDuplicate asks the AI collaborator whether the candidate title
// duplicates an existing visible issue. Best-effort: without a
// collaborator, or on any failure, it answers false.
func (s *IssueService) LikelyDuplicate(ctx context.Context, title string) bool {
	if s.dup == nil {
		return false
	}
	var titles []string
	for _, issue := range s.issueRepo.List(ctx) {
		if !issue.Hidden {
			titles = append(titles, issue.Title)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	isDup, err := s.dup.IsDuplicate(ctx, title, titles)
	if err != nil {
		s.log.LogError(ctx, "LikelyDuplicate", err)
		return false
	}
	return isDup
}

// notify records a notification for the recipient and counts it.
func (s *IssueService) notify(ctx context.Context, userID, title, message string, typ models.NotificationType, issueID string) {
	s.notifRepo.Create(ctx, &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		IssueID:   issueID,
		Read:      false,
		CreatedAt: time.Now(),
	})
	observability.NotificationsEmitted.WithLabelValues(string(typ)).Inc()
}
