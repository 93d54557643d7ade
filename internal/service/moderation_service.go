package service

import (
	"context"
	"strings"
	"time"

	"civicpulse/internal/models"
	"civicpulse/internal/observability"
	"civicpulse/internal/repository"

	"github.com/google/uuid"
)

// ModerationService handles resident flags on issues and comments and
// their admin resolution.
type ModerationService struct {
	reportRepo  repository.ReportRepository
	issueRepo   repository.IssueRepository
	commentRepo repository.CommentRepository
	log         *observability.ServiceLogger
}

// FileReportInput carries a resident's flag on a piece of content.
type FileReportInput struct {
	ReporterUserID string
	ContentType    models.ReportContentType
	ContentID      string
	Reason         string
	Details        string
}

// ResolveReportInput carries an admin's resolution of a report.
type ResolveReportInput struct {
	Actor       *models.User
	ReportID    string
	Note        string
	HideContent bool
}

// NewModerationService creates a new ModerationService.
func NewModerationService(
	reportRepo repository.ReportRepository,
	issueRepo repository.IssueRepository,
	commentRepo repository.CommentRepository,
) *ModerationService {
	return &ModerationService{
		reportRepo:  reportRepo,
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		log:         observability.NewServiceLogger("moderation"),
	}
}

// FileReport records a flag on an issue or comment after checking the
// content actually exists.
func (s *ModerationService) FileReport(ctx context.Context, in FileReportInput) (*models.Report, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, models.NewValidationError("Reason is required")
	}

	switch in.ContentType {
	case models.ReportContentIssue:
		if _, err := s.issueRepo.GetByID(ctx, in.ContentID); err != nil {
			return nil, err
		}
	case models.ReportContentComment:
		if _, err := s.commentRepo.GetByID(ctx, in.ContentID); err != nil {
			return nil, err
		}
	default:
		return nil, models.NewValidationError("Unknown content type")
	}

	report := &models.Report{
		ID:             uuid.NewString(),
		ReporterUserID: in.ReporterUserID,
		ContentType:    in.ContentType,
		ContentID:      in.ContentID,
		Reason:         in.Reason,
		Details:        in.Details,
		CreatedAt:      time.Now(),
	}
	s.reportRepo.Create(ctx, report)
	s.log.LogCall(ctx, "FileReport", map[string]interface{}{"report_id": report.ID, "content_type": in.ContentType})
	return report, nil
}

// ListOpenReports returns unresolved reports in arrival order.
func (s *ModerationService) ListOpenReports(ctx context.Context) []*models.Report {
	return s.reportRepo.ListOpen(ctx)
}

// ResolveReport closes a report. Admin only. With HideContent set, the
// flagged issue or comment is hidden as part of the resolution.
func (s *ModerationService) ResolveReport(ctx context.Context, in ResolveReportInput) (*models.Report, error) {
	if in.Actor == nil || !in.Actor.Role.CanTriage() {
		return nil, models.NewUnauthorizedError("Only administrators can resolve reports")
	}

	report, err := s.reportRepo.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, err
	}
	if !report.Open() {
		return nil, models.NewValidationError("Report is already resolved")
	}

	if in.HideContent {
		switch report.ContentType {
		case models.ReportContentIssue:
			issue, err := s.issueRepo.GetByID(ctx, report.ContentID)
			if err != nil {
				return nil, err
			}
			issue.Hidden = true
			issue.UpdatedAt = time.Now()
			s.issueRepo.Update(ctx, issue)
		case models.ReportContentComment:
			comment, err := s.commentRepo.GetByID(ctx, report.ContentID)
			if err != nil {
				return nil, err
			}
			comment.Hidden = true
			comment.UpdatedAt = time.Now()
			s.commentRepo.Update(ctx, comment)
		}
	}

	now := time.Now()
	report.ResolvedByAdminID = in.Actor.ID
	report.ResolvedAt = &now
	report.ResolutionNote = in.Note
	s.reportRepo.Update(ctx, report)

	s.log.LogCall(ctx, "ResolveReport", map[string]interface{}{"report_id": report.ID, "hidden": in.HideContent})
	return report, nil
}
