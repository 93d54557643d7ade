package models

import "time"

// ReportContentType identifies what kind of content a report flags.
type ReportContentType string

// Reportable content types.
const (
	ReportContentIssue   ReportContentType = "issue"
	ReportContentComment ReportContentType = "comment"
)

// Report is a resident's flag on an issue or comment for admin review.
// A report with a nil ResolvedAt is open.
type Report struct {
	ID                string            `json:"id"`
	ReporterUserID    string            `json:"reporter_user_id"`
	ContentType       ReportContentType `json:"content_type"`
	ContentID         string            `json:"content_id"`
	Reason            string            `json:"reason"`
	Details           string            `json:"details,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	ResolvedByAdminID string            `json:"resolved_by_admin_id,omitempty"`
	ResolvedAt        *time.Time        `json:"resolved_at,omitempty"`
	ResolutionNote    string            `json:"resolution_note,omitempty"`
}

// Open reports whether the report is still awaiting admin resolution.
func (r *Report) Open() bool {
	return r.ResolvedAt == nil
}
