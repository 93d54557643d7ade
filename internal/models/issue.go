package models

import "time"

// IssueStatus is the triage state of a reported issue.
type IssueStatus string

// Issue statuses, in their intended forward order.
const (
	StatusOpen         IssueStatus = "open"
	StatusAcknowledged IssueStatus = "acknowledged"
	StatusResolved     IssueStatus = "resolved"
)

// ValidStatus reports whether s is one of the known issue statuses.
func ValidStatus(s IssueStatus) bool {
	switch s {
	case StatusOpen, StatusAcknowledged, StatusResolved:
		return true
	}
	return false
}

// IssuePhoto is a reference to an uploaded photo attached to an issue.
type IssuePhoto struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Issue represents a reported civic problem.
type Issue struct {
	ID          string       `json:"id"`
	CreatedBy   string       `json:"created_by"`
	CreatorName string       `json:"creator_name"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CategoryID  string       `json:"category_id"`
	Status      IssueStatus  `json:"status"`
	StatusNote  string       `json:"status_note,omitempty"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Address     string       `json:"address,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Hidden      bool         `json:"hidden"`
	// UpvoteCount is denormalized from the upvote records and kept in
	// lockstep with them under the issue's lock.
	UpvoteCount int          `json:"upvote_count"`
	Photos      []IssuePhoto `json:"photos"`
}

// Upvote is a single user's endorsement of one issue. At most one
// record exists per (issue, user) pair; toggled, not stacked.
type Upvote struct {
	ID      string `json:"id"`
	IssueID string `json:"issue_id"`
	UserID  string `json:"user_id"`
}
