package models

import "time"

// NotificationType classifies what happened to the subject issue.
type NotificationType string

// Notification types.
const (
	NotifUpvote       NotificationType = "upvote"
	NotifComment      NotificationType = "comment"
	NotifStatusChange NotificationType = "status_change"
)

// Notification is an inbox entry for an issue creator. Created as a side
// effect of upvotes, comments, and status changes; never self-addressed.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IssueID   string           `json:"issue_id"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
