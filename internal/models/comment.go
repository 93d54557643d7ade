package models

import "time"

// Comment is a discussion entry under an issue. Append-only; hidden
// comments stay stored but are excluded from listings.
type Comment struct {
	ID        string    `json:"id"`
	IssueID   string    `json:"issue_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Hidden    bool      `json:"hidden"`
}
