// Package models contains data structures for the application's domain records.
package models

import "time"

// UserRole describes the privilege level of a user account.
type UserRole string

// Known user roles.
const (
	RoleGuest      UserRole = "guest"
	RoleResident   UserRole = "resident"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// CanTriage reports whether the role may change issue statuses and
// resolve moderation reports.
func (r UserRole) CanTriage() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents a resident or administrator account.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          UserRole  `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	LastLoginAt   time.Time `json:"last_login_at"`
	IsBanned      bool      `json:"is_banned"`
	Neighborhood  string    `json:"neighborhood,omitempty"`
	NotifsEnabled bool      `json:"notifs_enabled"`
}

// StoredUser is the persisted form of a user. The password hash lives
// only here; sessions and API-facing values carry a plain User.
type StoredUser struct {
	User
	PasswordHash string `json:"password_hash,omitempty"`
}

// UserStats aggregates a user's reporting activity. Computed, never stored.
type UserStats struct {
	ReportCount int `json:"report_count"`
	UpvoteCount int `json:"upvote_count"`
}
