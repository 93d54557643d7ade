// Package trending computes the priority score used to rank issues.
package trending

import (
	"time"

	"civicpulse/internal/models"
)

// Scoring constants: each upvote is worth WeightUpvotes points, and an
// issue earns up to RecencyWindowDays extra points that decay linearly
// with age and bottom out at zero.
const (
	WeightUpvotes     = 2
	RecencyWindowDays = 7
)

// Score returns the trending score of an issue at the given instant.
// Non-increasing in age for a fixed upvote count, non-decreasing in
// upvote count for a fixed age.
func Score(issue *models.Issue, now time.Time) float64 {
	daysSince := now.Sub(issue.CreatedAt).Hours() / 24
	recency := RecencyWindowDays - daysSince
	if recency < 0 {
		recency = 0
	}
	return float64(issue.UpvoteCount)*WeightUpvotes + recency
}
