package model

import "time"

// Rating moderation states. A rating is created pending and moves exactly
// once to accepted or rejected by the rated worker; terminal states are
// immutable.
const (
	RatingPending  = "pending"
	RatingAccepted = "accepted"
	RatingRejected = "rejected"
)

// Rating models a row in the `ratings` table. Stars is constrained to 1..5
// by the schema. ReviewedAt is set when the owning worker accepts or rejects.
type Rating struct {
	ID         uint64     `json:"id"`
	WorkerID   uint64     `json:"worker_id"`
	Stars      int        `json:"stars"`
	Comment    *string    `json:"comment"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at"`
}

// RatingSummary is the public aggregate over accepted ratings only. Zero
// accepted ratings yields Average 0 and Count 0, never null.
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"total_ratings"`
}
