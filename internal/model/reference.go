package model

import "time"

// Area is a reference row in the `areas` table. Province is optional.
// WorkerCount is an aggregate joined in for the admin listing only.
type Area struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Province    *string   `json:"province"`
	CreatedAt   time.Time `json:"created_at"`
	WorkerCount int       `json:"worker_count,omitempty"`
}

// Skill is a reference row in the `skills` table with a unique name.
type Skill struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	WorkerCount int       `json:"worker_count,omitempty"`
}
