package model

import "time"

// Session models a row in `worker_sessions` or `admin_sessions`. The token
// is an opaque UUID handed to the client as a bearer credential; the row is
// the single source of truth for its validity. Sessions are deleted on
// logout and on PIN reset, otherwise they live until ExpiresAt.
type Session struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"-"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Admin models a row in the `main_admin` table.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique admin login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type Admin struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
