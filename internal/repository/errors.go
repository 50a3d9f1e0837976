// Package repository implements data access against the MySQL schema. This
// file defines sentinel error values shared across repositories so handlers
// can map failure scenarios to HTTP statuses without string matching. For
// example ErrInUse signals that a reference row (skill, area) still has
// dependent records and must not be deleted, while ErrPhoneExists surfaces
// the workers.phone_number unique constraint as a registration conflict.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when the requested row does not exist, does not
// belong to the caller, or is not in a state the operation applies to.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInUse is returned when a delete cannot be performed because dependent
// records still reference the row, such as deleting a skill that workers
// have assigned. Handlers translate this into an HTTP 400 response with a
// specific message.
var ErrInUse = errors.New("in use")

// ErrPhoneExists is returned when registration collides with an existing
// workers.phone_number row.
var ErrPhoneExists = errors.New("phone number already registered")

// ErrDuplicateName is returned when a reference insert or rename violates a
// unique name constraint.
var ErrDuplicateName = errors.New("name already exists")

// ErrInvalidOTP collapses every OTP failure (wrong code, expired, already
// used, never issued) into a single outcome so no distinction leaks to the
// caller.
var ErrInvalidOTP = errors.New("invalid or expired OTP")

// isDup reports whether err is a MySQL duplicate-key violation (error 1062).
func isDup(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
