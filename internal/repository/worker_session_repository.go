package repository

import (
	"context"
	"database/sql"
	"time"
)

// WorkerPrincipal is the request identity resolved from a worker bearer
// token, carrying just enough of the joined worker row for handlers.
type WorkerPrincipal struct {
	WorkerID    uint64
	PhoneNumber string
	FirstName   string
	Surname     string
}

// WorkerSessionRepo manages opaque bearer tokens in the 'worker_sessions'
// table. A token is valid while its row exists and expires_at is in the
// future; there is no sliding renewal and no background sweeper.
type WorkerSessionRepo struct{ DB *sql.DB }

func NewWorkerSessionRepo(db *sql.DB) *WorkerSessionRepo { return &WorkerSessionRepo{DB: db} }

// Create persists a new session row.
func (r *WorkerSessionRepo) Create(ctx context.Context, workerID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO worker_sessions (worker_id, token, expires_at) VALUES (?,?,?)",
		workerID, token, exp)
	return err
}

// WorkerByToken resolves a non-expired session joined to its worker. An
// expired token behaves exactly like a missing one: sql.ErrNoRows.
func (r *WorkerSessionRepo) WorkerByToken(ctx context.Context, token string) (WorkerPrincipal, error) {
	var p WorkerPrincipal
	err := r.DB.QueryRowContext(ctx,
		`SELECT w.id, w.phone_number, w.first_name, w.surname
		 FROM worker_sessions s
		 JOIN workers w ON w.id = s.worker_id
		 WHERE s.token=? AND s.expires_at > UTC_TIMESTAMP()
		 LIMIT 1`,
		token).Scan(&p.WorkerID, &p.PhoneNumber, &p.FirstName, &p.Surname)
	return p, err
}

// Delete removes a single session row. Logout is idempotent, so deleting a
// token that no longer exists is not an error.
func (r *WorkerSessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM worker_sessions WHERE token=?", token)
	return err
}

// DeleteAllForWorker drops every session of a worker, forcing re-login
// everywhere. Used after a PIN reset.
func (r *WorkerSessionRepo) DeleteAllForWorker(ctx context.Context, workerID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM worker_sessions WHERE worker_id=?", workerID)
	return err
}
