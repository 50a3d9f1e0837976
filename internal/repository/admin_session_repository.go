package repository

import (
	"context"
	"database/sql"
	"time"
)

// AdminPrincipal is the request identity resolved from an admin bearer token.
type AdminPrincipal struct {
	AdminID  uint64
	Username string
}

// AdminSessionRepo manages opaque bearer tokens in the 'admin_sessions'
// table, mirroring WorkerSessionRepo for the admin principal.
type AdminSessionRepo struct{ DB *sql.DB }

func NewAdminSessionRepo(db *sql.DB) *AdminSessionRepo { return &AdminSessionRepo{DB: db} }

// Create persists a new admin session row.
func (r *AdminSessionRepo) Create(ctx context.Context, adminID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_sessions (admin_id, token, expires_at) VALUES (?,?,?)",
		adminID, token, exp)
	return err
}

// AdminByToken resolves a non-expired session joined to its admin row.
func (r *AdminSessionRepo) AdminByToken(ctx context.Context, token string) (AdminPrincipal, error) {
	var p AdminPrincipal
	err := r.DB.QueryRowContext(ctx,
		`SELECT a.id, a.username
		 FROM admin_sessions s
		 JOIN main_admin a ON a.id = s.admin_id
		 WHERE s.token=? AND s.expires_at > UTC_TIMESTAMP()
		 LIMIT 1`,
		token).Scan(&p.AdminID, &p.Username)
	return p, err
}

// Delete removes a single session row; idempotent like worker logout.
func (r *AdminSessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM admin_sessions WHERE token=?", token)
	return err
}
