package repository

import (
	"context"
	"database/sql"

	"github.com/hiremefor/backend/internal/model"
)

// RatingRepo persists star ratings in the 'ratings' table. Ratings are
// created pending; the rated worker moves them exactly once to accepted or
// rejected. Public aggregates only ever count accepted rows.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

// Create inserts a new pending rating for a worker.
func (r *RatingRepo) Create(ctx context.Context, workerID uint64, stars int, comment *string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO ratings (worker_id, stars, comment, status) VALUES (?,?,?,'pending')",
		workerID, stars, comment)
	return err
}

// ListForWorker returns a worker's ratings newest first, optionally filtered
// by status (empty status means all).
func (r *RatingRepo) ListForWorker(ctx context.Context, workerID uint64, status string) ([]model.Rating, error) {
	q := "SELECT id, worker_id, stars, comment, status, created_at, reviewed_at FROM ratings WHERE worker_id=?"
	args := []any{workerID}
	if status != "" {
		q += " AND status=?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Rating{}
	for rows.Next() {
		var m model.Rating
		if err := rows.Scan(&m.ID, &m.WorkerID, &m.Stars, &m.Comment, &m.Status, &m.CreatedAt, &m.ReviewedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetStatus transitions a pending rating owned by the worker to accepted or
// rejected and stamps reviewed_at. The status guard in the WHERE clause
// makes terminal states immutable: zero rows affected collapses "not mine",
// "missing" and "already processed" into ErrNotFound.
func (r *RatingRepo) SetStatus(ctx context.Context, id, workerID uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ratings SET status=?, reviewed_at=UTC_TIMESTAMP() WHERE id=? AND worker_id=? AND status='pending'",
		status, id, workerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary computes the public aggregate over accepted ratings. COALESCE
// keeps the average a defined 0 when no rating has been accepted.
func (r *RatingRepo) Summary(ctx context.Context, workerID uint64) (model.RatingSummary, error) {
	var s model.RatingSummary
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(stars), 0), COUNT(*)
		 FROM ratings WHERE worker_id=? AND status='accepted'`,
		workerID).Scan(&s.Average, &s.Count)
	return s, err
}

// Stats holds the moderation counters shown on the worker dashboard.
type Stats struct {
	AverageRating  float64 `json:"average_rating"`
	AcceptedCount  int     `json:"accepted_ratings"`
	PendingCount   int     `json:"pending_ratings"`
	TotalCount     int     `json:"total_ratings"`
}

// StatsForWorker aggregates a worker's ratings across all states.
func (r *RatingRepo) StatsForWorker(ctx context.Context, workerID uint64) (Stats, error) {
	var s Stats
	err := r.DB.QueryRowContext(ctx,
		`SELECT
		   COALESCE(AVG(CASE WHEN status='accepted' THEN stars END), 0),
		   COUNT(CASE WHEN status='accepted' THEN 1 END),
		   COUNT(CASE WHEN status='pending' THEN 1 END),
		   COUNT(*)
		 FROM ratings WHERE worker_id=?`,
		workerID).Scan(&s.AverageRating, &s.AcceptedCount, &s.PendingCount, &s.TotalCount)
	return s, err
}

// Count returns the total number of ratings (admin dashboard).
func (r *RatingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM ratings").Scan(&n)
	return n, err
}

// AdminRatingRow joins a rating with the rated worker for the admin listing.
type AdminRatingRow struct {
	model.Rating
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	PhoneNumber string `json:"phone_number"`
}

// AdminList pages through all ratings, optionally filtered by status.
func (r *RatingRepo) AdminList(ctx context.Context, status string, page, limit int) ([]AdminRatingRow, int64, error) {
	where := ""
	args := []any{}
	if status != "" {
		where = "WHERE r.status=?"
		args = append(args, status)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ratings r "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	argsData := append(append([]any{}, args...), limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.worker_id, r.stars, r.comment, r.status, r.created_at, r.reviewed_at,
		        w.first_name, w.surname, w.phone_number
		 FROM ratings r
		 JOIN workers w ON r.worker_id = w.id
		 `+where+`
		 ORDER BY r.created_at DESC
		 LIMIT ? OFFSET ?`, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]AdminRatingRow, 0, limit)
	for rows.Next() {
		var m AdminRatingRow
		if err := rows.Scan(&m.ID, &m.WorkerID, &m.Stars, &m.Comment, &m.Status, &m.CreatedAt, &m.ReviewedAt,
			&m.FirstName, &m.Surname, &m.PhoneNumber); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}
