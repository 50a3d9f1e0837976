package repository

import (
	"context"
	"strings"

	"github.com/hiremefor/backend/internal/model"
)

// WorkerSearchQuery defines filters, sorting and pagination for the public
// worker search. Zero-valued filters are absent.
type WorkerSearchQuery struct {
	SkillID   uint64
	AreaID    uint64
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Page sizes offered to clients; anything else falls back to the default.
var allowedLimits = map[int]bool{10: true, 20: true, 50: true}

// Columns clients may sort on. "rating" maps to the accepted-average
// subquery alias rather than a real column.
var allowedSorts = map[string]bool{
	"first_name": true,
	"surname":    true,
	"age":        true,
	"rating":     true,
}

// Normalize clamps pagination to the allowed set and whitelists the sort
// key and direction, so raw query-string values never reach the SQL text.
func (q *WorkerSearchQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if !allowedLimits[q.Limit] {
		q.Limit = 10
	}
	if !allowedSorts[q.SortBy] {
		q.SortBy = "first_name"
	}
	if strings.ToUpper(q.SortOrder) == "DESC" {
		q.SortOrder = "DESC"
	} else {
		q.SortOrder = "ASC"
	}
}

// WorkerSearchRow is one public search result with its accepted-rating
// aggregate and joined skills.
type WorkerSearchRow struct {
	ID              uint64              `json:"id"`
	FirstName       string              `json:"first_name"`
	Surname         string              `json:"surname"`
	Age             int                 `json:"age"`
	Gender          string              `json:"gender"`
	ProfilePhotoURL *string             `json:"profile_photo_url"`
	Bio             *string             `json:"bio"`
	AreaName        *string             `json:"area_name"`
	AvgRating       *float64            `json:"avg_rating"`
	RatingCount     int                 `json:"rating_count"`
	Skills          []model.WorkerSkill `json:"skills"`
}

// Search filters workers by area and skill, orders by the normalized sort
// key and pages through the results. The skill filter is an existence match
// against worker_skills. When sorting by rating, workers without accepted
// ratings always sort after ranked ones.
func (r *WorkerRepo) Search(ctx context.Context, q WorkerSearchQuery) ([]WorkerSearchRow, int64, error) {
	q.Normalize()

	where := []string{}
	args := []any{}
	if q.AreaID != 0 {
		where = append(where, "w.area_id = ?")
		args = append(args, q.AreaID)
	}
	if q.SkillID != 0 {
		where = append(where, "EXISTS (SELECT 1 FROM worker_skills ws WHERE ws.worker_id = w.id AND ws.skill_id = ?)")
		args = append(args, q.SkillID)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workers w WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var order string
	if q.SortBy == "rating" {
		// MySQL has no NULLS LAST; the IS NULL term pins unranked workers
		// to the end for either direction.
		order = "ORDER BY (avg_rating IS NULL) ASC, avg_rating " + q.SortOrder + ", w.first_name ASC"
	} else {
		order = "ORDER BY w." + q.SortBy + " " + q.SortOrder
	}

	offset := (q.Page - 1) * q.Limit
	argsData := append(append([]any{}, args...), q.Limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		`SELECT
		   w.id, w.first_name, w.surname, w.age, w.gender,
		   w.profile_photo_url, w.bio,
		   a.name AS area_name,
		   (SELECT AVG(stars) FROM ratings rt WHERE rt.worker_id = w.id AND rt.status = 'accepted') AS avg_rating,
		   (SELECT COUNT(*) FROM ratings rt WHERE rt.worker_id = w.id AND rt.status = 'accepted') AS rating_count
		 FROM workers w
		 LEFT JOIN areas a ON w.area_id = a.id
		 WHERE `+cond+`
		 `+order+`
		 LIMIT ? OFFSET ?`, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]WorkerSearchRow, 0, q.Limit)
	for rows.Next() {
		var d WorkerSearchRow
		if err := rows.Scan(&d.ID, &d.FirstName, &d.Surname, &d.Age, &d.Gender,
			&d.ProfilePhotoURL, &d.Bio, &d.AreaName, &d.AvgRating, &d.RatingCount); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
