package repository

import (
	"context"
	"database/sql"

	"github.com/hiremefor/backend/internal/model"
)

// AreaRepo manages the 'areas' reference table. Unlike skills, areas carry
// an optional province. Deletion is refused while workers are registered in
// the area.
type AreaRepo struct{ DB *sql.DB }

func NewAreaRepo(db *sql.DB) *AreaRepo { return &AreaRepo{DB: db} }

// List returns all areas ordered by name.
func (r *AreaRepo) List(ctx context.Context) ([]model.Area, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, province, created_at FROM areas ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAreas(rows, false)
}

// ListWithCounts returns all areas with registered-worker counts for the
// admin panel.
func (r *AreaRepo) ListWithCounts(ctx context.Context) ([]model.Area, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.name, a.province, a.created_at,
		   (SELECT COUNT(*) FROM workers w WHERE w.area_id = a.id) AS worker_count
		 FROM areas a ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAreas(rows, true)
}

// Search returns at most 10 areas whose name contains q, for autocomplete.
func (r *AreaRepo) Search(ctx context.Context, q string) ([]model.Area, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, province, created_at FROM areas WHERE name LIKE ? ORDER BY name LIMIT 10",
		"%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAreas(rows, false)
}

func scanAreas(rows *sql.Rows, withCount bool) ([]model.Area, error) {
	out := []model.Area{}
	for rows.Next() {
		var a model.Area
		var err error
		if withCount {
			err = rows.Scan(&a.ID, &a.Name, &a.Province, &a.CreatedAt, &a.WorkerCount)
		} else {
			err = rows.Scan(&a.ID, &a.Name, &a.Province, &a.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create inserts an area and returns its id.
func (r *AreaRepo) Create(ctx context.Context, name string, province *string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO areas (name, province) VALUES (?,?)", name, province)
	if err != nil {
		if isDup(err) {
			return 0, ErrDuplicateName
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update renames an area and replaces its province.
func (r *AreaRepo) Update(ctx context.Context, id uint64, name string, province *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE areas SET name=?, province=? WHERE id=?", name, province, id)
	if err != nil {
		if isDup(err) {
			return ErrDuplicateName
		}
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

// Delete removes an unreferenced area. Returns ErrInUse while any worker is
// registered in it.
func (r *AreaRepo) Delete(ctx context.Context, id uint64) error {
	var inUse int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workers WHERE area_id=?", id).Scan(&inUse); err != nil {
		return err
	}
	if inUse > 0 {
		return ErrInUse
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM areas WHERE id=?", id)
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

// Count returns the total number of areas (admin dashboard).
func (r *AreaRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM areas").Scan(&n)
	return n, err
}
