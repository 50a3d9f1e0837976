package repository

import (
	"context"
	"database/sql"

	"github.com/hiremefor/backend/internal/model"
)

// SkillRepo manages the 'skills' reference table. Deletion is refused while
// any worker_skills row references the skill; referential integrity doubles
// as the business rule here.
type SkillRepo struct{ DB *sql.DB }

func NewSkillRepo(db *sql.DB) *SkillRepo { return &SkillRepo{DB: db} }

// List returns all skills ordered by name.
func (r *SkillRepo) List(ctx context.Context) ([]model.Skill, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at FROM skills ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSkills(rows, false)
}

// ListWithCounts returns all skills with the number of workers holding each,
// for the admin panel.
func (r *SkillRepo) ListWithCounts(ctx context.Context) ([]model.Skill, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, s.created_at,
		   (SELECT COUNT(*) FROM worker_skills ws WHERE ws.skill_id = s.id) AS worker_count
		 FROM skills s ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSkills(rows, true)
}

// Search returns at most 10 skills whose name contains q, for autocomplete.
func (r *SkillRepo) Search(ctx context.Context, q string) ([]model.Skill, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at FROM skills WHERE name LIKE ? ORDER BY name LIMIT 10",
		"%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSkills(rows, false)
}

func scanSkills(rows *sql.Rows, withCount bool) ([]model.Skill, error) {
	out := []model.Skill{}
	for rows.Next() {
		var s model.Skill
		var err error
		if withCount {
			err = rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.WorkerCount)
		} else {
			err = rows.Scan(&s.ID, &s.Name, &s.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a skill and returns its id. A unique-name collision
// returns ErrDuplicateName.
func (r *SkillRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO skills (name) VALUES (?)", name)
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

// UpdateName renames a skill.
func (r *SkillRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE skills SET name=? WHERE id=?", name, id)
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

// Delete removes an unreferenced skill. Returns ErrInUse while any worker
// still has the skill assigned.
func (r *SkillRepo) Delete(ctx context.Context, id uint64) error {
	var inUse int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM worker_skills WHERE skill_id=?", id).Scan(&inUse); err != nil {
		return err
	}
	if inUse > 0 {
		return ErrInUse
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM skills WHERE id=?", id)
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

// Count returns the total number of skills (admin dashboard).
func (r *SkillRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM skills").Scan(&n)
	return n, err
}
