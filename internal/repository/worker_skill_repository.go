package repository

import (
	"context"
	"database/sql"

	"github.com/hiremefor/backend/internal/model"
)

// WorkerSkillRepo manages rows in the 'worker_skills' table. The
// (worker_id, skill_id) pair is unique.
type WorkerSkillRepo struct{ DB *sql.DB }

func NewWorkerSkillRepo(db *sql.DB) *WorkerSkillRepo { return &WorkerSkillRepo{DB: db} }

// ListForWorker returns a worker's skill assignments joined with skill names.
func (r *WorkerSkillRepo) ListForWorker(ctx context.Context, workerID uint64) ([]model.WorkerSkill, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT ws.id, ws.worker_id, ws.skill_id, ws.years_experience, s.name AS skill_name
		 FROM worker_skills ws
		 JOIN skills s ON ws.skill_id = s.id
		 WHERE ws.worker_id=?`,
		workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WorkerSkill{}
	for rows.Next() {
		var ws model.WorkerSkill
		if err := rows.Scan(&ws.ID, &ws.WorkerID, &ws.SkillID, &ws.YearsExperience, &ws.SkillName); err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, rows.Err()
}

// Sync reconciles a worker's stored assignments with the submitted set in
// one transaction: assignments missing from the payload are removed,
// existing ones get their years updated, new ones are inserted.
func (r *WorkerSkillRepo) Sync(ctx context.Context, workerID uint64, skills []SkillAssignment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		"SELECT skill_id FROM worker_skills WHERE worker_id=?", workerID)
	if err != nil {
		return err
	}
	current := map[uint64]bool{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	submitted := map[uint64]bool{}
	for _, s := range skills {
		submitted[s.SkillID] = true
	}

	for id := range current {
		if !submitted[id] {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM worker_skills WHERE worker_id=? AND skill_id=?", workerID, id); err != nil {
				return err
			}
		}
	}
	for _, s := range skills {
		if current[s.SkillID] {
			if _, err := tx.ExecContext(ctx,
				"UPDATE worker_skills SET years_experience=? WHERE worker_id=? AND skill_id=?",
				s.YearsExperience, workerID, s.SkillID); err != nil {
				return err
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO worker_skills (worker_id, skill_id, years_experience) VALUES (?,?,?)",
				workerID, s.SkillID, s.YearsExperience); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// UpdateYears changes the experience on a single assignment owned by the
// worker.
func (r *WorkerSkillRepo) UpdateYears(ctx context.Context, id, workerID uint64, years int) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE worker_skills SET years_experience=? WHERE id=? AND worker_id=?",
		years, id, workerID)
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

// Delete removes a single assignment owned by the worker.
func (r *WorkerSkillRepo) Delete(ctx context.Context, id, workerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM worker_skills WHERE id=? AND worker_id=?", id, workerID)
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
