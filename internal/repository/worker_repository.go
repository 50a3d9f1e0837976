package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hiremefor/backend/internal/model"
)

// WorkerRepo persists worker accounts in the 'workers' table.
type WorkerRepo struct{ DB *sql.DB }

func NewWorkerRepo(db *sql.DB) *WorkerRepo { return &WorkerRepo{DB: db} }

// LoginRow carries the columns needed to verify a PIN and build the login
// response.
type LoginRow struct {
	ID        uint64
	PinHash   string
	FirstName string
	Surname   string
}

// SkillAssignment pairs a skill with years of experience for registration
// and skill updates.
type SkillAssignment struct {
	SkillID         uint64 `json:"skill_id"`
	YearsExperience int    `json:"years_experience"`
}

// RegisterInput is the full payload of the final registration step. PinHash
// is the bcrypt hash the client carried forward from the create-pin step.
type RegisterInput struct {
	PhoneNumber string
	PinHash     string
	FirstName   string
	Surname     string
	Age         int
	Gender      string
	AreaID      uint64
	Bio         *string
	Email       *string
	Skills      []SkillAssignment
}

// Profile is a worker row joined with its area name.
type Profile struct {
	model.Worker
	AreaName *string `json:"area_name"`
}

// ExistsByPhone reports whether a worker row exists for the phone number.
func (r *WorkerRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM workers WHERE phone_number=? LIMIT 1", phone).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IDByPhone returns the worker id for a phone number, or sql.ErrNoRows.
func (r *WorkerRepo) IDByPhone(ctx context.Context, phone string) (uint64, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM workers WHERE phone_number=? LIMIT 1", phone).Scan(&id)
	return id, err
}

// GetForLogin fetches the credential columns by phone number.
func (r *WorkerRepo) GetForLogin(ctx context.Context, phone string) (LoginRow, error) {
	var w LoginRow
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, pin_hash, first_name, surname FROM workers WHERE phone_number=? LIMIT 1",
		phone).Scan(&w.ID, &w.PinHash, &w.FirstName, &w.Surname)
	return w, err
}

// Register creates the worker row and its skill assignments in one
// transaction. Phone uniqueness is enforced by the unique constraint; a
// duplicate submission returns ErrPhoneExists.
func (r *WorkerRepo) Register(ctx context.Context, in RegisterInput) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO workers (phone_number, pin_hash, first_name, surname, age, gender, area_id, bio, email)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		in.PhoneNumber, in.PinHash, in.FirstName, in.Surname, in.Age, in.Gender, in.AreaID, in.Bio, in.Email)
	if err != nil {
		if isDup(err) {
			return 0, ErrPhoneExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, s := range in.Skills {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO worker_skills (worker_id, skill_id, years_experience) VALUES (?,?,?)",
			id, s.SkillID, s.YearsExperience); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetProfile fetches a worker joined with its area name.
func (r *WorkerRepo) GetProfile(ctx context.Context, id uint64) (Profile, error) {
	var p Profile
	err := r.DB.QueryRowContext(ctx,
		`SELECT w.id, w.phone_number, w.pin_hash, w.first_name, w.surname, w.age, w.gender,
		        w.area_id, w.bio, w.email, w.profile_photo_url, w.created_at, w.updated_at,
		        a.name AS area_name
		 FROM workers w
		 LEFT JOIN areas a ON w.area_id = a.id
		 WHERE w.id=? LIMIT 1`,
		id).Scan(&p.ID, &p.PhoneNumber, &p.PinHash, &p.FirstName, &p.Surname, &p.Age, &p.Gender,
		&p.AreaID, &p.Bio, &p.Email, &p.ProfilePhotoURL, &p.CreatedAt, &p.UpdatedAt, &p.AreaName)
	return p, err
}

// ProfileUpdate carries the editable profile columns.
type ProfileUpdate struct {
	FirstName string
	Surname   string
	Age       int
	Gender    string
	AreaID    uint64
	Bio       *string
	Email     *string
}

// UpdateProfile overwrites the editable columns of a worker row.
func (r *WorkerRepo) UpdateProfile(ctx context.Context, id uint64, up ProfileUpdate) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE workers SET first_name=?, surname=?, age=?, gender=?, area_id=?, bio=?, email=?
		 WHERE id=?`,
		up.FirstName, up.Surname, up.Age, up.Gender, up.AreaID, up.Bio, up.Email, id)
	return err
}

// UpdatePin replaces the stored PIN hash.
func (r *WorkerRepo) UpdatePin(ctx context.Context, id uint64, pinHash string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE workers SET pin_hash=? WHERE id=?", pinHash, id)
	return err
}

// PhotoURL returns the current profile photo path, nil when unset.
func (r *WorkerRepo) PhotoURL(ctx context.Context, id uint64) (*string, error) {
	var url *string
	err := r.DB.QueryRowContext(ctx,
		"SELECT profile_photo_url FROM workers WHERE id=? LIMIT 1", id).Scan(&url)
	return url, err
}

// UpdatePhotoURL stores the path of a freshly processed photo.
func (r *WorkerRepo) UpdatePhotoURL(ctx context.Context, id uint64, url string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE workers SET profile_photo_url=? WHERE id=?", url, id)
	return err
}

// Delete removes a worker; skills, ratings and sessions go with it via
// ON DELETE CASCADE.
func (r *WorkerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM workers WHERE id=?", id)
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

// Count returns the total number of workers (admin dashboard).
func (r *WorkerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM workers").Scan(&n)
	return n, err
}

// Recent lists the most recently registered workers for the dashboard.
type RecentWorker struct {
	ID          uint64    `json:"id"`
	FirstName   string    `json:"first_name"`
	Surname     string    `json:"surname"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *WorkerRepo) Recent(ctx context.Context, limit int) ([]RecentWorker, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, first_name, surname, phone_number, created_at FROM workers ORDER BY created_at DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecentWorker, 0, limit)
	for rows.Next() {
		var w RecentWorker
		if err := rows.Scan(&w.ID, &w.FirstName, &w.Surname, &w.PhoneNumber, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// AdminSearch pages through all workers, optionally filtering by name or
// phone substring.
func (r *WorkerRepo) AdminSearch(ctx context.Context, search string, page, limit int) ([]Profile, int64, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = "WHERE w.first_name LIKE ? OR w.surname LIKE ? OR w.phone_number LIKE ?"
		pat := "%" + search + "%"
		args = append(args, pat, pat, pat)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workers w "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	argsData := append(append([]any{}, args...), limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT w.id, w.phone_number, w.pin_hash, w.first_name, w.surname, w.age, w.gender,
		        w.area_id, w.bio, w.email, w.profile_photo_url, w.created_at, w.updated_at,
		        a.name AS area_name
		 FROM workers w
		 LEFT JOIN areas a ON w.area_id = a.id
		 `+where+`
		 ORDER BY w.created_at DESC
		 LIMIT ? OFFSET ?`, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Profile, 0, limit)
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.PhoneNumber, &p.PinHash, &p.FirstName, &p.Surname, &p.Age, &p.Gender,
			&p.AreaID, &p.Bio, &p.Email, &p.ProfilePhotoURL, &p.CreatedAt, &p.UpdatedAt, &p.AreaName); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}
