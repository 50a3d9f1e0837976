package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestWorkerByToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT w.id, w.phone_number, w.first_name, w.surname").
		WithArgs("tok-abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone_number", "first_name", "surname"}).
			AddRow(12, "0821234567", "Thabo", "Mokoena"))

	repo := NewWorkerSessionRepo(db)
	p, err := repo.WorkerByToken(context.Background(), "tok-abc")
	require.NoError(t, err)
	require.Equal(t, uint64(12), p.WorkerID)
	require.Equal(t, "Thabo", p.FirstName)
}

// The expiry check lives in the WHERE clause, so an expired token produces
// the same no-rows answer as one that never existed.
func TestWorkerByTokenExpiredOrMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT w.id, w.phone_number, w.first_name, w.surname").
		WithArgs("tok-gone").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone_number", "first_name", "surname"}))

	repo := NewWorkerSessionRepo(db)
	_, err = repo.WorkerByToken(context.Background(), "tok-gone")
	require.True(t, errors.Is(err, sql.ErrNoRows), "want sql.ErrNoRows, got %v", err)
}

func TestSessionDeleteIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM worker_sessions WHERE token=?")).
		WithArgs("tok-gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewWorkerSessionRepo(db)
	require.NoError(t, repo.Delete(context.Background(), "tok-gone"))
}
