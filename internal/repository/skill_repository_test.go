package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSkillDeleteInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM worker_skills WHERE skill_id=?")).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewSkillRepo(db)
	err = repo.Delete(context.Background(), 2)
	require.True(t, errors.Is(err, ErrInUse), "want ErrInUse, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSkillDeleteUnreferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM worker_skills WHERE skill_id=?")).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM skills WHERE id=?")).
		WithArgs(uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSkillRepo(db)
	require.NoError(t, repo.Delete(context.Background(), 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSkillCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO skills").
		WithArgs("Plumbing").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'Plumbing' for key 'skills.name'"))

	repo := NewSkillRepo(db)
	_, err = repo.Create(context.Background(), "Plumbing")
	require.True(t, errors.Is(err, ErrDuplicateName), "want ErrDuplicateName, got %v", err)
}
