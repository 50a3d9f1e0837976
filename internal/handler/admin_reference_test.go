package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremefor/backend/internal/config"
	"github.com/hiremefor/backend/internal/repository"
)

func newAdminTestHandler(t *testing.T) (*AdminHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewAdminHandler(config.Config{SessionTTLHrs: 24, BcryptCost: 4},
		repository.NewAdminRepo(db),
		repository.NewAdminSessionRepo(db),
		repository.NewWorkerRepo(db),
		repository.NewSkillRepo(db),
		repository.NewAreaRepo(db),
		repository.NewRatingRepo(db))
	return h, mock
}

func deleteWithID(id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestDeleteSkillStillAssigned(t *testing.T) {
	h, mock := newAdminTestHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM worker_skills WHERE skill_id=`).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	c, rec := deleteWithID("4")
	require.NoError(t, h.DeleteSkill(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot delete skill - it is currently assigned to workers")
}

func TestDeleteSkillInvalidID(t *testing.T) {
	h, _ := newAdminTestHandler(t)

	c, rec := deleteWithID("banana")
	require.NoError(t, h.DeleteSkill(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid skill ID")
}

func TestDeleteAreaWithResidents(t *testing.T) {
	h, mock := newAdminTestHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM workers WHERE area_id=`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	c, rec := deleteWithID("9")
	require.NoError(t, h.DeleteArea(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot delete area - workers are currently assigned to it")
}
