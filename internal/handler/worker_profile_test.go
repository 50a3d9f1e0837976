package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremefor/backend/internal/config"
	"github.com/hiremefor/backend/internal/repository"
	"github.com/hiremefor/backend/internal/validation"
)

func newWorkerTestHandler(t *testing.T) (*WorkerHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewWorkerHandler(config.Config{SessionTTLHrs: 24, BcryptCost: 4},
		repository.NewWorkerRepo(db),
		repository.NewWorkerSkillRepo(db),
		repository.NewRatingRepo(db),
		repository.NewWorkerSessionRepo(db))
	return h, mock
}

func putJSONAsWorker(workerID uint64, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.EchoValidator{}
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("worker_id", workerID)
	return c, rec
}

func TestUpdateProfileBioTooLong(t *testing.T) {
	h, _ := newWorkerTestHandler(t)

	longBio := strings.Repeat("a", 501)
	c, rec := putJSONAsWorker(7, `{"first_name":"Thabo","surname":"Mokoena","age":30,"gender":"male","area_id":1,"bio":"`+longBio+`"}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bio must be 500 characters or less")
}

func TestUpdateProfileBioAtLimit(t *testing.T) {
	h, mock := newWorkerTestHandler(t)

	mock.ExpectExec("UPDATE workers SET first_name=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	bio := strings.Repeat("a", 500)
	c, rec := putJSONAsWorker(7, `{"first_name":"Thabo","surname":"Mokoena","age":30,"gender":"male","area_id":1,"bio":"`+bio+`"}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
