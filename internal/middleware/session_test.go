package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremefor/backend/internal/repository"
)

func runWorkerAuth(t *testing.T, mock func(sqlmock.Sqlmock), authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	db, m, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	if mock != nil {
		mock(m)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, WorkerAuth(repository.NewWorkerSessionRepo(db))(next)(c))
	return rec, reached
}

func TestWorkerAuthMissingHeader(t *testing.T) {
	rec, reached := runWorkerAuth(t, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
	assert.False(t, reached)
}

func TestWorkerAuthNonBearerHeader(t *testing.T) {
	rec, reached := runWorkerAuth(t, nil, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestWorkerAuthUnknownToken(t *testing.T) {
	rec, reached := runWorkerAuth(t, func(m sqlmock.Sqlmock) {
		m.ExpectQuery("SELECT w.id, w.phone_number, w.first_name, w.surname").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "phone_number", "first_name", "surname"}))
	}, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired session")
	assert.False(t, reached)
}

func TestWorkerAuthInjectsIdentity(t *testing.T) {
	db, m, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m.ExpectQuery("SELECT w.id, w.phone_number, w.first_name, w.surname").
		WithArgs("tok-live").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone_number", "first_name", "surname"}).
			AddRow(42, "0821234567", "Thabo", "Mokoena"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-live")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		assert.Equal(t, uint64(42), c.Get("worker_id"))
		p, ok := c.Get("worker").(repository.WorkerPrincipal)
		require.True(t, ok)
		assert.Equal(t, "Thabo", p.FirstName)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, WorkerAuth(repository.NewWorkerSessionRepo(db))(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
