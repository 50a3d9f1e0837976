package router

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremefor/backend/internal/config"
	"github.com/hiremefor/backend/internal/handler"
	"github.com/hiremefor/backend/internal/repository"
	"github.com/hiremefor/backend/internal/sms"
)

// The mobile app and admin panel are built against these exact paths, so
// the registered route table is part of the API contract.
func TestRegisteredRouteTable(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{SessionTTLHrs: 24, OtpTTLMin: 60, BcryptCost: 4}
	workers := repository.NewWorkerRepo(db)
	workerSkills := repository.NewWorkerSkillRepo(db)
	workerSessions := repository.NewWorkerSessionRepo(db)
	ratings := repository.NewRatingRepo(db)
	skills := repository.NewSkillRepo(db)
	areas := repository.NewAreaRepo(db)

	e := echo.New()
	Register(e, Deps{
		Auth:      handler.NewAuthHandler(cfg, workers, workerSessions, repository.NewOtpRepo(db), sms.NewClient("", "", "Test")),
		Worker:    handler.NewWorkerHandler(cfg, workers, workerSkills, ratings, workerSessions),
		Search:    handler.NewSearchHandler(workers, workerSkills, ratings),
		Reference: handler.NewReferenceHandler(skills, areas),
		Admin: handler.NewAdminHandler(cfg, repository.NewAdminRepo(db), repository.NewAdminSessionRepo(db),
			workers, skills, areas, ratings),
		Redis: nil,
	})

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /api/health",

		"POST /api/auth/request-otp",
		"POST /api/auth/verify-otp",
		"POST /api/auth/create-pin",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"POST /api/auth/reset-pin-request",
		"POST /api/auth/reset-pin",

		"POST /api/worker/register",
		"GET /api/worker/profile",
		"PUT /api/worker/profile",
		"DELETE /api/worker/profile",
		"POST /api/worker/profile/photo",
		"GET /api/worker/skills",
		"POST /api/worker/skills",
		"PUT /api/worker/skills/:id",
		"DELETE /api/worker/skills/:id",
		"GET /api/worker/ratings",
		"GET /api/worker/ratings/pending",
		"PUT /api/worker/ratings/:id/accept",
		"DELETE /api/worker/ratings/:id",
		"GET /api/worker/stats",

		"GET /api/search/workers",
		"GET /api/search/:id",
		"POST /api/search/:id/rate",

		"GET /api/skills",
		"GET /api/skills/search",
		"GET /api/areas",
		"GET /api/areas/search",

		"POST /api/admin/login",
		"POST /api/admin/logout",
		"GET /api/admin/dashboard",
		"GET /api/admin/workers",
		"GET /api/admin/workers/:id",
		"DELETE /api/admin/workers/:id",
		"GET /api/admin/skills",
		"POST /api/admin/skills",
		"PUT /api/admin/skills/:id",
		"DELETE /api/admin/skills/:id",
		"GET /api/admin/areas",
		"POST /api/admin/areas",
		"PUT /api/admin/areas/:id",
		"DELETE /api/admin/areas/:id",
		"GET /api/admin/ratings",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}

	// Paths that used to exist under other names must be gone.
	for _, route := range []string{
		"GET /api/workers/search",
		"POST /api/auth/register",
		"POST /api/auth/reset-pin/request",
		"PUT /api/worker/skills",
		"PUT /api/worker/ratings/:id/reject",
		"GET /api/worker/ratings/stats",
	} {
		assert.False(t, registered[route], "stale route %s still registered", route)
	}
}
