package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/hiremefor/backend/internal/handler" // import the handlers that implement business logic
)

// Deps bundles everything route registration needs: the handlers plus the
// optional Redis client backing the cache and rate-limit middleware. A nil
// Redis client degrades both to pass-throughs.
type Deps struct {
	Auth      *handler.AuthHandler
	Worker    *handler.WorkerHandler
	Search    *handler.SearchHandler
	Reference *handler.ReferenceHandler
	Admin     *handler.AdminHandler
	Redis     *redis.Client
}

// Register wires every route of the API under the /api prefix.
func Register(e *echo.Echo, d Deps) {
	// Map the GET request at path "/api/health" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/api/health", handler.Health)

	api := e.Group("/api") // every other route lives under /api

	registerAuth(api, d)   // OTP wizard, login, PIN reset
	registerWorker(api, d) // authenticated worker self-service
	registerPublic(api, d) // search, public profiles, reference lists
	registerAdmin(api, d)  // admin panel
}
