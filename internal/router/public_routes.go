package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hiremefor/backend/internal/config"
	"github.com/hiremefor/backend/internal/middleware"
)

// registerPublic registers the unauthenticated client-facing endpoints:
// worker search, public profiles, rating submission and the reference
// lists that back registration forms and search filters.  The read-only
// GETs sit behind the short-TTL Redis response cache.
func registerPublic(api *echo.Group, d Deps) {
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis) // 30s response cache on hot reads

	// Directory search and public profiles.
	api.GET("/search/workers", d.Search.SearchWorkers, cached)
	api.GET("/search/:id", d.Search.GetWorker, cached)
	api.POST("/search/:id/rate", d.Search.RateWorker)

	// Reference data for forms and filters.
	api.GET("/skills", d.Reference.ListSkills, cached)
	api.GET("/skills/search", d.Reference.SearchSkills, cached)
	api.GET("/areas", d.Reference.ListAreas, cached)
	api.GET("/areas/search", d.Reference.SearchAreas, cached)
}
