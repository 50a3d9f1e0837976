package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hiremefor/backend/internal/middleware"
)

// registerWorker registers the authenticated self-service endpoints.  Every
// route in the group runs the WorkerAuth middleware, which resolves the
// bearer token to a live session row and injects worker identity into the
// request context.
func registerWorker(api *echo.Group, d Deps) {
	// The final registration step is public: the wizard has no session yet.
	api.POST("/worker/register", d.Auth.Register)

	g := api.Group("/worker")
	g.Use(middleware.WorkerAuth(d.Worker.Sessions))

	// Profile.
	g.GET("/profile", d.Worker.GetProfile)
	g.PUT("/profile", d.Worker.UpdateProfile)
	g.DELETE("/profile", d.Worker.DeleteAccount)
	g.POST("/profile/photo", d.Worker.UploadPhoto)

	// Skill assignments.  POST /skills reconciles the whole set against the
	// submitted array.
	g.GET("/skills", d.Worker.ListSkills)
	g.POST("/skills", d.Worker.SyncSkills)
	g.PUT("/skills/:id", d.Worker.UpdateSkillYears)
	g.DELETE("/skills/:id", d.Worker.DeleteSkill)

	// Rating moderation: only the rated worker decides what goes public.
	// Accept publishes; DELETE rejects. Terminal states never transition.
	g.GET("/ratings", d.Worker.ListRatings)
	g.GET("/ratings/pending", d.Worker.ListPendingRatings)
	g.PUT("/ratings/:id/accept", d.Worker.AcceptRating)
	g.DELETE("/ratings/:id", d.Worker.RejectRating)
	g.GET("/stats", d.Worker.RatingStats)
}
