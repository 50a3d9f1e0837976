package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hiremefor/backend/internal/middleware"
)

// registerAdmin registers the admin panel API.  Login and logout stay
// outside the auth middleware; everything else requires a live admin
// session resolved by AdminAuth.
func registerAdmin(api *echo.Group, d Deps) {
	api.POST("/admin/login", d.Admin.Login)
	api.POST("/admin/logout", d.Admin.Logout)

	g := api.Group("/admin")
	g.Use(middleware.AdminAuth(d.Admin.Sessions))

	g.GET("/dashboard", d.Admin.Dashboard)

	// Worker management.
	g.GET("/workers", d.Admin.ListWorkers)
	g.GET("/workers/:id", d.Admin.GetWorker)
	g.DELETE("/workers/:id", d.Admin.DeleteWorker)

	// Reference CRUD.  Deletes are refused while workers still reference
	// the row.
	g.GET("/skills", d.Admin.AdminListSkills)
	g.POST("/skills", d.Admin.CreateSkill)
	g.PUT("/skills/:id", d.Admin.UpdateSkill)
	g.DELETE("/skills/:id", d.Admin.DeleteSkill)

	g.GET("/areas", d.Admin.AdminListAreas)
	g.POST("/areas", d.Admin.CreateArea)
	g.PUT("/areas/:id", d.Admin.UpdateArea)
	g.DELETE("/areas/:id", d.Admin.DeleteArea)

	// Ratings overview across all workers.
	g.GET("/ratings", d.Admin.ListRatings)
}
