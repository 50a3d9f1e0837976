package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/model"
	"github.com/hiremefor/backend/internal/repository"
)

// ReferenceHandler serves the public skill and area lookup lists used by
// registration forms and search filters.
type ReferenceHandler struct {
	Skills *repository.SkillRepo
	Areas  *repository.AreaRepo
}

func NewReferenceHandler(s *repository.SkillRepo, a *repository.AreaRepo) *ReferenceHandler {
	return &ReferenceHandler{Skills: s, Areas: a}
}

// ListSkills returns all skills, with per-skill worker counts.
func (h *ReferenceHandler) ListSkills(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	skills, err := h.Skills.ListWithCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reference: skills list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load skills"})
	}
	return c.JSON(http.StatusOK, echo.Map{"skills": skills})
}

// SearchSkills is the autocomplete endpoint: prefix match on ?q, first ten
// hits. An empty query returns an empty list rather than everything.
func (h *ReferenceHandler) SearchSkills(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{"skills": []model.Skill{}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	skills, err := h.Skills.Search(ctx, q)
	if err != nil {
		log.Error().Err(err).Msg("reference: skills search failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to search skills"})
	}
	return c.JSON(http.StatusOK, echo.Map{"skills": skills})
}

// ListAreas returns all areas with provinces and per-area worker counts.
func (h *ReferenceHandler) ListAreas(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	areas, err := h.Areas.ListWithCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reference: areas list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load areas"})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchAreas is the area autocomplete endpoint.
func (h *ReferenceHandler) SearchAreas(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{"areas": []model.Area{}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	areas, err := h.Areas.Search(ctx, q)
	if err != nil {
		log.Error().Err(err).Msg("reference: areas search failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to search areas"})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}
