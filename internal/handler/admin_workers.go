package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/repository"
)

// Dashboard returns the entity counts plus the ten most recently registered
// workers.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	workers, err := h.Workers.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: worker count failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}
	skills, err := h.Skills.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: skill count failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}
	areas, err := h.Areas.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: area count failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}
	ratings, err := h.Ratings.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: rating count failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}
	recent, err := h.Workers.Recent(ctx, 10)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: recent workers failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"counts": echo.Map{
			"workers": workers,
			"skills":  skills,
			"areas":   areas,
			"ratings": ratings,
		},
		"recent_workers": recent,
	})
}

// ListWorkers pages through all workers, optionally filtered by a name or
// phone substring via ?search.
func (h *AdminHandler) ListWorkers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	workers, total, err := h.Workers.AdminSearch(ctx, c.QueryParam("search"), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("admin workers: list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load workers"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"workers":    workers,
		"pagination": paginate(total, page, limit),
	})
}

// GetWorker returns the full admin view of one worker including skills and
// rating counters.
func (h *AdminHandler) GetWorker(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid worker ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Workers.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Worker not found"})
		}
		log.Error().Err(err).Uint64("worker_id", id).Msg("admin workers: load failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load worker"})
	}

	stats, err := h.Ratings.StatsForWorker(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", id).Msg("admin workers: stats failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load worker"})
	}

	return c.JSON(http.StatusOK, echo.Map{"worker": p, "rating_stats": stats})
}

// DeleteWorker removes a worker and everything cascading from it.
func (h *AdminHandler) DeleteWorker(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid worker ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Workers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Worker not found"})
		}
		log.Error().Err(err).Uint64("worker_id", id).Msg("admin workers: delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete worker"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Worker deleted successfully"})
}
