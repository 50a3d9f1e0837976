package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/model"
)

// ListRatings pages through all ratings with the rated worker attached,
// optionally filtered by ?status.
func (h *AdminHandler) ListRatings(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.RatingPending, model.RatingAccepted, model.RatingRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status filter"})
	}

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

	ratings, total, err := h.Ratings.AdminList(ctx, status, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("admin ratings: list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load ratings"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ratings":    ratings,
		"pagination": paginate(total, page, limit),
	})
}
