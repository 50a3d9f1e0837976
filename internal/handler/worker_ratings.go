package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/model"
	"github.com/hiremefor/backend/internal/repository"
)

// ListRatings returns the caller's ratings, optionally filtered by
// ?status=pending|accepted|rejected.
func (h *WorkerHandler) ListRatings(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	status := c.QueryParam("status")
	switch status {
	case "", model.RatingPending, model.RatingAccepted, model.RatingRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ratings, err := h.Ratings.ListForWorker(ctx, workerID, status)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("ratings: list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load ratings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ratings": ratings})
}

// ListPendingRatings is the dedicated moderation inbox: only ratings still
// awaiting the worker's decision.
func (h *WorkerHandler) ListPendingRatings(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ratings, err := h.Ratings.ListForWorker(ctx, workerID, model.RatingPending)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("ratings: pending list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load ratings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ratings": ratings})
}

// setRatingStatus is the shared moderation path: only a pending rating
// belonging to the caller can transition, and only once.
func (h *WorkerHandler) setRatingStatus(c echo.Context, status, okMsg string) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid rating ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Ratings.SetStatus(ctx, id, workerID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Pending rating not found"})
		}
		log.Error().Err(err).Uint64("worker_id", workerID).Uint64("rating_id", id).Msg("ratings: status update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update rating"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": okMsg})
}

// AcceptRating publishes a pending rating into the public average.
func (h *WorkerHandler) AcceptRating(c echo.Context) error {
	return h.setRatingStatus(c, model.RatingAccepted, "Rating accepted")
}

// RejectRating hides a pending rating permanently.
func (h *WorkerHandler) RejectRating(c echo.Context) error {
	return h.setRatingStatus(c, model.RatingRejected, "Rating rejected")
}

// RatingStats returns the moderation counters for the worker dashboard.
func (h *WorkerHandler) RatingStats(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Ratings.StatsForWorker(ctx, workerID)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("ratings: stats failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load rating stats"})
	}
	return c.JSON(http.StatusOK, stats)
}
