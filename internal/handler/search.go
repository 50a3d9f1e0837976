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

	"github.com/hiremefor/backend/internal/model"
	"github.com/hiremefor/backend/internal/repository"
)

// SearchHandler serves the unauthenticated client-facing endpoints: worker
// search, public profiles and rating submission.
type SearchHandler struct {
	Workers *repository.WorkerRepo
	Skills  *repository.WorkerSkillRepo
	Ratings *repository.RatingRepo
}

func NewSearchHandler(w *repository.WorkerRepo, sk *repository.WorkerSkillRepo, r *repository.RatingRepo) *SearchHandler {
	return &SearchHandler{Workers: w, Skills: sk, Ratings: r}
}

// SearchWorkers filters the directory by skill and area with whitelisted
// sorting and fixed page sizes. Unknown filter or sort values fall back to
// defaults rather than erroring.
func (h *SearchHandler) SearchWorkers(c echo.Context) error {
	q := repository.WorkerSearchQuery{
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	q.SkillID, _ = strconv.ParseUint(c.QueryParam("skill_id"), 10, 64)
	q.AreaID, _ = strconv.ParseUint(c.QueryParam("area_id"), 10, 64)
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	q.Normalize()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	workers, total, err := h.Workers.Search(ctx, q)
	if err != nil {
		log.Error().Err(err).Msg("search: query failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Search failed"})
	}

	for i := range workers {
		skills, err := h.Skills.ListForWorker(ctx, workers[i].ID)
		if err != nil {
			log.Error().Err(err).Uint64("worker_id", workers[i].ID).Msg("search: skills load failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Search failed"})
		}
		workers[i].Skills = skills
	}

	return c.JSON(http.StatusOK, echo.Map{
		"workers":    workers,
		"pagination": paginate(total, q.Page, q.Limit),
	})
}

type publicProfileResp struct {
	ID              uint64              `json:"id"`
	FirstName       string              `json:"first_name"`
	Surname         string              `json:"surname"`
	Age             int                 `json:"age"`
	Gender          string              `json:"gender"`
	Bio             *string             `json:"bio"`
	ProfilePhotoURL *string             `json:"profile_photo_url"`
	AreaName        *string             `json:"area_name"`
	AverageRating   float64             `json:"average_rating"`
	TotalRatings    int                 `json:"total_ratings"`
	Skills          []model.WorkerSkill `json:"skills"`
}

// GetWorker returns the public view of one worker: no phone number, no
// email, accepted ratings only.
func (h *SearchHandler) GetWorker(c echo.Context) error {
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
		log.Error().Err(err).Uint64("worker_id", id).Msg("public profile: load failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load worker"})
	}

	skills, err := h.Skills.ListForWorker(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", id).Msg("public profile: skills load failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load worker"})
	}
	summary, err := h.Ratings.Summary(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", id).Msg("public profile: rating summary failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load worker"})
	}

	return c.JSON(http.StatusOK, publicProfileResp{
		ID:              p.ID,
		FirstName:       p.FirstName,
		Surname:         p.Surname,
		Age:             p.Age,
		Gender:          p.Gender,
		Bio:             p.Bio,
		ProfilePhotoURL: p.ProfilePhotoURL,
		AreaName:        p.AreaName,
		AverageRating:   summary.Average,
		TotalRatings:    summary.Count,
		Skills:          skills,
	})
}

type rateWorkerReq struct {
	Stars   int     `json:"stars" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=500"`
}

// RateWorker records a client rating as pending. It becomes public only if
// the worker accepts it.
func (h *SearchHandler) RateWorker(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid worker ID"})
	}

	var req rateWorkerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Stars < 1 || req.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Rating must be between 1 and 5 stars"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Workers.GetProfile(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Worker not found"})
		}
		log.Error().Err(err).Uint64("worker_id", id).Msg("rate: worker lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit rating"})
	}

	if err := h.Ratings.Create(ctx, id, req.Stars, req.Comment); err != nil {
		log.Error().Err(err).Uint64("worker_id", id).Msg("rate: insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit rating"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Rating submitted for review"})
}
