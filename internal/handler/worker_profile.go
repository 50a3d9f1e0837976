package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/config"
	"github.com/hiremefor/backend/internal/model"
	"github.com/hiremefor/backend/internal/repository"
	"github.com/hiremefor/backend/internal/validation"
)

// WorkerHandler serves the authenticated worker's own profile, skills,
// photo and rating moderation endpoints.
type WorkerHandler struct {
	Cfg      config.Config
	Workers  *repository.WorkerRepo
	Skills   *repository.WorkerSkillRepo
	Ratings  *repository.RatingRepo
	Sessions *repository.WorkerSessionRepo
}

func NewWorkerHandler(cfg config.Config, w *repository.WorkerRepo, sk *repository.WorkerSkillRepo, r *repository.RatingRepo, s *repository.WorkerSessionRepo) *WorkerHandler {
	return &WorkerHandler{Cfg: cfg, Workers: w, Skills: sk, Ratings: r, Sessions: s}
}

type profileResp struct {
	repository.Profile
	Skills        []model.WorkerSkill `json:"skills"`
	AverageRating float64             `json:"average_rating"`
	TotalRatings  int                 `json:"total_ratings"`
}

// GetProfile returns the caller's full profile with skills and the accepted
// rating summary.
func (h *WorkerHandler) GetProfile(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Workers.GetProfile(ctx, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Worker not found"})
		}
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("profile: load failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load profile"})
	}

	skills, err := h.Skills.ListForWorker(ctx, workerID)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("profile: skills load failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load profile"})
	}
	summary, err := h.Ratings.Summary(ctx, workerID)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("profile: rating summary failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load profile"})
	}

	return c.JSON(http.StatusOK, profileResp{
		Profile:       p,
		Skills:        skills,
		AverageRating: summary.Average,
		TotalRatings:  summary.Count,
	})
}

type updateProfileReq struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	Surname   string  `json:"surname" validate:"required,max=100"`
	Age       int     `json:"age" validate:"required,gte=16,lte=100"`
	Gender    string  `json:"gender" validate:"required,oneof=male female other"`
	AreaID    uint64  `json:"area_id" validate:"required"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	Email     *string `json:"email"`
}

// UpdateProfile overwrites the editable profile fields.
func (h *WorkerHandler) UpdateProfile(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Bio != nil && len(*req.Bio) > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Bio must be 500 characters or less"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing or invalid profile fields"})
	}
	if req.Email != nil && *req.Email != "" && !validation.IsEmail(*req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email address"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Workers.UpdateProfile(ctx, workerID, repository.ProfileUpdate{
		FirstName: req.FirstName,
		Surname:   req.Surname,
		Age:       req.Age,
		Gender:    req.Gender,
		AreaID:    req.AreaID,
		Bio:       req.Bio,
		Email:     req.Email,
	}); err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("profile: update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully"})
}

// DeleteAccount removes the worker row; skills, sessions, OTPs and ratings
// go with it via ON DELETE CASCADE.
func (h *WorkerHandler) DeleteAccount(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Workers.Delete(ctx, workerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Worker not found"})
		}
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("profile: delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete account"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Account deleted successfully"})
}
