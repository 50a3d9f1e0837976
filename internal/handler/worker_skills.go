package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/repository"
)

type syncSkillsReq struct {
	Skills []repository.SkillAssignment `json:"skills" validate:"required,min=1,dive"`
}

type updateSkillYearsReq struct {
	YearsExperience int `json:"years_experience" validate:"gte=0,lte=80"`
}

// ListSkills returns the caller's skill assignments with skill names.
func (h *WorkerHandler) ListSkills(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	skills, err := h.Skills.ListForWorker(ctx, workerID)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("skills: list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load skills"})
	}
	return c.JSON(http.StatusOK, echo.Map{"skills": skills})
}

// SyncSkills replaces the caller's skill set with the submitted one in a
// single transaction: rows missing from the payload are deleted, existing
// ones get their years updated, new ones are inserted.
func (h *WorkerHandler) SyncSkills(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	var req syncSkillsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Skills) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "At least one skill is required"})
	}
	for _, s := range req.Skills {
		if s.SkillID == 0 || s.YearsExperience < 0 || s.YearsExperience > 80 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid skill entry"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Skills.Sync(ctx, workerID, req.Skills); err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("skills: sync failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update skills"})
	}

	skills, err := h.Skills.ListForWorker(ctx, workerID)
	if err != nil {
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("skills: reload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update skills"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Skills updated successfully", "skills": skills})
}

// UpdateSkillYears changes the experience on one of the caller's own skill
// rows. The WHERE clause pins the row to the caller, so another worker's
// row id just comes back not found.
func (h *WorkerHandler) UpdateSkillYears(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid skill ID"})
	}

	var req updateSkillYearsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.YearsExperience < 0 || req.YearsExperience > 80 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid years of experience"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Skills.UpdateYears(ctx, id, workerID, req.YearsExperience); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Skill not found"})
		}
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("skills: years update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update skill"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Skill updated successfully"})
}

// DeleteSkill removes one of the caller's own skill rows.
func (h *WorkerHandler) DeleteSkill(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid skill ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Skills.Delete(ctx, id, workerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Skill not found"})
		}
		log.Error().Err(err).Uint64("worker_id", workerID).Msg("skills: delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete skill"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Skill removed successfully"})
}
