package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/repository"
)

type skillReq struct {
	Name string `json:"name"`
}

type areaReq struct {
	Name     string  `json:"name"`
	Province *string `json:"province"`
}

// AdminListSkills returns all skills with worker counts for the panel.
func (h *AdminHandler) AdminListSkills(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	skills, err := h.Skills.ListWithCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin skills: list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load skills"})
	}
	return c.JSON(http.StatusOK, echo.Map{"skills": skills})
}

// CreateSkill adds a new skill name; duplicates are rejected.
func (h *AdminHandler) CreateSkill(c echo.Context) error {
	var req skillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Skill name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Skills.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Skill already exists"})
		}
		log.Error().Err(err).Msg("admin skills: create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create skill"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Skill created successfully", "id": id})
}

// UpdateSkill renames a skill; duplicates are rejected.
func (h *AdminHandler) UpdateSkill(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid skill ID"})
	}
	var req skillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Skill name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Skills.UpdateName(ctx, id, req.Name); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Skill not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Skill already exists"})
		}
		log.Error().Err(err).Uint64("skill_id", id).Msg("admin skills: update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update skill"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Skill updated successfully"})
}

// DeleteSkill removes a skill unless workers still reference it.
func (h *AdminHandler) DeleteSkill(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid skill ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Skills.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrInUse):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot delete skill - it is currently assigned to workers"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Skill not found"})
		}
		log.Error().Err(err).Uint64("skill_id", id).Msg("admin skills: delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete skill"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Skill deleted successfully"})
}

// AdminListAreas returns all areas with worker counts for the panel.
func (h *AdminHandler) AdminListAreas(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	areas, err := h.Areas.ListWithCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin areas: list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load areas"})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// CreateArea adds a new area with an optional province.
func (h *AdminHandler) CreateArea(c echo.Context) error {
	var req areaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Area name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Areas.Create(ctx, req.Name, req.Province)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Area already exists"})
		}
		log.Error().Err(err).Msg("admin areas: create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create area"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Area created successfully", "id": id})
}

// UpdateArea renames an area and updates its province.
func (h *AdminHandler) UpdateArea(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid area ID"})
	}
	var req areaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Area name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Areas.Update(ctx, id, req.Name, req.Province); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Area not found"})
		case errors.Is(err, repository.ErrDuplicateName):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Area already exists"})
		}
		log.Error().Err(err).Uint64("area_id", id).Msg("admin areas: update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update area"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Area updated successfully"})
}

// DeleteArea removes an area unless workers still live in it.
func (h *AdminHandler) DeleteArea(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid area ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Areas.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrInUse):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot delete area - workers are currently assigned to it"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Area not found"})
		}
		log.Error().Err(err).Uint64("area_id", id).Msg("admin areas: delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete area"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Area deleted successfully"})
}
