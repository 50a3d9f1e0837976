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

type registerReq struct {
	PhoneNumber string                       `json:"phone_number" validate:"required,len=10,numeric"`
	PinHash     string                       `json:"pin_hash" validate:"required"`
	FirstName   string                       `json:"first_name" validate:"required,max=100"`
	Surname     string                       `json:"surname" validate:"required,max=100"`
	Age         int                          `json:"age" validate:"required,gte=16,lte=100"`
	Gender      string                       `json:"gender" validate:"required,oneof=male female other"`
	AreaID      uint64                       `json:"area_id" validate:"required"`
	Bio         *string                      `json:"bio" validate:"omitempty,max=500"`
	Email       *string                      `json:"email" validate:"omitempty,email"`
	Skills      []repository.SkillAssignment `json:"skills" validate:"omitempty,dive"`
}

// Register completes the wizard: one transaction inserts the worker row and
// its skill assignments. The pin_hash arrives from the create-pin step.
// Skills are optional at this point; the worker can build the set later.
// A session is not minted here, the worker logs in with the new PIN.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Bio != nil && len(*req.Bio) > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Bio must be 500 characters or less"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing or invalid registration fields"})
	}
	for _, s := range req.Skills {
		if s.SkillID == 0 || s.YearsExperience < 0 || s.YearsExperience > 80 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid skill entry"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := h.Workers.Register(ctx, repository.RegisterInput{
		PhoneNumber: req.PhoneNumber,
		PinHash:     req.PinHash,
		FirstName:   req.FirstName,
		Surname:     req.Surname,
		Age:         req.Age,
		Gender:      req.Gender,
		AreaID:      req.AreaID,
		Bio:         req.Bio,
		Email:       req.Email,
		Skills:      req.Skills,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPhoneExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number already registered"})
		}
		log.Error().Err(err).Msg("register: insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Registration successful",
		"worker_id": id,
	})
}
