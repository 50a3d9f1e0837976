package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hiremefor/backend/internal/config"
	"github.com/hiremefor/backend/internal/repository"
	"github.com/hiremefor/backend/internal/utils"
)

// AdminHandler serves the admin panel API: login, dashboard, worker
// management, reference CRUD and ratings moderation listing.
type AdminHandler struct {
	Cfg      config.Config
	Admins   *repository.AdminRepo
	Sessions *repository.AdminSessionRepo
	Workers  *repository.WorkerRepo
	Skills   *repository.SkillRepo
	Areas    *repository.AreaRepo
	Ratings  *repository.RatingRepo
}

func NewAdminHandler(cfg config.Config, a *repository.AdminRepo, s *repository.AdminSessionRepo,
	w *repository.WorkerRepo, sk *repository.SkillRepo, ar *repository.AreaRepo, r *repository.RatingRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Admins: a, Sessions: s, Workers: w, Skills: sk, Areas: ar, Ratings: r}
}

type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login: verify username+password and mint an admin session token. Unknown
// usernames and wrong passwords produce the same 401.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
		}
		log.Error().Err(err).Msg("admin login: lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	if !utils.VerifySecret(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
	}

	tok := utils.NewSessionToken(h.Cfg.SessionTTLHrs)
	if err := h.Sessions.Create(ctx, admin.ID, tok.Token, tok.Exp); err != nil {
		log.Error().Err(err).Msg("admin login: session create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   tok.Token,
		"admin":   echo.Map{"id": admin.ID, "username": admin.Username},
	})
}

// Logout deletes the bearer admin session row; idempotent.
func (h *AdminHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")

	if token != "" && token != auth {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Sessions.Delete(ctx, token); err != nil {
			log.Error().Err(err).Msg("admin logout: session delete failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Logout failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}
