package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // sentinel errors such as sql.ErrNoRows
    "errors"       // errors.Is for sentinel comparison
    "net/http"     // HTTP status codes and primitives
    "os"           // broker URL from environment
    "strings"      // string trimming
    "time"         // timeouts for DB calls and OTP expiry

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing
    "github.com/rs/zerolog/log"   // structured logging of unexpected failures

    "github.com/hiremefor/backend/internal/config"     // app configuration
    "github.com/hiremefor/backend/internal/model"      // OTP purposes
    "github.com/hiremefor/backend/internal/queue"      // outbound SMS event payload
    "github.com/hiremefor/backend/internal/repository" // DB repositories
    queue_publisher "github.com/hiremefor/backend/internal/service"
    "github.com/hiremefor/backend/internal/sms"        // SMS gateway client and code generation
    "github.com/hiremefor/backend/internal/utils"      // hashing and token minting
    "github.com/hiremefor/backend/internal/validation" // field format checks
)

// AuthHandler bundles dependencies for the worker auth endpoints: the OTP
// driven registration wizard, login/logout and PIN reset.
type AuthHandler struct {
	Cfg      config.Config
	Workers  *repository.WorkerRepo
	Sessions *repository.WorkerSessionRepo
	Otps     *repository.OtpRepo
	SMS      *sms.Client
}

func NewAuthHandler(cfg config.Config, w *repository.WorkerRepo, s *repository.WorkerSessionRepo, o *repository.OtpRepo, sm *sms.Client) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Workers: w, Sessions: s, Otps: o, SMS: sm}
}

// ----- DTOs -----

type phoneReq struct {
	PhoneNumber string `json:"phone_number"`
}
type verifyOtpReq struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}
type createPinReq struct {
	PhoneNumber string `json:"phone_number"`
	Pin         string `json:"pin"`
}
type loginReq struct {
	PhoneNumber string `json:"phone_number"`
	Pin         string `json:"pin"`
}
type resetPinReq struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
	NewPin      string `json:"new_pin"`
}

type workerPart struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
}

// dispatchOTP hands the message to the sms.outbound queue so delivery never
// blocks the request. When publishing fails (broker down or absent) the
// gateway client is called synchronously instead; in development mode that
// just logs the code.
func (h *AuthHandler) dispatchOTP(ctx context.Context, phone, code, purpose string) error {
	ev := queue.OutboundSMSEvent{
		PhoneNumber: phone,
		Message:     sms.OTPMessage(code, purpose),
		Purpose:     purpose,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	url := queue_publisher.BrokerURL(os.Getenv("RABBITMQ_URL"))
	if err := queue_publisher.PublishOutboundSMS(ctx, url, ev); err == nil {
		return nil
	}
	return h.SMS.Send(ctx, phone, ev.Message)
}

// issueOTP generates, stores and dispatches a code for phone+purpose.
func (h *AuthHandler) issueOTP(ctx context.Context, phone, purpose string) error {
	code := sms.GenerateCode()
	expiresAt := time.Now().UTC().Add(time.Duration(h.Cfg.OtpTTLMin) * time.Minute)
	if err := h.Otps.Issue(ctx, phone, code, purpose, expiresAt); err != nil {
		return err
	}
	return h.dispatchOTP(ctx, phone, code, purpose)
}

// RequestOTP: start registration by texting a code to an unregistered phone.
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req phoneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validation.IsPhone(req.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number must be 10 digits"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	exists, err := h.Workers.ExistsByPhone(ctx, req.PhoneNumber)
	if err != nil {
		log.Error().Err(err).Msg("request-otp: phone lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send OTP"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number already registered"})
	}

	if err := h.issueOTP(ctx, req.PhoneNumber, model.OtpPurposeRegistration); err != nil {
		log.Error().Err(err).Msg("request-otp: issue failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send OTP"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent successfully"})
}

// VerifyOTP: consume the most recent valid registration code. The returned
// temp_token is echoed back for the wizard's next step and never checked
// again server-side; the consumed OTP row is the proof of phone control.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOtpReq
	if err := c.Bind(&req); err != nil || req.PhoneNumber == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number and OTP code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Otps.VerifyAndConsume(ctx, req.PhoneNumber, req.Code, model.OtpPurposeRegistration); err != nil {
		if errors.Is(err, repository.ErrInvalidOTP) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired OTP"})
		}
		log.Error().Err(err).Msg("verify-otp: consume failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to verify OTP"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "OTP verified successfully",
		"temp_token":   utils.NewTempToken(),
		"phone_number": req.PhoneNumber,
	})
}

// CreatePin: hash the chosen PIN and echo the hash back. Nothing is
// persisted here; the client carries the hash into the final registration
// step (stateless handoff).
func (h *AuthHandler) CreatePin(c echo.Context) error {
	var req createPinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validation.IsPIN(req.Pin) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "PIN must be 4 digits"})
	}

	hash, err := utils.HashSecret(req.Pin, h.Cfg.BcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("create-pin: hash failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create PIN"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "PIN created successfully",
		"phone_number": req.PhoneNumber,
		"pin_hash":     hash,
	})
}

// Login: verify phone+PIN and mint a session token. Unknown phones and
// wrong PINs produce the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.PhoneNumber == "" || req.Pin == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number and PIN required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w, err := h.Workers.GetForLogin(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid phone number or PIN"})
		}
		log.Error().Err(err).Msg("login: worker lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	if !utils.VerifySecret(w.PinHash, req.Pin) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid phone number or PIN"})
	}

	tok := utils.NewSessionToken(h.Cfg.SessionTTLHrs)
	if err := h.Sessions.Create(ctx, w.ID, tok.Token, tok.Exp); err != nil {
		log.Error().Err(err).Msg("login: session create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   tok.Token,
		"worker":  workerPart{ID: w.ID, FirstName: w.FirstName, Surname: w.Surname},
	})
}

// Logout: delete the bearer session row. Idempotent; a missing or already
// deleted token still reports success.
func (h *AuthHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")

	if token != "" && token != auth {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Sessions.Delete(ctx, token); err != nil {
			log.Error().Err(err).Msg("logout: session delete failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Logout failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// ResetPinRequest: text a pin_reset code to a registered phone.
func (h *AuthHandler) ResetPinRequest(c echo.Context) error {
	var req phoneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validation.IsPhone(req.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number must be 10 digits"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	exists, err := h.Workers.ExistsByPhone(ctx, req.PhoneNumber)
	if err != nil {
		log.Error().Err(err).Msg("reset-pin-request: phone lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send reset OTP"})
	}
	if !exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number not registered"})
	}

	if err := h.issueOTP(ctx, req.PhoneNumber, model.OtpPurposePinReset); err != nil {
		log.Error().Err(err).Msg("reset-pin-request: issue failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send reset OTP"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "PIN reset OTP sent successfully"})
}

// ResetPin: consume a pin_reset code, replace the stored hash and delete
// every session of the worker so all devices must log in again.
func (h *AuthHandler) ResetPin(c echo.Context) error {
	var req resetPinReq
	if err := c.Bind(&req); err != nil || req.PhoneNumber == "" || req.Code == "" || req.NewPin == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Phone number, OTP, and new PIN required"})
	}
	if !validation.IsPIN(req.NewPin) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "PIN must be 4 digits"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Otps.VerifyAndConsume(ctx, req.PhoneNumber, req.Code, model.OtpPurposePinReset); err != nil {
		if errors.Is(err, repository.ErrInvalidOTP) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired OTP"})
		}
		log.Error().Err(err).Msg("reset-pin: consume failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to reset PIN"})
	}

	workerID, err := h.Workers.IDByPhone(ctx, req.PhoneNumber)
	if err != nil {
		log.Error().Err(err).Msg("reset-pin: worker lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to reset PIN"})
	}

	hash, err := utils.HashSecret(req.NewPin, h.Cfg.BcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("reset-pin: hash failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to reset PIN"})
	}
	if err := h.Workers.UpdatePin(ctx, workerID, hash); err != nil {
		log.Error().Err(err).Msg("reset-pin: update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to reset PIN"})
	}
	if err := h.Sessions.DeleteAllForWorker(ctx, workerID); err != nil {
		log.Error().Err(err).Msg("reset-pin: session purge failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to reset PIN"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "PIN reset successfully"})
}
