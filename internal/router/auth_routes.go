package router

import (
	"github.com/labstack/echo/v4" // route group types

	"github.com/hiremefor/backend/internal/config"     // rate limit settings
	"github.com/hiremefor/backend/internal/middleware" // token bucket limiter
)

// registerAuth registers the registration wizard and session endpoints.
// None of these require an existing session; the OTP senders sit behind the
// Redis token bucket because every request costs an SMS.
func registerAuth(api *echo.Group, d Deps) {
	g := api.Group("/auth") // unauthenticated auth operations live under /api/auth

	limited := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis) // per-IP bucket guarding SMS spend

	// Registration wizard steps: request a code, verify it, choose a PIN.
	// The final profile submission lives at /api/worker/register.
	g.POST("/request-otp", d.Auth.RequestOTP, limited)
	g.POST("/verify-otp", d.Auth.VerifyOTP)
	g.POST("/create-pin", d.Auth.CreatePin)

	// Session lifecycle.  Logout reads the bearer token directly and stays
	// outside the auth middleware so an expired token still logs out cleanly.
	g.POST("/login", d.Auth.Login)
	g.POST("/logout", d.Auth.Logout)

	// PIN reset: same OTP flow against a registered phone.
	g.POST("/reset-pin-request", d.Auth.ResetPinRequest, limited)
	g.POST("/reset-pin", d.Auth.ResetPin)
}
