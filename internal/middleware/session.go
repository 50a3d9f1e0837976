package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"      // context with timeout for the session lookup
    "database/sql" // sql.ErrNoRows distinguishes bad tokens from storage failures
    "errors"       // errors.Is for sentinel comparison
    "net/http"     // HTTP status codes for responses
    "strings"      // string utilities for prefix checking and trimming
    "time"         // timeout durations

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers
    "github.com/rs/zerolog/log"   // structured logging for unexpected lookup failures

    "github.com/hiremefor/backend/internal/repository" // session repositories resolve tokens to principals
)

// bearerToken extracts the opaque token from the Authorization header.
// Returns "" when the header is missing or not a Bearer credential.
func bearerToken(c echo.Context) string {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return ""
    }
    return strings.TrimPrefix(auth, "Bearer ")
}

// WorkerAuth returns an Echo middleware that resolves a worker bearer token
// against the worker_sessions table and injects the joined identity into
// the request context. Handlers read it via c.Get("worker_id") and
// c.Get("worker"). Missing, unknown and expired tokens are indistinguishable
// to the client: all three produce the same 401.
func WorkerAuth(sessions *repository.WorkerSessionRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            token := bearerToken(c)
            if token == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
            }

            // Bound the DB lookup so a wedged connection cannot hold the
            // request open indefinitely.
            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            p, err := sessions.WorkerByToken(ctx, token)
            if err != nil {
                // sql.ErrNoRows covers not-found and expired alike; any
                // other error is a storage problem worth logging, but the
                // client still only learns that authentication failed.
                if !isNoRows(err) {
                    log.Error().Err(err).Msg("worker session lookup failed")
                    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Authentication failed"})
                }
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
            }

            // Store the request-scoped identity. There is no process-wide
            // current user; everything downstream reads the context.
            c.Set("worker_id", p.WorkerID)
            c.Set("worker", p)
            return next(c)
        }
    }
}

// AdminAuth is the admin counterpart of WorkerAuth, resolving tokens
// against admin_sessions joined to main_admin.
func AdminAuth(sessions *repository.AdminSessionRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            token := bearerToken(c)
            if token == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Admin authentication required"})
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            p, err := sessions.AdminByToken(ctx, token)
            if err != nil {
                if !isNoRows(err) {
                    log.Error().Err(err).Msg("admin session lookup failed")
                    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Admin authentication failed"})
                }
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired admin session"})
            }

            c.Set("admin_id", p.AdminID)
            c.Set("admin", p)
            return next(c)
        }
    }
}

func isNoRows(err error) bool {
    return errors.Is(err, sql.ErrNoRows)
}
