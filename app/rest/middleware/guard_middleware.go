package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-client/app/port"
)

// GuardMiddleware gates routes on the session state. Presence of an identity
// is the whole predicate: verification gates specific operations, not
// navigation.
type GuardMiddleware struct {
	session port.SessionManager
	logger  *slog.Logger
}

// NewGuardMiddleware creates a new access guard.
func NewGuardMiddleware(session port.SessionManager, logger *slog.Logger) *GuardMiddleware {
	return &GuardMiddleware{
		session: session,
		logger:  logger,
	}
}

// RequireIdentity rejects anonymous requests with 401.
func (m *GuardMiddleware) RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := m.session.Snapshot()
			if !state.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set("subject_id", state.Identity.SubjectID)
			c.Set("email", state.Identity.Email)
			c.Set("email_verified", state.Identity.EmailVerified)

			return next(c)
		}
	}
}

// RedirectAnonymous sends anonymous browser requests to the entry point
// instead of answering 401.
func (m *GuardMiddleware) RedirectAnonymous(entry string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := m.session.Snapshot()
			if !state.Authenticated() {
				m.logger.Debug("redirecting anonymous request",
					"path", c.Request().URL.Path,
					"entry", entry)
				return c.Redirect(http.StatusFound, entry)
			}

			return next(c)
		}
	}
}
