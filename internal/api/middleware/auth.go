package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-api/internal/api/metrics"
	"github.com/clinicore/clinic-api/internal/core/domain"
)

// Context keys under which Protect stashes the resolved identity.
const (
	UserKey = "user"
	RoleKey = "role"
)

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Protect rejects requests without a currently valid session and attaches the
// resolved user record to the echo context for downstream handlers. It is a
// pure gate: no mutation, and it must run before any role check.
func Protect(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				metrics.TokenChecksTotal.WithLabelValues("missing").Inc()
				return domain.ErrNotLoggedIn
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenChecksTotal.WithLabelValues("missing").Inc()
				return domain.ErrNotLoggedIn
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				metrics.TokenChecksTotal.WithLabelValues(checkResult(err)).Inc()
				return err
			}

			metrics.TokenChecksTotal.WithLabelValues("ok").Inc()
			c.Set(UserKey, user)
			c.Set(RoleKey, user.UserType)

			return next(c)
		}
	}
}

func checkResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserGone):
		return "user_gone"
	case errors.Is(err, domain.ErrPasswordChanged):
		return "stale_password"
	default:
		return "invalid"
	}
}

// CurrentUser returns the user attached by Protect, or nil when the request
// never passed through it.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserKey).(*domain.User)
	return user
}
