package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// RestrictTo allows only the given user types through. The allowed set is
// fixed at registration time. Must run strictly after Protect, which is what
// puts the role on the context; without it every request is forbidden.
func RestrictTo(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
