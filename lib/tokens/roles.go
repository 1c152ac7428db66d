package tokens

import (
	"net/http"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/labstack/echo/v4"
)

// RoleMiddleware rejects callers whose role is not in the allowed set.
// It must run after Middleware so the role is on the context.
func RoleMiddleware(allowed ...common.Role) echo.MiddlewareFunc {
	allowedSet := make(map[common.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("UserRole").(common.Role)
			if !ok {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}
			if _, ok := allowedSet[role]; !ok {
				return c.JSON(http.StatusForbidden, responses.ForbiddenError)
			}
			return next(c)
		}
	}
}
