package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

// Context keys set by Authorize for downstream handlers.
const (
	CtxUserID      = "user_id"
	CtxSystemAdmin = "system_admin"
)

// Authorize gates a route behind one authorization decision: session token
// from the cookie, capability fixed per route, store scope taken from the
// named path parameter (empty storeParam means the operation has no store
// scope). Denials are returned as domain sentinel errors and translated by
// the central error handler, so every protected route fails identically.
func Authorize(guard ports.Authorizer, capability domain.Capability, storeParam, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				return domain.ErrSessionInvalid
			}

			storeID := ""
			if storeParam != "" {
				storeID = c.Param(storeParam)
			}

			decision, err := guard.Authorize(c.Request().Context(), token, capability, storeID)
			if err != nil {
				return err
			}
			if !decision.Allowed {
				return decision.Err()
			}

			c.Set(CtxUserID, decision.UserID)
			c.Set(CtxSystemAdmin, decision.IsSystemAdmin)
			return next(c)
		}
	}
}
