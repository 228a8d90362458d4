package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a populated user_id
// proves the middleware ran.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get("role").(string)
	return ports.Identity{UserID: userID, Role: role}, nil
}
