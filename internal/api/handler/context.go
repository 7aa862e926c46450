package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/addisco/consulting-api/internal/api/middleware"
	"github.com/addisco/consulting-api/internal/core/ports"
)

// ctxIdentity extracts the caller identity injected by the Auth middleware.
// Its presence proves the middleware ran; a missing identity on a protected
// route is a routing bug surfaced as 401.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(ports.Identity)
	if !ok || identity.UserID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// optionalIdentity returns the identity when present and a zero value for
// anonymous callers.
func optionalIdentity(c echo.Context) (ports.Identity, bool) {
	identity, ok := c.Get(middleware.IdentityKey).(ports.Identity)
	return identity, ok && identity.UserID != ""
}
