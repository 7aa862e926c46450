package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/addisco/consulting-api/internal/core/domain"
	"github.com/addisco/consulting-api/internal/core/ports"
)

// Context keys set by the auth middleware.
const (
	IdentityKey = "identity"
	RoleKey     = "role"
)

// Auth validates the bearer token and injects the caller identity into
// context. Requests without a valid token are rejected.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(IdentityKey, identity)
			c.Set(RoleKey, identity.Role)
			return next(c)
		}
	}
}

// OptionalAuth injects the caller identity when a valid bearer token is
// present and lets the request through anonymously otherwise. Used on the
// public intake endpoint so authenticated submissions carry their identity.
func OptionalAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return next(c)
			}
			identity, err := tokens.Verify(raw)
			if err != nil {
				return next(c)
			}
			c.Set(IdentityKey, identity)
			c.Set(RoleKey, identity.Role)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
