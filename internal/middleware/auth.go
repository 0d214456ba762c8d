package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"marketplace-backend/internal/auth"
	"marketplace-backend/internal/principal"
)

const principalKey = "principal"

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid access token and stores
// the resolved principal on the context.
func RequireAuth(validator *auth.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}
			p, err := validator.Resolve(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// OptionalAuth resolves a principal when a valid token is present but
// lets anonymous requests through. Used on public catalog reads.
func OptionalAuth(validator *auth.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if p, err := validator.Resolve(token); err == nil {
					c.Set(principalKey, p)
				}
			}
			return next(c)
		}
	}
}

// RequireRole gates a route to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...principal.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFromContext(c)
			if !p.IsAuthenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}
			for _, role := range roles {
				if p.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized for this action")
		}
	}
}

// PrincipalFromContext returns the resolved principal, or Anonymous
// when none was set.
func PrincipalFromContext(c echo.Context) principal.Principal {
	if p, ok := c.Get(principalKey).(principal.Principal); ok {
		return p
	}
	return principal.Anonymous
}
