package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/auth"
	"marketplace-backend/internal/principal"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, userID, role string) string {
	t.Helper()

	claims := auth.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func runRequest(t *testing.T, mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, principal.Principal) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen principal.Principal
	handler := mw(func(c echo.Context) error {
		seen = PrincipalFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)
	token := signToken(t, "user-1", "customer")

	rec, p := runRequest(t, RequireAuth(validator), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, p.IsAuthenticated)
	assert.Equal(t, "user-1", p.ID)
}

func TestRequireAuth_NoToken(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)

	rec, _ := runRequest(t, RequireAuth(validator), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_BadToken(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)

	rec, _ := runRequest(t, RequireAuth(validator), "garbage")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)

	rec, p := runRequest(t, OptionalAuth(validator), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, p.IsAuthenticated)
}

func TestOptionalAuth_ResolvesWhenPresent(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)
	token := signToken(t, "user-1", "vendor")

	rec, p := runRequest(t, OptionalAuth(validator), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, principal.RoleVendor, p.Role)
}

func TestOptionalAuth_InvalidTokenTreatedAnonymous(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)

	rec, p := runRequest(t, OptionalAuth(validator), "garbage")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, p.IsAuthenticated)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	gate := RequireRole(principal.RoleAdmin, principal.RoleVendor)

	run := func(p principal.Principal) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if p != principal.Anonymous {
			c.Set("principal", p)
		}
		handler := gate(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(principal.Authenticated("a", principal.RoleAdmin)))
	assert.Equal(t, http.StatusOK, run(principal.Authenticated("v", principal.RoleVendor)))
	assert.Equal(t, http.StatusUnauthorized, run(principal.Authenticated("c", principal.RoleCustomer)))
	assert.Equal(t, http.StatusUnauthorized, run(principal.Anonymous))
}
