package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/principal"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret, userID, role string, expiresIn time.Duration) string {
	t.Helper()

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestResolve_ValidToken(t *testing.T) {
	validator := NewTokenValidator(testSecret)
	token := signToken(t, testSecret, "user-1", "vendor", time.Hour)

	p, err := validator.Resolve(token)

	require.NoError(t, err)
	assert.True(t, p.IsAuthenticated)
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, principal.RoleVendor, p.Role)
}

func TestResolve_LegacyUserRoleAlias(t *testing.T) {
	validator := NewTokenValidator(testSecret)
	token := signToken(t, testSecret, "user-1", "user", time.Hour)

	p, err := validator.Resolve(token)

	require.NoError(t, err)
	assert.Equal(t, principal.RoleCustomer, p.Role)
}

func TestResolve_UnknownRole(t *testing.T) {
	validator := NewTokenValidator(testSecret)
	token := signToken(t, testSecret, "user-1", "superuser", time.Hour)

	_, err := validator.Resolve(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolve_WrongSecret(t *testing.T) {
	validator := NewTokenValidator(testSecret)
	token := signToken(t, "other-secret", "user-1", "customer", time.Hour)

	_, err := validator.Resolve(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolve_ExpiredToken(t *testing.T) {
	validator := NewTokenValidator(testSecret)
	token := signToken(t, testSecret, "user-1", "customer", -time.Minute)

	_, err := validator.Resolve(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestResolve_MissingUserID(t *testing.T) {
	validator := NewTokenValidator(testSecret)
	token := signToken(t, testSecret, "", "customer", time.Hour)

	_, err := validator.Resolve(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolve_Garbage(t *testing.T) {
	validator := NewTokenValidator(testSecret)

	_, err := validator.Resolve("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
