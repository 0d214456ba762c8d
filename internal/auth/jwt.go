// Package auth validates access tokens issued by the external
// credential service. Token issuance and refresh live there, not here;
// this side only turns a bearer token into a principal.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"marketplace-backend/internal/principal"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims mirrors the access token payload produced by the issuer.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenValidator struct {
	secretKey []byte
}

func NewTokenValidator(secretKey string) *TokenValidator {
	return &TokenValidator{secretKey: []byte(secretKey)}
}

// Resolve validates the token and returns the authenticated principal.
// Tokens with an unknown role are rejected rather than downgraded.
func (v *TokenValidator) Resolve(tokenString string) (principal.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return principal.Anonymous, ErrExpiredToken
		}
		return principal.Anonymous, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return principal.Anonymous, ErrInvalidToken
	}

	role, ok := principal.ParseRole(claims.Role)
	if !ok {
		return principal.Anonymous, ErrInvalidToken
	}

	return principal.Authenticated(claims.UserID, role), nil
}
