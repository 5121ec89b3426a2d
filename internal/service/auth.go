package service

import (
	"fmt"
	"time"

	"github.com/colorgrid/colorgrid-backend/internal/apperror"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// AuthService - resolves bearer credentials into player identities.
// Token issuance lives with the account service; this side only needs the
// shared secret to validate what arrives on a connection.
type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{
		secret: []byte(secret),
	}
}

// GenerateToken - issues a signed token for userID. Used by tooling and tests.
func (that *AuthService) GenerateToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(that.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken - validates a bearer token and returns the player identity it
// carries. Any failure maps to ErrInvalidToken so the transport can refuse
// the connection without leaking details.
func (that *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", apperror.ErrInvalidToken, token.Header["alg"])
		}

		return that.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperror.ErrInvalidToken
	}

	return claims.Subject, nil
}
