package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

// GenerateAccessToken signs an HS256 token that AuthMiddleware accepts.
func GenerateAccessToken(userID string, role domain.UserRole, secret string, expiryDuration time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
