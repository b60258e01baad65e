package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
)

const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// WithIdentity returns a copy of ctx carrying the authenticated user's id and role.
func WithIdentity(ctx context.Context, userID string, role domain.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromContext retrieves the authenticated user's role from the request context.
func GetUserRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	role, ok := c.Request.Context().Value(userRoleKey).(domain.UserRole)
	return role, ok
}
