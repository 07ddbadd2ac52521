package middleware

import (
	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey and roleKey store the authenticated caller's identity in the
// request context.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated player ID from the request
// context. It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok
}

// GetRoleFromContext retrieves the authenticated caller's role from the
// request context.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	return role, ok
}
