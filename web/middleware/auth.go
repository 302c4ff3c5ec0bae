package middleware

import (
	"net/http"

	"urban-explorer/web/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired rejects requests without a logged-in session and exposes the
// caller's identity on the gin context. It runs before any handler body, so
// rejected calls never reach the store.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", user.Id)
		c.Set("user_email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}
