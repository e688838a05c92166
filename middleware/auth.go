package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"booklyo/utils"
)

// FirebaseAuthMiddleware verifies the Bearer ID token on management
// routes and stores the caller's uid in the gin context as "uid".
func FirebaseAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		client := utils.GetAuthClient()
		if client == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Auth is not configured"})
			return
		}

		token, err := client.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("uid", token.UID)
		c.Next()
	}
}

// UID returns the authenticated caller's uid, set by
// FirebaseAuthMiddleware. Empty on unauthenticated routes.
func UID(c *gin.Context) string {
	return c.GetString("uid")
}
