package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carpool/internal/service"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID       = "user_id"
	ContextUniversityID = "university_id"
)

const tokenCookie = "token"

// AuthMiddleware returns middleware that authenticates requests. The
// identity token is read from the "token" cookie or, failing that, a
// Bearer Authorization header, and the resolved identity is stored on the
// Gin context for handlers.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUniversityID, claims.UniversityID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(tokenCookie); err == nil && cookie != "" {
		return cookie
	}

	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// CallerID returns the authenticated caller's university ID.
func CallerID(c *gin.Context) string {
	return c.GetString(ContextUniversityID)
}

// CallerUserID returns the authenticated caller's user record ID.
func CallerUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
