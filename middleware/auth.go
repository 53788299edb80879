package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studiolink/utils"
)

// ContextUserIDKey is where the authenticated Firebase UID is stored on the
// request context.
const ContextUserIDKey = "authUserID"

// FirebaseAuthMiddleware verifies the bearer token as a Firebase ID token
// and stores the caller's UID on the context. Identity is owned by Firebase;
// this service never issues tokens of its own.
func FirebaseAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		token, err := utils.AuthClient.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			utils.GetLogger().Warn("rejected invalid ID token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(ContextUserIDKey, token.UID)
		c.Next()
	}
}

// AuthUserID returns the Firebase UID the auth middleware attached, or ""
// on unauthenticated routes.
func AuthUserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if uid, ok := v.(string); ok {
			return uid
		}
	}
	return ""
}
