package middleware

import (
	"net/http"
	"strings"

	"aussiemate/session"
	"aussiemate/upstream"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuthMiddleware validates the dashboard session token, loads the
// session record, and plants the session ID and the upstream bearer token in
// the request context so downstream calls authenticate transparently.
func AdminAuthMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session token"})
			return
		}

		rec, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			zap.L().Debug("session lookup failed", zap.String("sessionID", sessionID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
			return
		}

		ctx := session.WithID(c.Request.Context(), rec.ID)
		ctx = upstream.WithToken(ctx, rec.UpstreamToken)
		c.Request = c.Request.WithContext(ctx)
		c.Set("adminEmail", rec.Email)
		c.Set("adminName", rec.Profile.DisplayName())
		c.Next()
	}
}
