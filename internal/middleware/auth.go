package middleware

import (
	"dark_patterns_game/internal/util"
	"dark_patterns_game/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionAuth requires a session token. When the route has an :id parameter
// the token must belong to that session.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseSessionToken(tokenString, secret)
		if err != nil {
			logger.Log.Debug("Session token rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if id := c.Param("id"); id != "" && id != claims.SessionID {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Set("session", claims)
		c.Next()
	}
}
