package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/drezzup/storefront/pkg/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

const sessionTokenKey = "sessionToken"

// authRequired guards the back-office routes. A valid bearer token slides
// the session window forward; anything else gets a 401 and a hint to log
// back in.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		if err := s.auth.Verify(c.Request.Context(), token); err != nil {
			if errors.Is(err, auth.ErrSessionExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Session expired. Please log in again.",
				})
				return
			}
			s.logger.Error("Session check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to verify session. Please try again.",
			})
			return
		}

		c.Set(sessionTokenKey, token)
		c.Next()
	}
}
