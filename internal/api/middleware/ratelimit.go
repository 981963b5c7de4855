package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/cache"
	"github.com/yoockh/showcase/internal/utils"
)

// RateLimitByIP rejects callers that exceed the limiter's window. Limiter
// errors let the request through.
func RateLimitByIP(l cache.Limiter, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiError{
				Code:    utils.CodeRateLimited,
				Message: "too many attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
