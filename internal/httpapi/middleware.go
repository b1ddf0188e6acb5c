package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asanchezr/gttb/internal/logging"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	log := logging.New(logger.Logr()).WithName("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
