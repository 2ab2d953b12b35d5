package logmodule

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Ginrus logs every request of a route group with the given prefix.
func Ginrus(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := log.Fields{
			"prefix":  prefix,
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    path,
			"query":   query,
			"ip":      c.ClientIP(),
			"latency": time.Since(start),
		}

		entry := log.WithFields(fields)
		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.String())
		case c.Writer.Status() >= 500:
			entry.Error("request")
		case c.Writer.Status() >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
