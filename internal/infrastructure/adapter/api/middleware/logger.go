package middleware

import (
	"slices"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// Logger writes one entry per request. Failures go to error, rejections to
// warn. Successful calls on quietPaths, such as probes and scrapes, are
// demoted to debug.
func Logger(logger coreport.Logger, timeProvider coreport.TimeProvider, quietPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": timeProvider.Since(start).Milliseconds(),
			"bytes":      c.Writer.Size(),
			"ip":         c.ClientIP(),
			"request_id": GetRequestID(c),
		}
		if route := c.FullPath(); route != "" && route != path {
			fields["route"] = route
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields["query"] = q
		}
		if ua := c.Request.UserAgent(); ua != "" {
			fields["user_agent"] = ua
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case status >= 500:
			logger.Error("Request failed", fields)
		case status >= 400:
			logger.Warn("Request rejected", fields)
		case slices.Contains(quietPaths, path):
			logger.Debug("Request processed", fields)
		default:
			logger.Info("Request processed", fields)
		}
	}
}
