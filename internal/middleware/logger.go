package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventgallery/event-gallery-service/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, keeping
// metric cardinality bounded.
const unmatchedRoute = "unmatched"

// AccessLog logs one line per request and records request metrics.
// It must run after RequestID.
func AccessLog(log *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()
		m.ObserveRequest(c.Request.Method, route, status, elapsed)

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		log.LogAttrs(c.Request.Context(), level, "request",
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("latency", elapsed),
		)
	}
}
