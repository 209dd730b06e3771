package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eventgallery/event-gallery-service/internal/metrics"
)

// RegisterMetricRoutes exposes the Prometheus registry.
//
// GET /metrics
func RegisterMetricRoutes(r gin.IRoutes, m *metrics.Metrics) {
	r.GET("/metrics", gin.WrapH(m.Handler()))
}
