package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eventgallery/event-gallery-service/internal/handlers"
	"github.com/eventgallery/event-gallery-service/internal/metrics"
	"github.com/eventgallery/event-gallery-service/internal/middleware"
	"github.com/eventgallery/event-gallery-service/internal/models"
	"github.com/eventgallery/event-gallery-service/internal/store"
)

// NewRouter wires probes, metrics and the event lookups.
// Every origin is allowed; the API is read-only and unauthenticated.
func NewRouter(st store.EventStore, log *slog.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log, m),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
	)

	handlers.RegisterHealthRoutes(r, st, log)
	handlers.RegisterMetricRoutes(r, m)
	handlers.RegisterEventRoutes(r, st, log, m)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: "Not found"})
	})

	return r
}

// NewServer wraps the router in an http.Server so main can shut it down.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
