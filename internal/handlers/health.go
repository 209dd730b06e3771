package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventgallery/event-gallery-service/internal/lib/logger/sl"
	"github.com/eventgallery/event-gallery-service/internal/models"
	"github.com/eventgallery/event-gallery-service/internal/store"
)

const readyTimeout = time.Second

// RegisterHealthRoutes registers the probes.
// GET /      liveness, always 200
// GET /ready store reachability
func RegisterHealthRoutes(r gin.IRoutes, st store.EventStore, log *slog.Logger) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Server is running!"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			log.Warn("store not ready", sl.Err(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
