package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventgallery/event-gallery-service/internal/lib/logger/sl"
	"github.com/eventgallery/event-gallery-service/internal/metrics"
	"github.com/eventgallery/event-gallery-service/internal/middleware"
	"github.com/eventgallery/event-gallery-service/internal/models"
	"github.com/eventgallery/event-gallery-service/internal/store"
)

const (
	msgEventNotFound   = "Event not found"
	msgGalleryNotFound = "Gallery item not found"
	msgInternal        = "Internal server error"
)

// Lookup kinds and results reported to metrics.
const (
	lookupGallery = "gallery"
	lookupSummary = "summary"

	resultFound    = "found"
	resultNotFound = "not_found"
	resultError    = "error"
)

// RegisterEventRoutes registers the read-only event lookups.
//
// GET /api/event/:id/gallery/:galleryId
// - :id is the event ObjectID (hex)
// - returns the first gallery item whose id matches, as stored
//
// GET /api/event/:id
// - :id is the event unique_id
// - returns the event summary with flattened generated image URLs
//
// Both routes share the :id wildcard because gin allows one name per segment.
func RegisterEventRoutes(r gin.IRoutes, st store.EventStore, log *slog.Logger, m *metrics.Metrics) {
	r.GET("/api/event/:id/gallery/:galleryId", func(c *gin.Context) {
		const op = "handlers.GetGalleryItem"
		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetRequestID(c)),
		)

		// Malformed ids go down the generic failure path like store errors.
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			log.Error("invalid event id", slog.String("event_id", c.Param("id")), sl.Err(err))
			m.Lookup(lookupGallery, resultError)
			internalError(c)
			return
		}

		event, err := st.EventByID(c.Request.Context(), eventID)
		if errors.Is(err, store.ErrEventNotFound) {
			m.Lookup(lookupGallery, resultNotFound)
			notFound(c, msgEventNotFound)
			return
		}
		if err != nil {
			log.Error("error fetching event", slog.String("event_id", eventID.Hex()), sl.Err(err))
			m.Lookup(lookupGallery, resultError)
			internalError(c)
			return
		}

		item, ok := event.GalleryItem(c.Param("galleryId"))
		if !ok {
			m.Lookup(lookupGallery, resultNotFound)
			notFound(c, msgGalleryNotFound)
			return
		}

		m.Lookup(lookupGallery, resultFound)
		c.JSON(http.StatusOK, item)
	})

	r.GET("/api/event/:id", func(c *gin.Context) {
		const op = "handlers.GetEventSummary"
		uniqueID := c.Param("id")

		event, err := st.EventByUniqueID(c.Request.Context(), uniqueID)
		if errors.Is(err, store.ErrEventNotFound) {
			m.Lookup(lookupSummary, resultNotFound)
			notFound(c, msgEventNotFound)
			return
		}
		if err != nil {
			log.Error("error fetching event",
				slog.String("op", op),
				slog.String("request_id", middleware.GetRequestID(c)),
				slog.String("unique_id", uniqueID),
				sl.Err(err),
			)
			m.Lookup(lookupSummary, resultError)
			internalError(c)
			return
		}

		m.Lookup(lookupSummary, resultFound)
		c.JSON(http.StatusOK, event.Summary())
	})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, models.MessageResponse{Message: msg})
}

// internalError never carries the cause; callers log it first.
func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: msgInternal})
}
