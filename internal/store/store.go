package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventgallery/event-gallery-service/internal/models"
)

// CollectionName is the fixed collection (or table) holding events.
const CollectionName = "EventInfo"

var ErrEventNotFound = errors.New("event not found")

// EventStore is the read-only lookup surface used by the HTTP handlers.
type EventStore interface {
	// EventByID returns the full event whose _id equals id.
	EventByID(ctx context.Context, id primitive.ObjectID) (models.Event, error)
	// EventByUniqueID returns the event whose unique_id equals uniqueID.
	// Only the fields needed for a summary are guaranteed to be loaded.
	EventByUniqueID(ctx context.Context, uniqueID string) (models.Event, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// Backend is an EventStore owning a connection that must be released.
type Backend interface {
	EventStore
	Close(ctx context.Context) error
}
