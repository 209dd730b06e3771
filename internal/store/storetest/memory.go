// Package storetest provides an in-memory EventStore for handler tests.
package storetest

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventgallery/event-gallery-service/internal/models"
	"github.com/eventgallery/event-gallery-service/internal/store"
)

type MemoryStore struct {
	mu     sync.Mutex
	events []models.Event

	// Err, when set, is returned by every call.
	Err error
	// Calls counts lookups.
	Calls int
}

func NewMemoryStore(events ...models.Event) *MemoryStore {
	return &MemoryStore{events: events}
}

func (s *MemoryStore) EventByID(_ context.Context, id primitive.ObjectID) (models.Event, error) {
	return s.find(func(e models.Event) bool { return e.ID == id })
}

func (s *MemoryStore) EventByUniqueID(_ context.Context, uniqueID string) (models.Event, error) {
	return s.find(func(e models.Event) bool { return e.UniqueID == uniqueID })
}

func (s *MemoryStore) Ping(context.Context) error {
	return s.Err
}

func (s *MemoryStore) find(match func(models.Event) bool) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls++
	if s.Err != nil {
		return models.Event{}, s.Err
	}
	for _, e := range s.events {
		if match(e) {
			return e, nil
		}
	}
	return models.Event{}, store.ErrEventNotFound
}
