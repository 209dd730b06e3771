package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventgallery/event-gallery-service/internal/lib/logger/sl"
	"github.com/eventgallery/event-gallery-service/internal/metrics"
	"github.com/eventgallery/event-gallery-service/internal/models"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedStore is a read-through cache in front of another EventStore.
// Events are stored BSON-encoded so pass-through values keep their types.
// Misses of the underlying store are never cached.
type CachedStore struct {
	next    EventStore
	cache   Cache
	ttl     time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewCachedStore(next EventStore, cache Cache, ttl time.Duration, log *slog.Logger, m *metrics.Metrics) *CachedStore {
	if log == nil {
		log = slog.Default()
	}
	return &CachedStore{next: next, cache: cache, ttl: ttl, log: log, metrics: m}
}

func (c *CachedStore) EventByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	return c.lookup(ctx, "event:id:"+id.Hex(), func(ctx context.Context) (models.Event, error) {
		return c.next.EventByID(ctx, id)
	})
}

func (c *CachedStore) EventByUniqueID(ctx context.Context, uniqueID string) (models.Event, error) {
	return c.lookup(ctx, "event:uid:"+uniqueID, func(ctx context.Context) (models.Event, error) {
		return c.next.EventByUniqueID(ctx, uniqueID)
	})
}

func (c *CachedStore) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

func (c *CachedStore) lookup(
	ctx context.Context,
	key string,
	load func(context.Context) (models.Event, error),
) (models.Event, error) {
	const op = "store.CachedStore.lookup"
	log := c.log.With(slog.String("op", op), slog.String("key", key))

	b, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		ev, decErr := decodeEvent(b)
		if decErr == nil {
			c.metrics.CacheResult("hit")
			return ev, nil
		}
		log.Warn("discarding undecodable cache entry", sl.Err(decErr))
	case errors.Is(err, ErrCacheMiss):
	default:
		log.Warn("cache get failed", sl.Err(err))
	}
	c.metrics.CacheResult("miss")

	ev, err := load(ctx)
	if err != nil {
		return models.Event{}, err
	}

	if b, err := bson.Marshal(ev); err != nil {
		log.Warn("cache encode failed", sl.Err(err))
	} else if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
		log.Warn("cache set failed", sl.Err(err))
	}
	return ev, nil
}
