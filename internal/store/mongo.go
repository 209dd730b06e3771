package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/eventgallery/event-gallery-service/internal/models"
)

// summaryProjection limits unique_id lookups to what EventSummary needs.
var summaryProjection = bson.D{
	{Key: "unique_id", Value: 1},
	{Key: "event_name", Value: 1},
	{Key: "event_date", Value: 1},
	{Key: "promptTitle", Value: 1},
	{Key: "event_gallery.generatedImages", Value: 1},
}

// MongoStore serves events from a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and fails fast if the deployment is unreachable.
func NewMongoStore(uri, database string, timeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
	}, nil
}

// NewMongoStoreFromCollection wraps an already configured collection.
func NewMongoStoreFromCollection(coll *mongo.Collection) *MongoStore {
	return &MongoStore{client: coll.Database().Client(), coll: coll}
}

func (m *MongoStore) EventByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	return m.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (m *MongoStore) EventByUniqueID(ctx context.Context, uniqueID string) (models.Event, error) {
	return m.findOne(ctx,
		bson.D{{Key: "unique_id", Value: uniqueID}},
		options.FindOne().SetProjection(summaryProjection),
	)
}

func (m *MongoStore) findOne(ctx context.Context, filter bson.D, opts ...*options.FindOneOptions) (models.Event, error) {
	raw, err := m.coll.FindOne(ctx, filter, opts...).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("mongo find %s: %w", CollectionName, err)
	}

	ev, err := decodeEvent(raw)
	if err != nil {
		return models.Event{}, fmt.Errorf("decode %s document: %w", CollectionName, err)
	}
	return ev, nil
}

// Ping is used by the readiness endpoint.
func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
