package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testNS = "test." + CollectionName

func TestMongoStore_EventByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "unique_id", Value: "abc"},
			{Key: "event_name", Value: "Launch"},
			{Key: "event_gallery", Value: bson.A{
				bson.D{{Key: "id", Value: "g1"}, {Key: "generatedImages", Value: bson.A{"u1"}}},
				bson.D{{Key: "id", Value: "g2"}, {Key: "caption", Value: "crowd"}},
			}},
		}))

		ev, err := NewMongoStoreFromCollection(mt.Coll).EventByID(context.Background(), id)
		require.NoError(mt, err)

		assert.Equal(mt, id, ev.ID)
		assert.Equal(mt, "abc", ev.UniqueID)
		item, ok := ev.GalleryItem("g2")
		require.True(mt, ok)
		assert.Equal(mt, "crowd", item.Extra["caption"])
	})

	mt.Run("gallery item with non-string id is skipped", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "unique_id", Value: "abc"},
			{Key: "event_gallery", Value: bson.A{
				bson.D{{Key: "id", Value: int32(7)}, {Key: "generatedImages", Value: bson.A{"x", 1}}},
				bson.D{{Key: "id", Value: "g1"}, {Key: "generatedImages", Value: bson.A{"u1"}}},
			}},
		}))

		ev, err := NewMongoStoreFromCollection(mt.Coll).EventByID(context.Background(), id)
		require.NoError(mt, err)

		item, ok := ev.GalleryItem("g1")
		require.True(mt, ok)
		assert.Equal(mt, []string{"u1"}, item.GeneratedImages)

		b, err := json.Marshal(ev.Gallery[0])
		require.NoError(mt, err)
		assert.JSONEq(mt, `{"id":7,"generatedImages":["x",1]}`, string(b))
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		_, err := NewMongoStoreFromCollection(mt.Coll).EventByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrEventNotFound)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad filter",
		}))

		_, err := NewMongoStoreFromCollection(mt.Coll).EventByID(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrEventNotFound)
	})
}

func TestMongoStore_EventByUniqueID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "unique_id", Value: "abc"},
			{Key: "promptTitle", Value: "Neon"},
			{Key: "event_gallery", Value: bson.A{
				bson.D{{Key: "generatedImages", Value: bson.A{"u1", "u2"}}},
				bson.D{},
			}},
		}))

		ev, err := NewMongoStoreFromCollection(mt.Coll).EventByUniqueID(context.Background(), "abc")
		require.NoError(mt, err)

		s := ev.Summary()
		assert.Equal(mt, "abc", s.UniqueID)
		assert.Equal(mt, "Neon", s.PromptTitle)
		assert.Nil(mt, s.EventName)
		assert.Equal(mt, []string{"u1", "u2"}, s.GalleryImageURLs)
	})

	mt.Run("embedded documents and dates keep their JSON shape", func(mt *mtest.T) {
		opened := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "unique_id", Value: "abc"},
			{Key: "event_name", Value: bson.D{
				{Key: "en", Value: "Launch"},
				{Key: "tags", Value: bson.A{"a", bson.D{{Key: "k", Value: "v"}}}},
			}},
			{Key: "event_date", Value: bson.D{{Key: "start", Value: "2024-05-01"}}},
			{Key: "promptTitle", Value: primitive.NewDateTimeFromTime(opened)},
		}))

		ev, err := NewMongoStoreFromCollection(mt.Coll).EventByUniqueID(context.Background(), "abc")
		require.NoError(mt, err)

		b, err := json.Marshal(ev.Summary())
		require.NoError(mt, err)
		assert.JSONEq(mt, `{
			"unique_id": "abc",
			"event_name": {"en": "Launch", "tags": ["a", {"k": "v"}]},
			"event_date": {"start": "2024-05-01"},
			"promptTitle": "2024-05-01T18:30:00.000Z",
			"galleryImageUrls": []
		}`, string(b))
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		_, err := NewMongoStoreFromCollection(mt.Coll).EventByUniqueID(context.Background(), "nope")
		assert.ErrorIs(mt, err, ErrEventNotFound)
	})
}
