package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleEvent() Event {
	return Event{
		UniqueID:  "abc",
		EventName: "Launch",
		Gallery: []GalleryItem{
			{ID: "g1", GeneratedImages: []string{"u1", "u2"}},
			{ID: "g2"},
		},
	}
}

func TestSummary_FlattensGeneratedImagesInOrder(t *testing.T) {
	ev := sampleEvent()
	ev.Gallery = append(ev.Gallery, GalleryItem{ID: "g3", GeneratedImages: []string{"u3"}})

	s := ev.Summary()

	assert.Equal(t, "abc", s.UniqueID)
	assert.Equal(t, "Launch", s.EventName)
	assert.Equal(t, []string{"u1", "u2", "u3"}, s.GalleryImageURLs)
}

func TestSummary_EmptyGalleryEncodesAsArray(t *testing.T) {
	b, err := json.Marshal(Event{UniqueID: "x"}.Summary())
	require.NoError(t, err)

	assert.JSONEq(t, `{"unique_id":"x","galleryImageUrls":[]}`, string(b))
}

func TestGalleryItem_FirstMatchWins(t *testing.T) {
	ev := Event{Gallery: []GalleryItem{
		{ID: "a", Extra: map[string]any{"n": 1}},
		{ID: "b"},
		{ID: "a", Extra: map[string]any{"n": 2}},
	}}

	item, ok := ev.GalleryItem("a")
	require.True(t, ok)
	assert.Equal(t, 1, item.Extra["n"])

	_, ok = ev.GalleryItem("missing")
	assert.False(t, ok)
}

func TestGalleryItem_JSONKeepsUnknownFields(t *testing.T) {
	item := GalleryItem{
		ID:              "g1",
		GeneratedImages: []string{"u1"},
		Extra:           map[string]any{"prompt": "sunset", "likes": 3},
	}

	b, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g1","generatedImages":["u1"],"prompt":"sunset","likes":3}`, string(b))

	var back GalleryItem
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "g1", back.ID)
	assert.Equal(t, []string{"u1"}, back.GeneratedImages)
	assert.Equal(t, "sunset", back.Extra["prompt"])
}

func TestGalleryItem_NoImagesOmitsField(t *testing.T) {
	b, err := json.Marshal(GalleryItem{ID: "g2"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g2"}`, string(b))
}

func TestEvent_DecodesFromBSON(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"unique_id":   "abc",
		"event_name":  "Launch",
		"promptTitle": "Neon",
		"event_gallery": bson.A{
			bson.M{"id": "g1", "generatedImages": bson.A{"u1", "u2"}, "style": "retro"},
			bson.M{"id": "g2"},
		},
	})
	require.NoError(t, err)

	var ev Event
	require.NoError(t, bson.Unmarshal(raw, &ev))

	assert.Equal(t, "abc", ev.UniqueID)
	assert.Nil(t, ev.EventDate)
	require.Len(t, ev.Gallery, 2)
	assert.Equal(t, "retro", ev.Gallery[0].Extra["style"])
	assert.Nil(t, ev.Gallery[1].GeneratedImages)
	assert.Equal(t, []string{"u1", "u2"}, ev.Summary().GalleryImageURLs)
}

func TestSummary_DatesUseMillisecondISOFormat(t *testing.T) {
	ev := Event{
		UniqueID:  "abc",
		EventDate: primitive.NewDateTimeFromTime(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		EventName: map[string]any{"opened": time.Date(2024, 5, 1, 9, 15, 0, 0, time.FixedZone("CEST", 2*3600))},
	}

	b, err := json.Marshal(ev.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"unique_id": "abc",
		"event_name": {"opened": "2024-05-01T07:15:00.000Z"},
		"event_date": "2024-05-01T00:00:00.000Z",
		"galleryImageUrls": []
	}`, string(b))
}

func TestGalleryItem_NonStringIDIsKeptButNeverMatches(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"event_gallery": bson.A{
			bson.M{"id": int32(7), "generatedImages": "not-a-list"},
			bson.M{"id": "g1", "generatedImages": bson.A{"u1"}},
		},
	})
	require.NoError(t, err)

	var ev Event
	require.NoError(t, bson.Unmarshal(raw, &ev))

	_, ok := ev.GalleryItem("")
	assert.False(t, ok)
	item, ok := ev.GalleryItem("g1")
	require.True(t, ok)
	assert.Equal(t, "g1", item.ID)
	assert.Equal(t, []string{"u1"}, ev.Summary().GalleryImageURLs)

	b, err := json.Marshal(ev.Gallery[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"generatedImages":"not-a-list"}`, string(b))
}

func TestGalleryItem_JSONNonStringID(t *testing.T) {
	var item GalleryItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"generatedImages":["u1",2]}`), &item))

	assert.Empty(t, item.ID)
	assert.Nil(t, item.GeneratedImages)
	assert.False(t, item.hasStringID())

	b, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"generatedImages":["u1",2]}`, string(b))
}

func TestGalleryItem_BSONRoundTripKeepsNonStringFields(t *testing.T) {
	in := GalleryItem{ID: "g1", GeneratedImages: []string{"u1"}, Extra: map[string]any{"meta": map[string]any{"w": int32(512)}}}

	b, err := bson.Marshal(in)
	require.NoError(t, err)

	var out GalleryItem
	require.NoError(t, bson.Unmarshal(b, &out))
	assert.Equal(t, "g1", out.ID)
	assert.Equal(t, []string{"u1"}, out.GeneratedImages)

	js, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g1","generatedImages":["u1"],"meta":{"w":512}}`, string(js))
}
