package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"

	"github.com/eventgallery/event-gallery-service/internal/models"
)

// decodeEvent decodes embedded documents in pass-through fields as maps,
// so an event renders the same JSON from Mongo, from Postgres and from the
// cache.
func decodeEvent(b []byte) (models.Event, error) {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(b))
	if err != nil {
		return models.Event{}, err
	}
	dec.DefaultDocumentM()

	var ev models.Event
	if err := dec.Decode(&ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}
