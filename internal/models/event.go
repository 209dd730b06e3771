package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Event is a document of the EventInfo collection.
// Descriptive fields are passed through as stored; absent ones stay nil and
// are omitted from JSON.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UniqueID    string             `bson:"unique_id" json:"unique_id"`
	EventName   any                `bson:"event_name,omitempty" json:"event_name,omitempty"`
	EventDate   any                `bson:"event_date,omitempty" json:"event_date,omitempty"`
	PromptTitle any                `bson:"promptTitle,omitempty" json:"promptTitle,omitempty"`
	Gallery     []GalleryItem      `bson:"event_gallery" json:"event_gallery"`
}

// EventSummary is returned by GET /api/event/:id.
// GalleryImageURLs is never nil so it always encodes as an array.
type EventSummary struct {
	UniqueID         string   `json:"unique_id"`
	EventName        any      `json:"event_name,omitempty"`
	EventDate        any      `json:"event_date,omitempty"`
	PromptTitle      any      `json:"promptTitle,omitempty"`
	GalleryImageURLs []string `json:"galleryImageUrls"`
}

// GalleryItem returns the first gallery item whose id equals id.
func (e Event) GalleryItem(id string) (GalleryItem, bool) {
	for _, item := range e.Gallery {
		if item.hasStringID() && item.ID == id {
			return item, true
		}
	}
	return GalleryItem{}, false
}

// Summary projects the event and flattens generatedImages of every gallery
// item in gallery order. Items without images contribute nothing.
// Pass-through fields are converted to their JSON wire shape.
func (e Event) Summary() EventSummary {
	urls := make([]string, 0)
	for _, item := range e.Gallery {
		urls = append(urls, item.GeneratedImages...)
	}

	return EventSummary{
		UniqueID:         e.UniqueID,
		EventName:        jsonValue(e.EventName),
		EventDate:        jsonValue(e.EventDate),
		PromptTitle:      jsonValue(e.PromptTitle),
		GalleryImageURLs: urls,
	}
}

// MessageResponse is the body of the liveness probe and of every error.
type MessageResponse struct {
	Message string `json:"message"`
}
