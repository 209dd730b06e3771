package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryItem is an entry of Event.Gallery.
//
// Only a string id and a list of string generatedImages are interpreted.
// Everything else, including an id or image list of another type, is kept
// in Extra so the item can be returned exactly as stored. An item whose id
// is not a string never matches a lookup.
type GalleryItem struct {
	ID              string
	GeneratedImages []string
	Extra           map[string]any
}

const (
	galleryIDField     = "id"
	galleryImagesField = "generatedImages"
)

// hasStringID is false when the stored id had another type.
func (g GalleryItem) hasStringID() bool {
	_, raw := g.Extra[galleryIDField]
	return !raw
}

func (g GalleryItem) toDoc() map[string]any {
	doc := make(map[string]any, len(g.Extra)+2)
	for k, v := range g.Extra {
		doc[k] = v
	}
	if g.hasStringID() {
		doc[galleryIDField] = g.ID
	}
	if g.GeneratedImages != nil {
		doc[galleryImagesField] = g.GeneratedImages
	}
	return doc
}

func (g *GalleryItem) fromDoc(doc map[string]any) {
	g.ID, g.GeneratedImages, g.Extra = "", nil, nil

	if id, ok := doc[galleryIDField].(string); ok {
		g.ID = id
		delete(doc, galleryIDField)
	}
	if v, present := doc[galleryImagesField]; present {
		if images, ok := stringSlice(v); ok {
			g.GeneratedImages = images
			delete(doc, galleryImagesField)
		}
	}
	if len(doc) > 0 {
		g.Extra = doc
	}
}

// stringSlice accepts null or an array holding only strings.
func stringSlice(v any) ([]string, bool) {
	var items []any
	switch t := v.(type) {
	case nil:
		return nil, true
	case []string:
		return t, true
	case primitive.A:
		items = t
	case []any:
		items = t
	default:
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// MarshalJSON writes the item as one flat object.
func (g GalleryItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValue(g.toDoc()))
}

// UnmarshalJSON is used by the JSONB store, where documents arrive as JSON.
func (g *GalleryItem) UnmarshalJSON(b []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	g.fromDoc(doc)
	return nil
}

func (g GalleryItem) MarshalBSON() ([]byte, error) {
	return bson.Marshal(g.toDoc())
}

// UnmarshalBSON decodes embedded documents as maps so they encode as JSON
// objects.
func (g *GalleryItem) UnmarshalBSON(b []byte) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(b))
	if err != nil {
		return err
	}
	dec.DefaultDocumentM()

	var doc primitive.M
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	g.fromDoc(doc)
	return nil
}
