package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// isoMillis matches Date.prototype.toISOString, the format clients already
// receive for stored dates.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// jsonValue rewrites decoded store values into their JSON wire shape:
// dates as UTC ISO strings with milliseconds and embedded documents as
// objects. Other values are returned unchanged.
func jsonValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC().Format(isoMillis)
	case time.Time:
		return t.UTC().Format(isoMillis)
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = jsonValue(e.Value)
		}
		return m
	case primitive.M:
		return jsonMap(t)
	case map[string]any:
		return jsonMap(t)
	case primitive.A:
		return jsonSlice(t)
	case []any:
		return jsonSlice(t)
	default:
		return v
	}
}

func jsonMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = jsonValue(v)
	}
	return out
}

func jsonSlice(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = jsonValue(v)
	}
	return out
}
