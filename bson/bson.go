// Package bson provides a BSON encoder implementation.
//
// BSON documents require a map or struct at the top level; slices and
// scalars cannot be encoded directly. Generic decodes convert the driver's
// bson.M and bson.A containers into plain map[string]any and []any so
// denormalizers can consume them.
package bson

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/zoobzio/normalize"
)

// bsonEncoder implements normalize.Encoder for BSON.
type bsonEncoder struct{}

// New returns a BSON encoder.
func New() normalize.Encoder {
	return &bsonEncoder{}
}

// Format returns the format name for BSON.
func (e *bsonEncoder) Format() string {
	return "bson"
}

// Encode encodes v as BSON.
func (e *bsonEncoder) Encode(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Decode decodes BSON data into v.
func (e *bsonEncoder) Decode(data []byte, v any) error {
	out, ok := v.(*any)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return err
	}
	*out = plainValue(m)
	return nil
}

// plainValue rewrites driver container types into plain maps and slices.
func plainValue(v any) any {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, elem := range val {
			out[elem.Key] = plainValue(elem.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
