// Package json provides a JSON encoder implementation.
package json

import (
	"encoding/json"

	"github.com/zoobzio/normalize"
)

// jsonEncoder implements normalize.Encoder for JSON.
type jsonEncoder struct{}

// New returns a JSON encoder.
func New() normalize.Encoder {
	return &jsonEncoder{}
}

// Format returns the format name for JSON.
func (e *jsonEncoder) Format() string {
	return "json"
}

// Encode encodes v as JSON.
func (e *jsonEncoder) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode decodes JSON data into v.
func (e *jsonEncoder) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
