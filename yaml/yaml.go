// Package yaml provides a YAML encoder implementation.
package yaml

import (
	"github.com/zoobzio/normalize"
	"gopkg.in/yaml.v3"
)

// yamlEncoder implements normalize.Encoder for YAML.
type yamlEncoder struct{}

// New returns a YAML encoder.
func New() normalize.Encoder {
	return &yamlEncoder{}
}

// Format returns the format name for YAML.
func (e *yamlEncoder) Format() string {
	return "yaml"
}

// Encode encodes v as YAML.
func (e *yamlEncoder) Encode(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Decode decodes YAML data into v.
func (e *yamlEncoder) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
