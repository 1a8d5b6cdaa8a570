// Package msgpack provides a MessagePack encoder implementation.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/normalize"
)

// msgpackEncoder implements normalize.Encoder for MessagePack.
type msgpackEncoder struct{}

// New returns a MessagePack encoder.
func New() normalize.Encoder {
	return &msgpackEncoder{}
}

// Format returns the format name for MessagePack.
func (e *msgpackEncoder) Format() string {
	return "msgpack"
}

// Encode encodes v as MessagePack.
func (e *msgpackEncoder) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode decodes MessagePack data into v.
func (e *msgpackEncoder) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
