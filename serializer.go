package normalize

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// Encoder turns normalized data into bytes for a named format and back.
type Encoder interface {
	// Format returns the format name this encoder serves (e.g. "json").
	Format() string

	// Encode encodes v into bytes.
	Encode(v any) ([]byte, error)

	// Decode decodes data into v.
	Decode(data []byte, v any) error
}

// Serializer pairs a chain with format-keyed encoders.
//
// Serializers are safe for concurrent use. SetEncoder may be called at any
// time to add or replace an encoder.
type Serializer struct {
	chain *Chain

	mu       sync.RWMutex
	encoders map[string]Encoder
}

// SerializerOption configures a Serializer at construction.
type SerializerOption func(*Serializer)

// WithEncoder registers an encoder under its own format name.
func WithEncoder(e Encoder) SerializerOption {
	return func(s *Serializer) {
		s.encoders[e.Format()] = e
	}
}

// NewSerializer creates a serializer around chain.
func NewSerializer(chain *Chain, opts ...SerializerOption) *Serializer {
	s := &Serializer{
		chain:    chain,
		encoders: make(map[string]Encoder),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEncoder registers an encoder under its own format name.
// Returns the serializer for chaining. Safe for concurrent use.
func (s *Serializer) SetEncoder(e Encoder) *Serializer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encoders[e.Format()] = e
	return s
}

// Chain returns the serializer's chain.
func (s *Serializer) Chain() *Chain {
	return s.chain
}

// encoder looks up the encoder for a format.
func (s *Serializer) encoder(format string) (Encoder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.encoders[format]
	if !ok {
		return nil, newEncodeError(ErrMissingEncoder, format, nil)
	}
	return e, nil
}

// Serialize normalizes value through the chain and encodes the result.
// Nil and predeclared scalar values bypass the chain and encode directly.
func (s *Serializer) Serialize(ctx context.Context, value any, format string) ([]byte, error) {
	typeName := TypeName(value)

	start := time.Now()
	emitSerializeStart(ctx, format, typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitSerializeComplete(ctx, format, typeName, len(retData), time.Since(start), retErr)
	}()

	enc, err := s.encoder(format)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	intermediate, err := normalizeNested(ctx, s.chain, value, format)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, err = enc.Encode(intermediate)
	if err != nil {
		retErr = newEncodeError(ErrEncode, format, err)
		return nil, retErr
	}
	return retData, nil
}

// Deserialize decodes data into an intermediate value and denormalizes it
// into a value of type typ.
func (s *Serializer) Deserialize(ctx context.Context, data []byte, typ reflect.Type, format string) (any, error) {
	typeName := nameForType(typ)

	start := time.Now()
	emitDeserializeStart(ctx, format, typeName)

	var retErr error
	defer func() {
		emitDeserializeComplete(ctx, format, typeName, len(data), time.Since(start), retErr)
	}()

	enc, err := s.encoder(format)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	var intermediate any
	if err := enc.Decode(data, &intermediate); err != nil {
		retErr = newEncodeError(ErrDecode, format, err)
		return nil, retErr
	}

	v, err := denormalizeInto(ctx, s.chain, intermediate, typ, format)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	return v.Interface(), nil
}
