// Package normalize converts Go values to and from format-agnostic
// intermediate representations through a priority-ordered chain of
// normalizers.
//
// The package offers Normalizer and Denormalizer contracts for converting
// values, a Registry for collecting candidates with priorities, a Chain
// that dispatches each value to the first supporting candidate, and a
// Serializer that pairs a chain with per-format encoders.
//
// # Dispatch
//
// Candidates are registered with an integer priority; higher priorities are
// tried first, and candidates sharing a priority keep registration order.
// For each value the chain walks the candidates and hands the value to the
// first one whose support predicate matches. When no candidate matches, the
// chain fails with ErrNoSupportedNormalizer.
//
// # Support declarations
//
// Calling a support predicate for every value is wasteful when the answer
// depends only on the value's type. A candidate may implement TypeSupporter
// to declare, per format, which types it handles and whether the decision
// may be cached:
//
//	func (n *timeNormalizer) SupportedTypes(format string) map[string]Cacheability {
//	    return map[string]Cacheability{
//	        "time.Time":  normalize.CacheResult,
//	        "*time.Time": normalize.CacheResult,
//	    }
//	}
//
// Declaration keys are type names as reported by reflect, plus two markers:
// TypeObject ("object") covers any struct or pointer to struct, and TypeAny
// ("*") covers everything. A NotSupported entry is a veto: the candidate is
// skipped for that type without its predicate ever running.
//
// # Basic Usage
//
//	chain := normalize.NewChain(normalize.DefaultRegistry())
//
//	ser := normalize.NewSerializer(chain,
//	    normalize.WithEncoder(json.New()),
//	)
//
//	data, _ := ser.Serialize(ctx, account, "json")
//
//	out, _ := ser.Deserialize(ctx, data, reflect.TypeFor[Account](), "json")
//	account = out.(Account)
//
// # Builtin Normalizers
//
// DefaultRegistry registers the builtin candidates at documented priorities:
//
//   - TimeNormalizer - time.Time to/from RFC 3339 strings
//   - DurationNormalizer - time.Duration to/from strings like "1h30m"
//   - BytesNormalizer - []byte to/from base64 strings
//   - CollectionNormalizer - slices, arrays, and maps, recursing through the chain
//   - ObjectNormalizer - structs to/from map[string]any via field metadata
//
// # Tag Syntax
//
// The object normalizer honors a `normalize` struct tag:
//
//	type Account struct {
//	    ID     string `normalize:"id"`
//	    Email  string `normalize:"email,omitempty"`
//	    Secret string `normalize:"-"`
//	}
//
// # Encoder Providers
//
// The following encoder implementations are available as submodules:
//
//   - json - JSON encoding ("json")
//   - xml - XML encoding ("xml")
//   - yaml - YAML encoding ("yaml")
//   - msgpack - MessagePack encoding ("msgpack")
//   - bson - BSON encoding ("bson")
//
// Weakly typed formats such as XML decode scalars as strings; denormalization
// parses strings into numeric and bool targets where the target type asks
// for it.
package normalize

import (
	"context"
	"reflect"
)

// Normalizer converts a value into a format-agnostic representation
// (maps, slices, scalars) suitable for encoding.
type Normalizer interface {
	// Normalize converts value for the given format.
	Normalize(ctx context.Context, value any, format string) (any, error)

	// Supports reports whether this normalizer can handle value for format.
	Supports(value any, format string) bool
}

// Denormalizer converts decoded intermediate data back into a value of a
// target type.
type Denormalizer interface {
	// Denormalize converts data into a value of type typ for the given format.
	Denormalize(ctx context.Context, data any, typ reflect.Type, format string) (any, error)

	// SupportsDenormalization reports whether this denormalizer can produce
	// a value of type typ from data for format.
	SupportsDenormalization(data any, typ reflect.Type, format string) bool
}

// TypeSupporter is an optional interface for candidates whose support
// decision depends only on the value's type. The chain consults the
// declaration before the predicate: a NotSupported entry skips the
// candidate outright, and a CacheResult entry lets the chain memoize the
// predicate's answer per (type, format).
//
// Returning nil disables declarations for that format.
type TypeSupporter interface {
	SupportedTypes(format string) map[string]Cacheability
}

// ChainAware is an optional interface for candidates that need to recurse
// through the chain, such as collection and object normalizers. The chain
// injects itself into aware candidates when it is built.
type ChainAware interface {
	SetChain(c *Chain)
}
