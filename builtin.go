package normalize

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Builtin candidate priorities. Higher runs first; the object normalizer is
// the struct fallback, so anything typed more precisely must outrank it.
const (
	PriorityTime       = 100
	PriorityDuration   = 90
	PriorityBytes      = 80
	PriorityCollection = 0
	PriorityObject     = -100
)

// errNoChain indicates a chain-aware candidate was invoked before a chain
// injected itself.
var errNoChain = errors.New("candidate not attached to a chain")

var (
	timeType        = reflect.TypeOf(time.Time{})
	timePtrType     = reflect.TypeOf(&time.Time{})
	durationType    = reflect.TypeOf(time.Duration(0))
	durationPtrType = reflect.TypeOf((*time.Duration)(nil))
	bytesType       = reflect.TypeOf([]byte(nil))
)

// timeNormalizer converts time.Time to and from RFC 3339 strings.
type timeNormalizer struct {
	layout string
}

// TimeNormalizer returns a candidate converting time.Time and *time.Time
// to and from RFC 3339 strings. It also implements Denormalizer and
// declares its types cacheable.
func TimeNormalizer() Normalizer {
	return &timeNormalizer{layout: time.RFC3339Nano}
}

func (n *timeNormalizer) SupportedTypes(string) map[string]Cacheability {
	return map[string]Cacheability{
		"time.Time":  CacheResult,
		"*time.Time": CacheResult,
	}
}

func (n *timeNormalizer) Supports(value any, _ string) bool {
	switch value.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

func (n *timeNormalizer) Normalize(_ context.Context, value any, _ string) (any, error) {
	switch t := value.(type) {
	case time.Time:
		return t.Format(n.layout), nil
	case *time.Time:
		if t == nil {
			return nil, nil
		}
		return t.Format(n.layout), nil
	}
	return nil, fmt.Errorf("unexpected value %T", value)
}

func (n *timeNormalizer) SupportsDenormalization(data any, typ reflect.Type, _ string) bool {
	if typ != timeType && typ != timePtrType {
		return false
	}
	_, ok := data.(string)
	return ok
}

func (n *timeNormalizer) Denormalize(_ context.Context, data any, typ reflect.Type, _ string) (any, error) {
	s, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", data)
	}
	t, err := time.Parse(n.layout, s)
	if err != nil {
		return nil, err
	}
	if typ == timePtrType {
		return &t, nil
	}
	return t, nil
}

// durationNormalizer converts time.Duration to and from strings like "1h30m".
type durationNormalizer struct{}

// DurationNormalizer returns a candidate converting time.Duration and
// *time.Duration to and from their string form. It also implements
// Denormalizer and declares its types cacheable.
func DurationNormalizer() Normalizer {
	return &durationNormalizer{}
}

func (n *durationNormalizer) SupportedTypes(string) map[string]Cacheability {
	return map[string]Cacheability{
		"time.Duration":  CacheResult,
		"*time.Duration": CacheResult,
	}
}

func (n *durationNormalizer) Supports(value any, _ string) bool {
	switch value.(type) {
	case time.Duration, *time.Duration:
		return true
	}
	return false
}

func (n *durationNormalizer) Normalize(_ context.Context, value any, _ string) (any, error) {
	switch d := value.(type) {
	case time.Duration:
		return d.String(), nil
	case *time.Duration:
		if d == nil {
			return nil, nil
		}
		return d.String(), nil
	}
	return nil, fmt.Errorf("unexpected value %T", value)
}

func (n *durationNormalizer) SupportsDenormalization(data any, typ reflect.Type, _ string) bool {
	if typ != durationType && typ != durationPtrType {
		return false
	}
	_, ok := data.(string)
	return ok
}

func (n *durationNormalizer) Denormalize(_ context.Context, data any, typ reflect.Type, _ string) (any, error) {
	s, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", data)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	if typ == durationPtrType {
		return &d, nil
	}
	return d, nil
}

// bytesNormalizer converts []byte to and from base64 strings.
type bytesNormalizer struct{}

// BytesNormalizer returns a candidate converting []byte to and from
// standard base64 strings. It also implements Denormalizer and declares
// its type cacheable.
func BytesNormalizer() Normalizer {
	return &bytesNormalizer{}
}

func (n *bytesNormalizer) SupportedTypes(string) map[string]Cacheability {
	return map[string]Cacheability{
		"[]uint8": CacheResult,
	}
}

func (n *bytesNormalizer) Supports(value any, _ string) bool {
	_, ok := value.([]byte)
	return ok
}

func (n *bytesNormalizer) Normalize(_ context.Context, value any, _ string) (any, error) {
	b, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected value %T", value)
	}
	if b == nil {
		return nil, nil
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (n *bytesNormalizer) SupportsDenormalization(data any, typ reflect.Type, _ string) bool {
	if typ != bytesType {
		return false
	}
	_, ok := data.(string)
	return ok
}

func (n *bytesNormalizer) Denormalize(_ context.Context, data any, _ reflect.Type, _ string) (any, error) {
	s, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", data)
	}
	return base64.StdEncoding.DecodeString(s)
}

// collectionNormalizer converts slices, arrays, and maps, recursing through
// the chain for element values.
type collectionNormalizer struct {
	chain *Chain
}

// CollectionNormalizer returns a candidate converting slices, arrays, and
// maps. Elements recurse through the chain, so the registry it joins should
// also carry candidates for the element types. []byte is left to the bytes
// normalizer.
func CollectionNormalizer() Normalizer {
	return &collectionNormalizer{}
}

func (n *collectionNormalizer) SetChain(c *Chain) {
	n.chain = c
}

func (n *collectionNormalizer) SupportedTypes(string) map[string]Cacheability {
	// Collection support is cheap to test and covers unbounded type names,
	// so the decision is declared uncacheable.
	return map[string]Cacheability{TypeAny: CacheNever}
}

func (n *collectionNormalizer) Supports(value any, _ string) bool {
	t := reflect.TypeOf(value)
	if t == nil || t == bytesType {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func (n *collectionNormalizer) Normalize(ctx context.Context, value any, format string) (any, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := n.normalizeItem(ctx, rv.Index(i).Interface(), format)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = item
		}
		return out, nil

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			item, err := n.normalizeItem(ctx, iter.Value().Interface(), format)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", key, err)
			}
			out[key] = item
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected value %T", value)
}

func (n *collectionNormalizer) normalizeItem(ctx context.Context, v any, format string) (any, error) {
	return normalizeNested(ctx, n.chain, v, format)
}

func (n *collectionNormalizer) SupportsDenormalization(data any, typ reflect.Type, _ string) bool {
	if typ == bytesType {
		return false
	}
	switch typ.Kind() {
	case reflect.Slice, reflect.Array:
		_, ok := data.([]any)
		return ok
	case reflect.Map:
		_, ok := data.(map[string]any)
		return ok
	}
	return false
}

func (n *collectionNormalizer) Denormalize(ctx context.Context, data any, typ reflect.Type, format string) (any, error) {
	switch typ.Kind() {
	case reflect.Slice:
		items, ok := data.([]any)
		if !ok {
			return nil, fmt.Errorf("expected []any, got %T", data)
		}
		out := reflect.MakeSlice(typ, len(items), len(items))
		if err := n.fillSequence(ctx, out, items, typ.Elem(), format); err != nil {
			return nil, err
		}
		return out.Interface(), nil

	case reflect.Array:
		items, ok := data.([]any)
		if !ok {
			return nil, fmt.Errorf("expected []any, got %T", data)
		}
		if len(items) != typ.Len() {
			return nil, fmt.Errorf("array length mismatch: got %d items, want %d", len(items), typ.Len())
		}
		out := reflect.New(typ).Elem()
		if err := n.fillSequence(ctx, out, items, typ.Elem(), format); err != nil {
			return nil, err
		}
		return out.Interface(), nil

	case reflect.Map:
		m, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected map[string]any, got %T", data)
		}
		out := reflect.MakeMapWithSize(typ, len(m))
		for k, item := range m {
			kv, err := denormalizeInto(ctx, n.chain, k, typ.Key(), format)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", k, err)
			}
			vv, err := denormalizeInto(ctx, n.chain, item, typ.Elem(), format)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", k, err)
			}
			out.SetMapIndex(kv, vv)
		}
		return out.Interface(), nil
	}
	return nil, fmt.Errorf("unexpected target type %s", typ)
}

// fillSequence denormalizes items into an addressable slice or array value.
func (n *collectionNormalizer) fillSequence(ctx context.Context, out reflect.Value, items []any, elem reflect.Type, format string) error {
	for i, item := range items {
		v, err := denormalizeInto(ctx, n.chain, item, elem, format)
		if err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
		out.Index(i).Set(v)
	}
	return nil
}
