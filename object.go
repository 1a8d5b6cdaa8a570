package normalize

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the normalize tag with sentinel
	sentinel.Tag("normalize")
}

// objectNormalizer converts structs to and from map[string]any using field
// metadata.
type objectNormalizer struct {
	chain *Chain
}

// ObjectNormalizer returns the struct fallback candidate: it converts any
// struct or pointer to struct into a map[string]any and back, honoring the
// `normalize` struct tag for renaming, skipping ("-"), and omitempty. It
// also implements Denormalizer and declares the object marker cacheable.
//
// Field values recurse through the chain, so register it alongside the
// other builtins (DefaultRegistry does this) and give more precisely typed
// candidates a higher priority.
func ObjectNormalizer() Normalizer {
	return &objectNormalizer{}
}

func (n *objectNormalizer) SetChain(c *Chain) {
	n.chain = c
}

func (n *objectNormalizer) SupportedTypes(string) map[string]Cacheability {
	return map[string]Cacheability{TypeObject: CacheResult}
}

func (n *objectNormalizer) Supports(value any, _ string) bool {
	return isObjectType(reflect.TypeOf(value))
}

func (n *objectNormalizer) Normalize(ctx context.Context, value any, format string) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unexpected value %T", value)
	}

	meta := metadataFor(rv.Type())
	out := make(map[string]any, len(meta.Fields))
	for _, field := range meta.Fields {
		name, opts := fieldName(field)
		if name == "-" {
			continue
		}
		fv := rv.FieldByIndex(field.Index)
		if opts.omitempty && fv.IsZero() {
			continue
		}
		item, err := n.normalizeField(ctx, fv.Interface(), format)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		out[name] = item
	}
	return out, nil
}

// normalizeField converts a single field value: scalar pointers dereference
// first, then the value recurses through the chain like any nested value.
func (n *objectNormalizer) normalizeField(ctx context.Context, v any, format string) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		if isScalarKind(rv.Type().Elem().Kind()) {
			return normalizeNested(ctx, n.chain, rv.Elem().Interface(), format)
		}
	}
	return normalizeNested(ctx, n.chain, v, format)
}

func (n *objectNormalizer) SupportsDenormalization(data any, typ reflect.Type, _ string) bool {
	if !isObjectType(typ) {
		return false
	}
	_, ok := data.(map[string]any)
	return ok
}

func (n *objectNormalizer) Denormalize(ctx context.Context, data any, typ reflect.Type, format string) (any, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected map[string]any, got %T", data)
	}

	rt := typ
	wantPtr := rt.Kind() == reflect.Pointer
	if wantPtr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unexpected target type %s", typ)
	}

	out := reflect.New(rt).Elem()
	meta := metadataFor(rt)
	for _, field := range meta.Fields {
		name, _ := fieldName(field)
		if name == "-" {
			continue
		}
		raw, ok := m[name]
		if !ok {
			continue
		}
		fv := out.FieldByIndex(field.Index)
		if !fv.CanSet() {
			continue
		}
		val, err := denormalizeInto(ctx, n.chain, raw, fv.Type(), format)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		fv.Set(val)
	}

	if wantPtr {
		return out.Addr().Interface(), nil
	}
	return out.Interface(), nil
}

// fieldOpts holds parsed normalize tag options.
type fieldOpts struct {
	omitempty bool
}

// fieldName resolves the wire name and options for a field from its
// normalize tag, defaulting to the Go field name.
func fieldName(field sentinel.FieldMetadata) (string, fieldOpts) {
	name := field.Name
	var opts fieldOpts
	if val, ok := field.Tags["normalize"]; ok {
		parts := strings.Split(val, ",")
		if parts[0] != "" {
			name = parts[0]
		}
		for _, p := range parts[1:] {
			if p == "omitempty" {
				opts.omitempty = true
			}
		}
	}
	return name, opts
}

// metadataCache holds scanned field metadata per struct type.
var metadataCache sync.Map // reflect.Type -> *sentinel.Metadata

// metadataFor returns field metadata for a struct type, preferring
// sentinel's registry and falling back to a reflection scan.
func metadataFor(rt reflect.Type) *sentinel.Metadata {
	if cached, ok := metadataCache.Load(rt); ok {
		return cached.(*sentinel.Metadata)
	}

	var meta *sentinel.Metadata
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		meta = &spec
	} else {
		meta = scanType(rt)
	}

	metadataCache.Store(rt, meta)
	return meta
}

// scanType builds metadata for a struct type via reflection.
func scanType(rt reflect.Type) *sentinel.Metadata {
	fields := make([]sentinel.FieldMetadata, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		kind := sentinel.KindScalar
		switch sf.Type.Kind() {
		case reflect.Struct:
			kind = sentinel.KindStruct
		case reflect.Ptr:
			kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			kind = sentinel.KindSlice
		case reflect.Map:
			kind = sentinel.KindMap
		case reflect.Interface:
			kind = sentinel.KindInterface
		}

		fields = append(fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseNormalizeTag(sf.Tag),
			Kind:        kind,
		})
	}

	return &sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      fields,
	}
}

// parseNormalizeTag extracts the normalize tag from a struct tag.
func parseNormalizeTag(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup("normalize"); ok {
		tags["normalize"] = val
	}
	return tags
}
