package normalize

import "reflect"

// Cacheability controls how the chain treats a declared type in a
// TypeSupporter declaration.
type Cacheability int

const (
	// CacheNever declares the type as handled, but the support predicate
	// must run for every value.
	CacheNever Cacheability = iota

	// CacheResult declares the predicate's decision as stable for the type:
	// the chain memoizes it per (candidate, type, format).
	CacheResult

	// NotSupported vetoes the type: the candidate is never selected for it,
	// regardless of what its predicate would say.
	NotSupported
)

// String returns the declaration name of the cacheability flag.
func (c Cacheability) String() string {
	switch c {
	case CacheNever:
		return "never"
	case CacheResult:
		return "result"
	case NotSupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Declaration markers. Exact type names take precedence over TypeObject,
// which takes precedence over TypeAny.
const (
	// TypeObject matches any struct or pointer to struct.
	TypeObject = "object"

	// TypeAny matches every type.
	TypeAny = "*"
)

// TypeName returns the declaration key for a value's type, as reported by
// reflect (e.g. "time.Time", "*normalize.Chain", "[]uint8"). A nil value
// yields "nil".
func TypeName(v any) string {
	return nameForType(reflect.TypeOf(v))
}

// nameForType returns the declaration key for a reflect type.
// A nil type (untyped nil value) yields "nil".
func nameForType(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

// isObjectType reports whether t matches the TypeObject marker.
func isObjectType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// lookupDeclaration finds the effective entry for t in a support
// declaration: exact type name first, then the object marker, then the
// universal wildcard. The second return is false when no entry applies.
func lookupDeclaration(decl map[string]Cacheability, t reflect.Type) (Cacheability, bool) {
	if len(decl) == 0 {
		return 0, false
	}
	if c, ok := decl[nameForType(t)]; ok {
		return c, true
	}
	if isObjectType(t) {
		if c, ok := decl[TypeObject]; ok {
			return c, true
		}
	}
	c, ok := decl[TypeAny]
	return c, ok
}
