package normalize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// normalizeNested converts a nested value on its way into an intermediate
// representation. Predeclared scalars pass through untouched; everything
// else goes through the chain. Named scalar types (kind string/int/...,
// non-empty package path) that no candidate claims fall back to their raw
// value, so types like UserID("x") encode without a dedicated normalizer
// while time.Duration still reaches the duration candidate.
func normalizeNested(ctx context.Context, chain *Chain, v any, format string) (any, error) {
	if v == nil {
		return nil, nil
	}
	t := reflect.TypeOf(v)
	if isScalarKind(t.Kind()) && t.PkgPath() == "" {
		return v, nil
	}
	if chain == nil {
		return nil, errNoChain
	}
	out, err := chain.Normalize(ctx, v, format)
	if err != nil {
		var re *ResolveError
		if errors.As(err, &re) && isScalarKind(t.Kind()) {
			return v, nil
		}
		return nil, err
	}
	return out, nil
}

// isScalarKind reports whether k is a bool, numeric, or string kind.
func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

// isFloatKind reports whether k is a float kind.
func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// isNumericKind reports whether k is an integer or float kind.
func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// denormalizeInto converts decoded intermediate data into a value of type
// typ. Direct assignments and scalar conversions happen locally; anything
// structured goes back through the chain. Strings parse into numeric and
// bool targets, since weakly typed formats decode every scalar as a string.
func denormalizeInto(ctx context.Context, chain *Chain, data any, typ reflect.Type, format string) (reflect.Value, error) {
	if typ == nil {
		return reflect.Value{}, fmt.Errorf("nil target type")
	}
	if data == nil {
		return reflect.Zero(typ), nil
	}

	dv := reflect.ValueOf(data)
	if dv.Type().AssignableTo(typ) {
		return dv, nil
	}

	if typ.Kind() == reflect.Pointer {
		elem, err := denormalizeInto(ctx, chain, data, typ.Elem(), format)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(typ.Elem())
		p.Elem().Set(elem)
		return p, nil
	}

	dk, tk := dv.Kind(), typ.Kind()
	switch {
	case isNumericKind(tk) && isNumericKind(dk):
		if isFloatKind(dk) && !isFloatKind(tk) {
			// A fractional float into an integer target would silently
			// truncate.
			if f := dv.Float(); f != math.Trunc(f) {
				return reflect.Value{}, fmt.Errorf("cannot convert %v into %s without truncation", f, typ)
			}
		}
		if dv.Type().ConvertibleTo(typ) {
			return dv.Convert(typ), nil
		}
	case tk == reflect.String && dk == reflect.String,
		tk == reflect.Bool && dk == reflect.Bool:
		return dv.Convert(typ), nil
	case dk == reflect.String && dv.Len() == 0 && (tk == reflect.Slice || tk == reflect.Map):
		// Weakly typed formats decode empty collections as empty strings.
		if tk == reflect.Slice {
			return reflect.MakeSlice(typ, 0, 0), nil
		}
		return reflect.MakeMapWithSize(typ, 0), nil
	case dk == reflect.String && (isNumericKind(tk) || tk == reflect.Bool):
		if v, err := parseScalar(dv.String(), typ); err == nil {
			return v, nil
		}
		// Unparseable strings fall through to the chain: "1h30m" into a
		// time.Duration field lands here.
	}

	if chain == nil {
		return reflect.Value{}, fmt.Errorf("cannot convert %T into %s without a chain", data, typ)
	}

	out, err := chain.Denormalize(ctx, data, typ, format)
	if err != nil {
		return reflect.Value{}, err
	}
	if out == nil {
		return reflect.Zero(typ), nil
	}
	ov := reflect.ValueOf(out)
	if ov.Type().AssignableTo(typ) {
		return ov, nil
	}
	if ov.Type().ConvertibleTo(typ) {
		return ov.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("denormalizer produced %T, want %s", out, typ)
}

// parseScalar parses s into a value of a numeric or bool type.
func parseScalar(s string, typ reflect.Type) (reflect.Value, error) {
	v := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		if v.OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("value %s overflows %s", s, typ)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		if v.OverflowUint(u) {
			return reflect.Value{}, fmt.Errorf("value %s overflows %s", s, typ)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetBool(b)
	default:
		return reflect.Value{}, fmt.Errorf("cannot parse into %s", typ)
	}
	return v, nil
}
