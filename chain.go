package normalize

import (
	"context"
	"reflect"
	"time"
)

// Chain dispatches values to registered candidates in priority order.
//
// A Chain is built once from a Registry and is immutable afterwards; it is
// safe for concurrent use. Building the chain seals the registry and
// injects the chain into ChainAware candidates.
type Chain struct {
	normalizers   []entry // descending priority, entries with a Normalizer
	denormalizers []entry // descending priority, entries with a Denormalizer
	cache         *supportCache
}

// NewChain builds a chain from the registry's candidates.
func NewChain(registry *Registry) *Chain {
	c := &Chain{
		cache: newSupportCache(),
	}

	ordered := registry.seal()
	for _, e := range ordered {
		if e.normalizer != nil {
			c.normalizers = append(c.normalizers, e)
		}
		if e.denormalizer != nil {
			c.denormalizers = append(c.denormalizers, e)
		}
		if e.aware != nil {
			e.aware.SetChain(c)
		}
	}

	emitChainCreated(len(c.normalizers), len(c.denormalizers))
	return c
}

// Normalize converts value for the given format using the first supporting
// normalizer. It fails with ErrNoSupportedNormalizer (wrapped in a
// ResolveError) when no candidate matches.
func (c *Chain) Normalize(ctx context.Context, value any, format string) (any, error) {
	typ := reflect.TypeOf(value)
	typeName := nameForType(typ)

	start := time.Now()
	emitNormalizeStart(ctx, format, typeName)

	var hits, misses int
	for _, e := range c.normalizers {
		if !c.supported(e, directionNormalize, typ, format, &hits, &misses, func() bool {
			return e.normalizer.Supports(value, format)
		}) {
			continue
		}

		result, err := e.normalizer.Normalize(ctx, value, format)
		if err != nil {
			err = newTransformError(ErrNormalize, directionNormalize, typeName, format, err)
		}
		emitNormalizeComplete(ctx, format, typeName, time.Since(start), hits, misses, err)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	err := newResolveError(directionNormalize, typeName, format)
	emitNormalizeComplete(ctx, format, typeName, time.Since(start), hits, misses, err)
	return nil, err
}

// Denormalize converts decoded data into a value of type typ using the
// first supporting denormalizer. It fails with ErrNoSupportedNormalizer
// (wrapped in a ResolveError) when no candidate matches.
func (c *Chain) Denormalize(ctx context.Context, data any, typ reflect.Type, format string) (any, error) {
	typeName := nameForType(typ)

	start := time.Now()
	emitDenormalizeStart(ctx, format, typeName)

	var hits, misses int
	for _, e := range c.denormalizers {
		if !c.supported(e, directionDenormalize, typ, format, &hits, &misses, func() bool {
			return e.denormalizer.SupportsDenormalization(data, typ, format)
		}) {
			continue
		}

		result, err := e.denormalizer.Denormalize(ctx, data, typ, format)
		if err != nil {
			err = newTransformError(ErrDenormalize, directionDenormalize, typeName, format, err)
		}
		emitDenormalizeComplete(ctx, format, typeName, time.Since(start), hits, misses, err)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	err := newResolveError(directionDenormalize, typeName, format)
	emitDenormalizeComplete(ctx, format, typeName, time.Since(start), hits, misses, err)
	return nil, err
}

// ResolveNormalizer returns the normalizer that would handle value for
// format, without invoking it.
func (c *Chain) ResolveNormalizer(value any, format string) (Normalizer, error) {
	typ := reflect.TypeOf(value)
	var hits, misses int
	for _, e := range c.normalizers {
		if c.supported(e, directionNormalize, typ, format, &hits, &misses, func() bool {
			return e.normalizer.Supports(value, format)
		}) {
			return e.normalizer, nil
		}
	}
	return nil, newResolveError(directionNormalize, nameForType(typ), format)
}

// ResolveDenormalizer returns the denormalizer that would rebuild a value
// of type typ from data for format, without invoking it.
func (c *Chain) ResolveDenormalizer(data any, typ reflect.Type, format string) (Denormalizer, error) {
	var hits, misses int
	for _, e := range c.denormalizers {
		if c.supported(e, directionDenormalize, typ, format, &hits, &misses, func() bool {
			return e.denormalizer.SupportsDenormalization(data, typ, format)
		}) {
			return e.denormalizer, nil
		}
	}
	return nil, newResolveError(directionDenormalize, nameForType(typ), format)
}

// supported decides whether candidate e handles a value of type typ for
// format, honoring the candidate's support declaration:
//
//   - NotSupported vetoes the candidate; the predicate never runs.
//   - CacheResult consults the decision cache before falling back to the
//     predicate and memoizes the answer.
//   - CacheNever, a missing entry, or no declaration at all run the
//     predicate uncached.
func (c *Chain) supported(e entry, direction string, typ reflect.Type, format string, hits, misses *int, predicate func() bool) bool {
	if e.types != nil {
		if cacheability, ok := lookupDeclaration(e.types.SupportedTypes(format), typ); ok {
			switch cacheability {
			case NotSupported:
				return false
			case CacheResult:
				key := decisionKey{
					candidate: e.id,
					direction: direction,
					typeName:  nameForType(typ),
					format:    format,
				}
				if decision, ok := c.cache.lookup(key); ok {
					*hits++
					return decision
				}
				decision := predicate()
				c.cache.store(key, decision)
				*misses++
				return decision
			}
		}
	}
	return predicate()
}

// CachedDecisions returns the number of memoized support decisions.
func (c *Chain) CachedDecisions() int {
	return c.cache.size()
}
