package normalize

import (
	"sort"
	"sync"
)

// entry is a registered candidate with its priority and registration order.
type entry struct {
	id           int // registration sequence, stable tiebreak and cache key
	priority     int
	normalizer   Normalizer   // nil when the candidate only denormalizes
	denormalizer Denormalizer // nil when the candidate only normalizes
	types        TypeSupporter
	aware        ChainAware
}

// Registry collects normalization candidates with priorities.
//
// A Registry is safe for concurrent use. Once a Chain is built from it the
// registry is sealed and further registrations fail with ErrRegistrySealed,
// so the chain's candidate order never shifts underneath it.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	sealed  bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry preloaded with the builtin candidates
// at their documented priorities. Additional candidates may be registered
// before building a chain; anything above PriorityObject outranks the
// struct fallback.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Builtins cover disjoint types, so registration order only matters
	// through the priorities themselves.
	mustRegister(r, TimeNormalizer(), PriorityTime)
	mustRegister(r, DurationNormalizer(), PriorityDuration)
	mustRegister(r, BytesNormalizer(), PriorityBytes)
	mustRegister(r, CollectionNormalizer(), PriorityCollection)
	mustRegister(r, ObjectNormalizer(), PriorityObject)
	return r
}

// mustRegister registers a builtin, panicking on the impossible.
func mustRegister(r *Registry, candidate any, priority int) {
	if err := r.Register(candidate, priority); err != nil {
		panic(err)
	}
}

// Register adds a candidate with the given priority. Higher priorities are
// tried first; candidates sharing a priority keep registration order. The
// same candidate may be registered more than once.
//
// The candidate must implement Normalizer, Denormalizer, or both; anything
// else fails with ErrNotRegisterable. Registration after a chain has been
// built fails with ErrRegistrySealed.
func (r *Registry) Register(candidate any, priority int) error {
	n, isNorm := candidate.(Normalizer)
	d, isDenorm := candidate.(Denormalizer)
	if !isNorm && !isDenorm {
		return ErrNotRegisterable
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed
	}

	e := entry{
		id:       len(r.entries),
		priority: priority,
	}
	if isNorm {
		e.normalizer = n
	}
	if isDenorm {
		e.denormalizer = d
	}
	if ts, ok := candidate.(TypeSupporter); ok {
		e.types = ts
	}
	if aw, ok := candidate.(ChainAware); ok {
		e.aware = aw
	}
	r.entries = append(r.entries, e)

	emitCandidateRegistered(TypeName(candidate), priority, len(r.entries))
	return nil
}

// Normalizers returns the registered normalizers, highest priority first.
// Candidates that only denormalize are omitted.
func (r *Registry) Normalizers() []Normalizer {
	ordered := r.ordered()
	out := make([]Normalizer, 0, len(ordered))
	for _, e := range ordered {
		if e.normalizer != nil {
			out = append(out, e.normalizer)
		}
	}
	return out
}

// Denormalizers returns the registered denormalizers, highest priority
// first. Candidates that only normalize are omitted.
func (r *Registry) Denormalizers() []Denormalizer {
	ordered := r.ordered()
	out := make([]Denormalizer, 0, len(ordered))
	for _, e := range ordered {
		if e.denormalizer != nil {
			out = append(out, e.denormalizer)
		}
	}
	return out
}

// Len returns the number of registered candidates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// ordered returns a snapshot of the entries sorted by descending priority,
// stable for equal priorities.
func (r *Registry) ordered() []entry {
	r.mu.RLock()
	snapshot := make([]entry, len(r.entries))
	copy(snapshot, r.entries)
	r.mu.RUnlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].priority > snapshot[j].priority
	})
	return snapshot
}

// seal freezes the registry and returns the ordered entries.
func (r *Registry) seal() []entry {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
	return r.ordered()
}
