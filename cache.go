package normalize

import "sync"

// decisionKey identifies a memoized support decision.
type decisionKey struct {
	candidate int    // registration id of the candidate
	direction string // "normalize" or "denormalize"
	typeName  string
	format    string
}

// supportCache memoizes support decisions for candidates that declare a
// type as CacheResult. Decisions are stored per (candidate, direction,
// type, format) and never invalidated: the chain's candidate set is sealed,
// so a cached decision stays correct for the chain's lifetime.
type supportCache struct {
	mu        sync.RWMutex
	decisions map[decisionKey]bool
}

func newSupportCache() *supportCache {
	return &supportCache{
		decisions: make(map[decisionKey]bool),
	}
}

// lookup returns the cached decision for key, if present.
func (c *supportCache) lookup(key decisionKey) (decision, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	decision, ok = c.decisions[key]
	return decision, ok
}

// store records a decision for key.
func (c *supportCache) store(key decisionKey, decision bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decisions[key] = decision
}

// size returns the number of cached decisions.
func (c *supportCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.decisions)
}
