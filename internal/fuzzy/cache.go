package fuzzy

import "sync"

// pairKey identifies one memoized (query, candidate) computation. Case
// and scoring mode are properties of the owning matcher, not the key.
type pairKey struct {
	query     string
	candidate string
}

// Cache memoizes match results for a matcher's lifetime. It is safe
// for concurrent use; the batch paths only write from their serial
// merge step regardless. Entries are never evicted implicitly: only
// Clear empties the cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[pairKey]Match
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[pairKey]Match)}
}

// Get returns a copy of the stored result for the pair, if present.
func (c *Cache) Get(query, candidate string) (Match, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.entries[pairKey{query, candidate}]
	if !ok {
		return Match{}, false
	}
	return cloneMatch(result), true
}

// Set stores a result for the pair.
func (c *Cache) Set(query, candidate string, result Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[pairKey{query, candidate}] = cloneMatch(result)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[pairKey]Match)
}

// Len returns the number of cached pairs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// cloneMatch copies positions so callers cannot mutate cached state.
func cloneMatch(m Match) Match {
	if m.Positions == nil {
		return m
	}
	positions := make([]int, len(m.Positions))
	copy(positions, m.Positions)
	return Match{Score: m.Score, Positions: positions}
}
