package dataset

import (
	"sync"
)

// Cache loads the source table once per process and hands the same result to
// every recomputation pass afterwards. The cached table is replace-only; it
// is never mutated, so concurrent readers need no further coordination.
// Invalidation happens only by process restart.
type Cache struct {
	load func() (Result, error)

	mu     sync.Mutex
	loaded bool
	result Result
}

// NewCache wraps a loader in a load-once cache.
func NewCache(loader *Loader) *Cache {
	return &Cache{load: loader.Load}
}

// Get returns the cached result, loading it on first use. A failed load is
// not cached; the next call retries.
func (c *Cache) Get() (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.result, nil
	}

	result, err := c.load()
	if err != nil {
		return Result{}, err
	}

	c.result = result
	c.loaded = true
	return c.result, nil
}
