package temporal

import (
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// Cache memoizes parse outcomes, both matches and non-matches, keyed by
// production and input text.
//
// Inputs are indexed by their xxh3 hash. Each entry also keeps the input it
// was computed from, so a hash collision is detected and parsed directly
// instead of returning another input's result.
//
// The zero value is an empty cache ready to use. A Cache is safe for
// concurrent use by multiple goroutines.
type Cache struct {
	entries sync.Map // cacheKey -> *cacheEntry
	hits    atomic.Uint64
	misses  atomic.Uint64
}

type cacheKey struct {
	prod Production
	hash uint64
}

type cacheEntry struct {
	input  string
	result *ParseResult
	ok     bool
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return new(Cache)
}

// Parse is [Parse] with memoization.
func (c *Cache) Parse(prod Production, input string) (*ParseResult, bool) {
	key := cacheKey{prod: prod, hash: xxh3.HashString(input)}

	if value, ok := c.entries.Load(key); ok {
		if e, ok := value.(*cacheEntry); ok && e.input == input {
			c.hits.Add(1)

			return e.result, e.ok
		}

		// Hash collision: leave the existing entry in place.
		c.misses.Add(1)

		return Parse(prod, input)
	}

	c.misses.Add(1)

	result, ok := Parse(prod, input)

	c.entries.LoadOrStore(key, &cacheEntry{input: input, result: result, ok: ok})

	return result, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Stats returns the number of lookups answered from the cache and the
// number that had to be parsed.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Clear removes all cached entries and resets the statistics.
func (c *Cache) Clear() {
	c.entries.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
}
