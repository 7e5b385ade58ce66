// Package keywords extracts ATS keywords from job descriptions and caches
// them by content hash, so the section tasks of one optimization run (and
// repeat runs against the same posting) share a single extraction call.
package keywords

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// DefaultTTL is how long a cached keyword set stays valid. Job postings do
// not change mid-session, so an hour is generous.
const DefaultTTL = time.Hour

// DefaultCapacity bounds the cache; the oldest entry is evicted at the limit.
const DefaultCapacity = 128

// Hash returns the cache key for a job description: the hex SHA-256 of its
// exact text.
func Hash(jobDescription string) string {
	sum := sha256.Sum256([]byte(jobDescription))
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	set        types.KeywordSet
	insertedAt time.Time
}

// Cache is an in-memory keyword cache keyed by job-description hash, bounded
// by entry count and TTL. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]cacheEntry
	order    []string // insertion order, oldest first
	now      func() time.Time
}

// NewCache creates a cache with the given TTL and capacity. Non-positive
// arguments take the package defaults.
func NewCache(ttl time.Duration, capacity int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// Get returns the cached set for a hash if present and unexpired. Expired
// entries are removed on access.
func (c *Cache) Get(hash string) (types.KeywordSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[hash]
	if !ok {
		return types.KeywordSet{}, false
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		c.remove(hash)
		return types.KeywordSet{}, false
	}
	return entry.set, true
}

// Put stores a set under its hash, evicting the oldest entry when full.
// Re-inserting an existing hash refreshes its age.
func (c *Cache) Put(hash string, set types.KeywordSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[hash]; exists {
		c.remove(hash)
	}
	for len(c.entries) >= c.capacity && len(c.order) > 0 {
		c.remove(c.order[0])
	}

	c.entries[hash] = cacheEntry{set: set, insertedAt: c.now()}
	c.order = append(c.order, hash)
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes an entry; callers hold the lock.
func (c *Cache) remove(hash string) {
	delete(c.entries, hash)
	for i, h := range c.order {
		if h == hash {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
