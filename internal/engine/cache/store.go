package cache

import (
	"errors"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rshade/userdir/internal/users"
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// SnapshotCache keeps fetched user snapshots in memory with TTL expiration.
// It is safe for concurrent use.
type SnapshotCache struct {
	// entries is the bounded, expiring backing store.
	entries *expirable.LRU[string, *CacheEntry]

	// enabled controls whether caching is active.
	enabled bool

	// ttlSeconds is the TTL applied to new entries.
	ttlSeconds int

	// maxEntries bounds the number of snapshots kept (0 = unlimited).
	maxEntries int
}

// NewSnapshotCache creates a cache. A disabled cache rejects every operation with
// ErrCacheDisabled. A non-positive ttlSeconds produces entries that are already
// expired when read back.
func NewSnapshotCache(enabled bool, ttlSeconds, maxEntries int) *SnapshotCache {
	if !enabled {
		return &SnapshotCache{enabled: false}
	}
	if maxEntries < 0 {
		maxEntries = 0
	}

	// The LRU sweeps in the background; entries also carry their own expiry so
	// reads never return a stale snapshot between sweeps. A non-positive TTL
	// disables sweeping.
	lruTTL := time.Duration(ttlSeconds) * time.Second

	return &SnapshotCache{
		entries:    expirable.NewLRU[string, *CacheEntry](maxEntries, nil, lruTTL),
		enabled:    true,
		ttlSeconds: ttlSeconds,
		maxEntries: maxEntries,
	}
}

// Get returns the entry stored under key.
// Returns ErrCacheNotFound for a miss and ErrCacheExpired for a stale entry,
// which is removed.
func (c *SnapshotCache) Get(key string) (*CacheEntry, error) {
	if !c.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, ErrCacheNotFound
	}
	if entry.IsExpired() {
		c.entries.Remove(key)
		return nil, ErrCacheExpired
	}

	return entry, nil
}

// Set stores a copy of snapshot under key, replacing any previous entry.
func (c *SnapshotCache) Set(key string, snapshot []users.User) error {
	if !c.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	c.entries.Add(key, NewCacheEntry(key, slices.Clone(snapshot), c.ttlSeconds))
	return nil
}

// Delete removes the entry under key. Deleting a missing key is not an error.
func (c *SnapshotCache) Delete(key string) error {
	if !c.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	c.entries.Remove(key)
	return nil
}

// Clear removes every entry.
func (c *SnapshotCache) Clear() error {
	if !c.enabled {
		return ErrCacheDisabled
	}
	c.entries.Purge()
	return nil
}

// Len returns the number of entries, including ones not yet swept.
func (c *SnapshotCache) Len() int {
	if !c.enabled {
		return 0
	}
	return c.entries.Len()
}

// IsEnabled returns true if caching is enabled.
func (c *SnapshotCache) IsEnabled() bool {
	return c.enabled
}

// GetTTL returns the TTL in seconds applied to new entries.
func (c *SnapshotCache) GetTTL() int {
	return c.ttlSeconds
}

// MaxEntries returns the entry bound (0 = unlimited).
func (c *SnapshotCache) MaxEntries() int {
	return c.maxEntries
}
