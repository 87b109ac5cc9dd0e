package cache

import (
	"time"

	"github.com/rshade/userdir/internal/users"
)

// CacheEntry is a cached user snapshot with TTL metadata.
//
//nolint:revive // CacheEntry is the canonical name for this exported type.
type CacheEntry struct {
	// Key is the cache key (SHA256 of the normalized source URL).
	Key string `json:"key"`

	// Users is the cached snapshot. It must be treated as read-only.
	Users []users.User `json:"users"`

	// CreatedAt is when the snapshot was stored.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the snapshot stops being served.
	ExpiresAt time.Time `json:"expires_at"`

	// TTLSeconds is the time-to-live the entry was created with.
	TTLSeconds int `json:"ttl_seconds"`
}

// NewCacheEntry creates an entry stamped with the current time.
func NewCacheEntry(key string, snapshot []users.User, ttlSeconds int) *CacheEntry {
	now := time.Now()
	return &CacheEntry{
		Key:        key,
		Users:      snapshot,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the current time is past ExpiresAt.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// IsValid is the inverse of IsExpired.
func (e *CacheEntry) IsValid() bool {
	return !e.IsExpired()
}

// Age returns the time since the entry was created.
func (e *CacheEntry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 if already expired.
func (e *CacheEntry) TimeUntilExpiration() time.Duration {
	remaining := time.Until(e.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
