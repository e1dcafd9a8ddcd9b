package cache

import "time"

// Cache is a key-value cache with an optional TTL per entry.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value. A ttl <= 0 falls back to the cache default; a
	// zero default means the entry does not expire.
	Set(key K, value V, ttl time.Duration)

	Delete(key K)

	// Has reports whether a key is present and not expired.
	Has(key K) bool

	// Len returns the number of non-expired items currently stored.
	Len() int

	// PurgeExpired removes expired entries.
	PurgeExpired()
}
