// Package cache provides the bounded query-result memo. Entries expire by
// age and the entry count is capped with least-recently-used eviction, so a
// configured TTL is always honored.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the memo interface. Get reports a hit only when the stored value
// is younger than maxAge.
type Cache interface {
	Get(key string, maxAge time.Duration) ([]byte, bool)
	Put(key string, value []byte)
	Delete(key string)
	Len() int
}

// Key derives a cache key from the exact query text.
func Key(query string) string {
	hash := sha256.Sum256([]byte(query))
	return "newsvet:v1:" + hex.EncodeToString(hash[:])
}
