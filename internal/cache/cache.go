// Package cache provides TTL-bounded caching for service responses
// (feature-info in particular), layered memory-over-disk so repeated
// CLI invocations do not refetch a schema that changes only on
// redeploys.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the caching interface.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a resource URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "lifespan:v1:" + hex.EncodeToString(hash[:])
}
