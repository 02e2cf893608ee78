package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented store with per-entry expiry
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// keyVersion changes whenever rule tables or scoring change shape,
// so stale results are never served after an upgrade
const keyVersion = "v1"

// CacheKey derives a file-safe key from the normalized jurisdiction and the exact text
func CacheKey(jurisdiction, text string) string {
	h := sha256.New()
	h.Write([]byte(jurisdiction))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "lexaudit-" + keyVersion + "-" + hex.EncodeToString(h.Sum(nil))
}
