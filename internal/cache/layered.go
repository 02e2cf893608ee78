package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/ppiankov/lexaudit/internal/model"
)

// LayeredCache checks memory first, then disk, promoting disk hits to memory
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a memory + disk cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// NewLayeredCacheFromConfig builds the cache described by cfg, or nil when caching is disabled
func NewLayeredCacheFromConfig(cfg model.CacheConfig) *LayeredCache {
	if !cfg.Enabled {
		return nil
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores in both layers. A zero ttl uses each layer's default.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.memory.Delete(key), c.disk.Delete(key))
}

func (c *LayeredCache) Clear() error {
	return errors.Join(c.memory.Clear(), c.disk.Clear())
}

// GetResult loads a memoized verification result
func GetResult(c Cache, jurisdiction, text string) (*model.VerificationResult, bool) {
	data, ok := c.Get(CacheKey(jurisdiction, text))
	if !ok {
		return nil, false
	}
	var result model.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetResult memoizes a verification result with each layer's default TTL
func SetResult(c Cache, jurisdiction, text string, result *model.VerificationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.Set(CacheKey(jurisdiction, text), data, 0)
}
