package roll

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/navelogic/rpgbot/internal/dice"
)

// CacheConfig holds the expression cache configuration
type CacheConfig struct {
	Size int           // Maximum number of cached expressions
	TTL  time.Duration // Time-to-live for cached entries
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Size: DefaultCacheSize,
		TTL:  DefaultCacheTTL,
	}
}

// CacheStats holds statistics about expression cache performance
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// expressionCache keeps parsed expressions so repeated commands skip the
// scanner. Only successful parses are stored.
type expressionCache struct {
	lru       *expirable.LRU[string, dice.Expression]
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newExpressionCache(config CacheConfig) *expressionCache {
	if config.Size <= 0 {
		config.Size = DefaultCacheSize
	}
	c := &expressionCache{}
	c.lru = expirable.NewLRU[string, dice.Expression](config.Size, func(string, dice.Expression) {
		c.evictions.Add(1)
	}, config.TTL)
	return c
}

// Get returns the cached expression for key.
func (c *expressionCache) Get(key string) (dice.Expression, bool) {
	expr, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return expr, ok
}

func (c *expressionCache) Set(key string, expr dice.Expression) {
	c.lru.Add(key, expr)
}

func (c *expressionCache) Clear() {
	c.lru.Purge()
}

// GetStats returns a snapshot of cache counters.
func (c *expressionCache) GetStats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
	}
}
