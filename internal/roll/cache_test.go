package roll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navelogic/rpgbot/internal/dice"
)

func TestExpressionCache_HitsAndMisses(t *testing.T) {
	cache := newExpressionCache(CacheConfig{Size: 10, TTL: time.Minute})

	_, found := cache.Get("2d6")
	assert.False(t, found)

	expr, err := dice.ParseExpression("2d6")
	require.NoError(t, err)
	cache.Set("2d6", expr)

	got, found := cache.Get("2d6")
	assert.True(t, found)
	assert.Equal(t, expr, got)

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestExpressionCache_EvictsOldest(t *testing.T) {
	cache := newExpressionCache(CacheConfig{Size: 2, TTL: time.Minute})

	for _, src := range []string{"1d4", "1d6", "1d8"} {
		expr, err := dice.ParseExpression(src)
		require.NoError(t, err)
		cache.Set(src, expr)
	}

	_, found := cache.Get("1d4")
	assert.False(t, found)

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, 2, stats.Size)
}

func TestExpressionCache_Clear(t *testing.T) {
	cache := newExpressionCache(DefaultCacheConfig())

	expr, err := dice.ParseExpression("d20")
	require.NoError(t, err)
	cache.Set("d20", expr)
	cache.Clear()

	assert.Equal(t, 0, cache.GetStats().Size)
}

func TestDefaultCacheConfig(t *testing.T) {
	cfg := DefaultCacheConfig()
	assert.Equal(t, 512, cfg.Size)
	assert.Equal(t, 10*time.Minute, cfg.TTL)
}
