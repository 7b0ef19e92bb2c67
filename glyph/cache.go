package glyph

import (
	"github.com/gogpu/textflow/internal/cache"
)

// DefaultCacheSize is the number of shaped runs kept by NewCache when no
// capacity is given.
const DefaultCacheSize = 4096

type cacheKey struct {
	font Font
	text string
}

// Cache memoises a Source. Shaped runs are keyed by font and text; metrics
// by font.
//
// The returned glyph slices are shared between callers and must not be
// modified.
type Cache struct {
	src     Source
	glyphs  *cache.Cache[cacheKey, []Glyph]
	metrics *cache.Cache[Font, Metrics]
}

// NewCache wraps src with an LRU holding up to capacity shaped runs.
// A capacity <= 0 uses DefaultCacheSize.
func NewCache(src Source, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		src:     src,
		glyphs:  cache.New[cacheKey, []Glyph](capacity),
		metrics: cache.New[Font, Metrics](0),
	}
}

// Glyphs implements Source.
func (c *Cache) Glyphs(text []rune, f Font) []Glyph {
	key := cacheKey{font: f, text: string(text)}
	return c.glyphs.GetOrCreate(key, func() []Glyph {
		return c.src.Glyphs(text, f)
	})
}

// Metrics implements Source.
func (c *Cache) Metrics(f Font) Metrics {
	return c.metrics.GetOrCreate(f, func() Metrics {
		return c.src.Metrics(f)
	})
}

// ContextSensitive forwards to the wrapped source.
func (c *Cache) ContextSensitive() bool {
	return IsContextSensitive(c.src)
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Stats returns statistics for the shaped-run cache.
func (c *Cache) Stats() CacheStats {
	s := c.glyphs.Stats()
	return CacheStats{
		Len:       s.Len,
		Capacity:  s.Capacity,
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
		HitRate:   s.HitRate,
	}
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.glyphs.Clear()
	c.metrics.Clear()
}
