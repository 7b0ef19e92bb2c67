// Package cache provides a generic LRU cache.
//
//	c := cache.New[string, []glyph.Glyph](100)
//	glyphs := c.GetOrCreate("key", func() []glyph.Glyph {
//		return src.Glyphs(text, font)
//	})
//
// The glyph package uses it to memoise shaped text keyed by font and
// string, so reshaping an unchanged word after an edit is a map lookup.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
