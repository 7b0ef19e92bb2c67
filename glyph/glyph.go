// Package glyph turns styled text into per-character glyph metrics.
//
// A Source maps a run of characters in one Font to exactly one Glyph per
// character. Three sources are provided:
//
//   - Monospace: deterministic fixed-cell metrics, no font files needed
//   - OpenType: per-glyph advances and pair kerning from x/image/font/sfnt
//   - HarfBuzz: full shaping through go-text/typesetting
//
// Cache wraps any Source with an LRU keyed by font and text.
package glyph

import (
	"fmt"
	"sync"
)

// OwnerID identifies the texture or atlas a glyph is drawn from. Consecutive
// characters with the same owner are grouped into one box by the layout.
// Zero is reserved for inline elements.
type OwnerID uint32

// Font selects a face and size.
type Font struct {
	Name   string
	Size   float64
	Bold   bool
	Italic bool
}

// String returns a description like "Go 12 bold".
func (f Font) String() string {
	s := fmt.Sprintf("%s %g", f.Name, f.Size)
	if f.Bold {
		s += " bold"
	}
	if f.Italic {
		s += " italic"
	}
	return s
}

// Metrics describes the vertical extent of a font. Descent is positive below
// the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns the distance between consecutive baselines without extra
// leading.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Rect is an axis-aligned rectangle. For glyph bounds it is relative to the
// pen position on the baseline, with y growing downward.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.X0 >= r.X1 || r.Y0 >= r.Y1
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}

// Glyph is the shaped form of one character.
type Glyph struct {
	// Advance is the horizontal pen movement after the glyph.
	Advance float64

	// Kern is the adjustment against the previous character of the same
	// shaping run. The layout ignores it at the start of a line.
	Kern float64

	// Ascent and Descent are the font extents the glyph contributes to its
	// line. Descent is positive.
	Ascent  float64
	Descent float64

	Owner OwnerID

	// ID is the font glyph index, 0 when the source has none.
	ID uint32

	// Bounds is the ink box relative to the pen position. Empty for
	// invisible characters.
	Bounds Rect

	// Tex is the atlas region for the glyph, zero when the source does not
	// rasterize.
	Tex Rect
}

// Source produces glyphs for text in a font.
//
// Glyphs must return exactly len(text) glyphs. Characters merged into a
// cluster by shaping report zero advance after the first. Implementations
// must be safe for concurrent use.
type Source interface {
	Glyphs(text []rune, f Font) []Glyph
	Metrics(f Font) Metrics
}

// ContextSensitive is implemented by sources whose output for a character
// depends on its neighbours (kerning, ligatures). The layout reshapes whole
// paragraphs for such sources so incremental results match a full layout.
type ContextSensitive interface {
	ContextSensitive() bool
}

// IsContextSensitive reports whether src shapes with context.
func IsContextSensitive(src Source) bool {
	cs, ok := src.(ContextSensitive)
	return ok && cs.ContextSensitive()
}

// ownerTable hands out one OwnerID per distinct Font.
type ownerTable struct {
	mu   sync.Mutex
	ids  map[Font]OwnerID
	next OwnerID
}

func (t *ownerTable) owner(f Font) OwnerID {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.ids[f]; ok {
		return id
	}
	if t.ids == nil {
		t.ids = make(map[Font]OwnerID)
	}
	t.next++
	t.ids[f] = t.next
	return t.next
}
