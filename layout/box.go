package layout

import (
	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
)

// BoxKind distinguishes the variants of Box.
type BoxKind uint8

const (
	// GlyphBox holds consecutive glyphs sharing one owner.
	GlyphBox BoxKind = iota

	// ElementBox holds a single inline element.
	ElementBox
)

// String returns the string representation of the box kind.
func (k BoxKind) String() string {
	switch k {
	case GlyphBox:
		return "GlyphBox"
	case ElementBox:
		return "ElementBox"
	default:
		return "Unknown"
	}
}

// PlacedGlyph is a glyph with the kerning the line flow applied before it.
type PlacedGlyph struct {
	// Kern is the effective space before the glyph: source kerning plus the
	// kerning attribute, or the tab adjustment for tabs.
	Kern float64

	glyph.Glyph
}

// Box is a horizontal piece of a line. A GlyphBox covers one character per
// glyph; an ElementBox covers the single placeholder character.
type Box struct {
	Kind    BoxKind
	Owner   glyph.OwnerID
	Glyphs  []PlacedGlyph
	Element *document.Element

	// Advance is the total width including kerning.
	Advance float64
	Ascent  float64
	Descent float64

	quads  []Quad
	placed bool
}

func newGlyphBox(owner glyph.OwnerID, glyphs []PlacedGlyph, advance float64) Box {
	b := Box{Kind: GlyphBox, Owner: owner, Glyphs: glyphs, Advance: advance}
	for i := range glyphs {
		b.Ascent = max(b.Ascent, glyphs[i].Ascent)
		b.Descent = max(b.Descent, glyphs[i].Descent)
	}
	return b
}

func newElementBox(el *document.Element) Box {
	return Box{
		Kind:    ElementBox,
		Element: el,
		Advance: el.Advance,
		Ascent:  el.Ascent,
		Descent: el.Descent,
	}
}

// Len returns the number of characters the box covers.
func (b *Box) Len() int {
	if b.Kind == ElementBox {
		return 1
	}
	return len(b.Glyphs)
}

// Placed reports whether the box currently has render geometry.
func (b *Box) Placed() bool {
	return b.placed
}

// Quads returns the render geometry of a placed box, nil otherwise.
// The slice is owned by the box.
func (b *Box) Quads() []Quad {
	return b.quads
}

// dropLeadingKern removes the kerning of the first glyph and returns it.
func (b *Box) dropLeadingKern() float64 {
	if b.Kind != GlyphBox || len(b.Glyphs) == 0 {
		return 0
	}
	k := b.Glyphs[0].Kern
	b.Glyphs[0].Kern = 0
	b.Advance -= k
	return k
}

// offset returns the distance from the box origin to the left edge of the
// i-th character. offset(Len()) is the box advance.
func (b *Box) offset(i int) float64 {
	if b.Kind == ElementBox {
		if i > 0 {
			return b.Advance
		}
		return 0
	}
	x := 0.0
	for j := range min(i, len(b.Glyphs)) {
		x += b.Glyphs[j].Kern + b.Glyphs[j].Advance
	}
	if i < len(b.Glyphs) {
		x += b.Glyphs[i].Kern
	}
	return x
}

// position returns the character boundary closest to x, relative to the box
// origin. A point past the middle of a glyph resolves to the boundary after
// it.
func (b *Box) position(x float64) int {
	if b.Kind == ElementBox {
		if x >= b.Advance/2 {
			return 1
		}
		return 0
	}
	pen := 0.0
	for i := range b.Glyphs {
		g := &b.Glyphs[i]
		pen += g.Kern
		if x < pen+g.Advance/2 {
			return i
		}
		pen += g.Advance
	}
	return len(b.Glyphs)
}
