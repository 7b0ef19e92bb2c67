package layout

import (
	"image/color"

	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
	"github.com/gogpu/textflow/runlist"
)

// QuadKind identifies what a Quad draws.
type QuadKind uint8

const (
	// QuadGlyph is a textured glyph.
	QuadGlyph QuadKind = iota

	// QuadBackground fills behind a run of glyphs.
	QuadBackground

	// QuadUnderline is a thin bar under a run of glyphs.
	QuadUnderline

	// QuadElement reserves the area of an inline element. The backend
	// draws the element itself.
	QuadElement
)

// String returns the string representation of the quad kind.
func (k QuadKind) String() string {
	switch k {
	case QuadGlyph:
		return "Glyph"
	case QuadBackground:
		return "Background"
	case QuadUnderline:
		return "Underline"
	case QuadElement:
		return "Element"
	default:
		return "Unknown"
	}
}

// Quad is an axis-aligned rectangle in layout coordinates.
type Quad struct {
	Kind QuadKind

	X0, Y0, X1, Y1 float64

	// Tex is the atlas region for glyph quads.
	Tex glyph.Rect

	Color color.RGBA

	Owner   glyph.OwnerID
	Element *document.Element
}

// Backend receives render geometry for boxes of visible lines. Place is
// called after a box's quads are (re)computed, Release before they are
// dropped. The line argument is the index of the line at the time of the
// call.
type Backend interface {
	Place(line int, box *Box)
	Release(line int, box *Box)
}

type nopBackend struct{}

func (nopBackend) Place(int, *Box)   {}
func (nopBackend) Release(int, *Box) {}

// underlineThickness is the underline height as a fraction of the box
// descent, never thinner than one unit.
const underlineThickness = 0.15

// styleIters are the decoration iterators read while placing boxes. A single
// set serves lines placed in increasing order.
type styleIters struct {
	colors      runlist.Iterator[color.RGBA]
	backgrounds runlist.Iterator[color.RGBA]
	underlines  runlist.Iterator[color.RGBA]
	baselines   runlist.Iterator[float64]
}

// newStyleIters returns decoration iterators with [selStart, selEnd) shown
// in the selection colors.
func newStyleIters(doc *document.Document, opts *options, selStart, selEnd int) *styleIters {
	colors := document.StyleRuns[color.RGBA](doc, document.AttrColor)
	backgrounds := document.StyleRuns[color.RGBA](doc, document.AttrBackgroundColor)
	if selEnd > selStart {
		colors = runlist.Override(colors, selStart, selEnd, opts.selectionColor)
		backgrounds = runlist.Override(backgrounds, selStart, selEnd, opts.selectionBG)
	}
	return &styleIters{
		colors:      colors,
		backgrounds: backgrounds,
		underlines:  document.StyleRuns[color.RGBA](doc, document.AttrUnderline),
		baselines:   document.StyleRuns[float64](doc, document.AttrBaseline),
	}
}

// place computes the quads of b with its origin at (x, y) on the baseline.
// start is the document position of the box's first character.
func (b *Box) place(st *styleIters, x, y float64, start int) {
	b.quads = b.quads[:0]
	b.placed = true

	if b.Kind == ElementBox {
		b.quads = append(b.quads, Quad{
			Kind:    QuadElement,
			X0:      x,
			Y0:      y - b.Ascent,
			X1:      x + b.Advance,
			Y1:      y + b.Descent,
			Element: b.Element,
		})
		return
	}

	n := len(b.Glyphs)
	edges := make([]float64, n+1)
	pen := x
	for i := range b.Glyphs {
		pen += b.Glyphs[i].Kern
		edges[i] = pen
		pen += b.Glyphs[i].Advance
	}
	edges[n] = pen

	for r := range st.backgrounds.Ranges(start, start+n) {
		if r.Value.A == 0 {
			continue
		}
		b.quads = append(b.quads, Quad{
			Kind:  QuadBackground,
			X0:    edges[r.Start-start],
			Y0:    y - b.Ascent,
			X1:    edges[r.End-start],
			Y1:    y + b.Descent,
			Color: r.Value,
		})
	}

	for i := range b.Glyphs {
		g := &b.Glyphs[i]
		shift := st.baselines.At(start + i)
		c := st.colors.At(start + i)
		if g.Bounds.Empty() {
			continue
		}
		r := g.Bounds.Translate(edges[i], y-shift)
		b.quads = append(b.quads, Quad{
			Kind:  QuadGlyph,
			X0:    r.X0,
			Y0:    r.Y0,
			X1:    r.X1,
			Y1:    r.Y1,
			Tex:   g.Tex,
			Color: c,
			Owner: b.Owner,
		})
	}

	thickness := max(b.Descent*underlineThickness, 1)
	for r := range st.underlines.Ranges(start, start+n) {
		if r.Value.A == 0 {
			continue
		}
		top := y + b.Descent/2 - thickness/2
		b.quads = append(b.quads, Quad{
			Kind:  QuadUnderline,
			X0:    edges[r.Start-start],
			Y0:    top,
			X1:    edges[r.End-start],
			Y1:    top + thickness,
			Color: r.Value,
		})
	}
}

// release drops the box geometry.
func (b *Box) release() {
	b.quads = nil
	b.placed = false
}
