package layout

import (
	"slices"

	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
	"github.com/gogpu/textflow/runlist"
)

// Layout is a complete, static layout of a document. Every line is placed.
type Layout struct {
	Lines         []Line
	ContentWidth  float64
	ContentHeight float64
}

// Build lays out doc from scratch. The viewport height and scroll position
// are ignored; the backend, if any, receives every box.
func Build(doc *document.Document, src glyph.Source, opts ...Option) *Layout {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := doc.Len()
	cells := make([]glyph.Glyph, n)
	owners := runlist.New[glyph.OwnerID](n, 0)
	sh := shaper{doc: doc, src: src}
	sh.shape(cells, owners, 0, n)

	f := &flower{doc: doc, src: src, cells: cells, owners: owners, opts: &o}
	lines := slices.Collect(f.lines(0))
	newVFlow(doc, o.width).flow(lines, 0, len(lines))

	st := newStyleIters(doc, &o, 0, 0)
	out := &Layout{Lines: lines, ContentHeight: contentHeight(lines)}
	for i := range lines {
		out.ContentWidth = max(out.ContentWidth, lineExtent(&lines[i]))
		placeBoxes(&lines[i], st, func(b *Box) {
			o.backend.Place(i, b)
		})
	}
	return out
}

// AppendVertices appends the geometry of every box to dst.
func (l *Layout) AppendVertices(dst []float32) []float32 {
	for i := range l.Lines {
		for j := range l.Lines[i].Boxes {
			dst = AppendVertices(dst, l.Lines[i].Boxes[j].quads)
		}
	}
	return dst
}
