package layout

import (
	"github.com/gogpu/textflow"
	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
	"github.com/gogpu/textflow/runlist"
)

// fontStyle is the bold/italic half of a font run.
type fontStyle struct {
	bold, italic bool
}

// fontRuns combines the font attributes of doc into one iterator of
// glyph.Font values. Non-positive sizes fall back to the default size.
func fontRuns(doc *document.Document) runlist.Iterator[glyph.Font] {
	def := document.DefaultStyle()[document.AttrFontSize].(float64)
	sizes := runlist.Filter(document.StyleRuns[float64](doc, document.AttrFontSize),
		func(s float64) bool { return s > 0 }, def)
	face := runlist.Zip(document.StyleRuns[string](doc, document.AttrFontName), sizes,
		func(name string, size float64) glyph.Font {
			return glyph.Font{Name: name, Size: size}
		})
	style := runlist.Zip(document.StyleRuns[bool](doc, document.AttrBold), document.StyleRuns[bool](doc, document.AttrItalic),
		func(bold, italic bool) fontStyle {
			return fontStyle{bold: bold, italic: italic}
		})
	return runlist.Zip(face, style, func(f glyph.Font, s fontStyle) glyph.Font {
		f.Bold, f.Italic = s.bold, s.italic
		return f
	})
}

// shapeSpan is a stretch of text with one font and element.
type shapeSpan struct {
	font    glyph.Font
	element *document.Element
}

// shaper fills the per-character glyph array from a glyph source.
type shaper struct {
	doc *document.Document
	src glyph.Source
}

// reshapeBounds widens an edited range to what must be shaped again:
// whole grapheme clusters, and whole paragraphs when the source shapes
// with context.
func (s *shaper) reshapeBounds(start, end int) (int, int) {
	text := s.doc.Runes()
	start, end = graphemeBounds(text, start, end)
	if glyph.IsContextSensitive(s.src) {
		start = s.doc.ParagraphStart(start)
		if end > start {
			end = s.doc.ParagraphEnd(end - 1)
		}
	}
	return start, end
}

// shape recomputes cells[start:end] and the owner runs over the same range.
// Text is shaped in pieces that never cross a font, element or paragraph
// boundary.
func (s *shaper) shape(cells []glyph.Glyph, owners *runlist.RunList[glyph.OwnerID], start, end int) {
	if start >= end {
		return
	}
	text := s.doc.Runes()
	spans := runlist.Zip(fontRuns(s.doc), s.doc.ElementRuns(),
		func(f glyph.Font, el *document.Element) shapeSpan {
			return shapeSpan{font: f, element: el}
		})

	for r := range spans.Ranges(start, end) {
		if el := r.Value.element; el != nil {
			for i := r.Start; i < r.End; i++ {
				cells[i] = glyph.Glyph{Advance: el.Advance, Ascent: el.Ascent, Descent: el.Descent}
			}
			continue
		}
		for i := r.Start; i < r.End; {
			j := chunkEnd(text, i, r.End)
			s.fill(cells[i:j], text[i:j], r.Value.font)
			i = j
		}
	}

	for i := start; i < end; {
		j := i + 1
		for j < end && cells[j].Owner == cells[i].Owner {
			j++
		}
		owners.SetRun(i, j, cells[i].Owner)
		i = j
	}
}

// fill shapes text into dst. A source returning the wrong number of glyphs
// is padded or truncated.
func (s *shaper) fill(dst []glyph.Glyph, text []rune, f glyph.Font) {
	glyphs := s.src.Glyphs(text, f)
	if len(glyphs) == len(text) {
		copy(dst, glyphs)
		return
	}

	textflow.Logger().Warn("layout: glyph source returned wrong glyph count",
		"font", f.String(), "runes", len(text), "glyphs", len(glyphs))
	m := s.src.Metrics(f)
	pad := glyph.Glyph{Ascent: m.Ascent, Descent: m.Descent}
	if len(glyphs) > 0 {
		pad.Owner = glyphs[0].Owner
	}
	for i := range dst {
		if i < len(glyphs) {
			dst[i] = glyphs[i]
		} else {
			dst[i] = pad
		}
	}
}

// chunkEnd returns the end of the shaping chunk starting at i: just past the
// next paragraph break, or end.
func chunkEnd(text []rune, i, end int) int {
	for j := i; j < end; j++ {
		if document.IsParagraphBreak(text[j]) {
			return j + 1
		}
	}
	return end
}
