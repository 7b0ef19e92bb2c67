package layout

import (
	"iter"
	"math"

	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
	"github.com/gogpu/textflow/runlist"
)

// flowIters are the style iterators read by one line flow pass.
type flowIters struct {
	font        runlist.Iterator[glyph.Font]
	element     runlist.Iterator[*document.Element]
	align       runlist.Iterator[document.Align]
	wrap        runlist.Iterator[document.WrapMode]
	marginLeft  runlist.Iterator[float64]
	marginRight runlist.Iterator[float64]
	indent      runlist.Iterator[float64]
	kerning     runlist.Iterator[float64]
	tabs        runlist.Iterator[document.TabStops]
}

// flower breaks shaped text into lines.
type flower struct {
	doc    *document.Document
	src    glyph.Source
	cells  []glyph.Glyph
	owners *runlist.RunList[glyph.OwnerID]
	opts   *options
}

func nonNegative(v float64) bool { return v >= 0 }

func (f *flower) iterators() *flowIters {
	it := &flowIters{
		font:        fontRuns(f.doc),
		element:     f.doc.ElementRuns(),
		align:       document.StyleRuns[document.Align](f.doc, document.AttrAlign),
		marginLeft:  runlist.Filter(document.StyleRuns[float64](f.doc, document.AttrMarginLeft), nonNegative, 0),
		marginRight: runlist.Filter(document.StyleRuns[float64](f.doc, document.AttrMarginRight), nonNegative, 0),
		indent:      document.StyleRuns[float64](f.doc, document.AttrIndent),
		kerning:     document.StyleRuns[float64](f.doc, document.AttrKerning),
		tabs:        document.StyleRuns[document.TabStops](f.doc, document.AttrTabStops),
	}
	if f.opts.wrapLines {
		it.wrap = document.StyleRuns[document.WrapMode](f.doc, document.AttrWrap)
	} else {
		it.wrap = runlist.Const(document.WrapNone)
	}
	return it
}

func (f *flower) newLine(it *flowIters, start int) Line {
	return Line{
		Start:       start,
		Align:       it.align.At(start),
		MarginLeft:  it.marginLeft.At(start),
		MarginRight: it.marginRight.At(start),
	}
}

func (f *flower) available(l *Line) float64 {
	return f.opts.width - l.MarginLeft - l.MarginRight
}

// tabKern returns the kerning that moves a tab at pen position x to the next
// tab stop.
func (f *flower) tabKern(stops document.TabStops, x, marginLeft, advance float64) float64 {
	pos := x + marginLeft
	stop, ok := stops.Next(pos)
	if !ok {
		stop = (math.Floor(pos/f.opts.tabWidth) + 1) * f.opts.tabWidth
	}
	return stop - x - marginLeft - advance
}

func isBreakingSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u200b'
}

// lines yields the lines of the document from start, which must be the start
// of a line in a full flow (or 0). The sequence ends with the last line of
// the document; callers stop early once the flow realigns with known lines.
//
// Glyphs of a word that does not fit are carried to the next line. Glyphs
// are only split mid-word in WrapChar mode or at forced breaks. A single
// word wider than the line stays whole.
func (f *flower) lines(start int) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		text := f.doc.Runes()
		end := len(text)
		it := f.iterators()
		multiline := f.opts.multiline

		para := 0
		if multiline {
			para = f.doc.ParagraphStart(start)
		}
		wrap := it.wrap.At(para)

		line := f.newLine(it, start)
		if start == 0 || (multiline && document.IsParagraphBreak(text[start-1])) {
			line.ParagraphBegin = true
			line.MarginLeft += it.indent.At(start)
		}
		width := f.available(&line)

		var (
			x            float64
			pending      []Box // finished boxes of the uncommitted word
			pendingWidth float64
			eolSpace     float64 // trailing whitespace, excluded from line width
			nextStart    = start
			font         glyph.Font
			seenFont     bool
		)

		for run := range f.owners.Iterator().Ranges(start, end) {
			font = it.font.At(run.Start)
			seenFont = true

			var (
				accum       []PlacedGlyph // glyphs of the current word
				accumWidth  float64
				commit      []PlacedGlyph // glyphs safe to put on the line
				commitWidth float64
			)
			nokern := true

			for index := run.Start; index < run.End; index++ {
				ch := text[index]
				g := f.cells[index]
				el := it.element.At(index)

				kern := 0.0
				if nokern {
					nokern = false
				} else if el == nil {
					kern = it.kerning.At(index) + g.Kern
				}

				if wrap != document.WrapChar && el == nil && isBreakingSpace(ch) {
					if len(accum) > 0 || len(pending) > 0 {
						eolSpace = 0
					}
					line.addBoxes(pending)
					pending, pendingWidth = nil, 0

					if ch == '\t' {
						kern = f.tabKern(it.tabs.At(index), x, line.MarginLeft, g.Advance)
					}
					commit = append(commit, accum...)
					commit = append(commit, PlacedGlyph{Kern: kern, Glyph: g})
					commitWidth += accumWidth + g.Advance + kern
					accum, accumWidth = nil, 0

					x += g.Advance + kern
					eolSpace += g.Advance + kern
					nextStart = index + 1
					continue
				}

				newParagraph := multiline && document.IsParagraphBreak(ch)
				newLine := newParagraph || (multiline && ch == document.LineSeparator)

				if (wrap != document.WrapNone && x+kern+g.Advance >= width) || newLine {
					if newLine || wrap == document.WrapChar {
						if len(accum) > 0 || len(pending) > 0 {
							eolSpace = 0
						}
						line.addBoxes(pending)
						pending, pendingWidth = nil, 0
						commit = append(commit, accum...)
						commitWidth += accumWidth
						accum, accumWidth = nil, 0
						nextStart = index
						if newLine {
							nextStart++
						}
					}
					if len(commit) > 0 {
						line.addBox(newGlyphBox(run.Value, commit, commitWidth))
						commit, commitWidth = nil, 0
					}
					if newLine && len(line.Boxes) == 0 {
						m := f.src.Metrics(font)
						line.Ascent, line.Descent = m.Ascent, m.Descent
					}

					if len(line.Boxes) > 0 || newLine {
						line.Width -= eolSpace
						line.Length = nextStart - line.Start
						line.ParagraphEnd = newParagraph
						if !yield(line) {
							return
						}

						line = f.newLine(it, nextStart)
						line.ParagraphBegin = newParagraph
						eolSpace = 0
						width = f.available(&line)

						// The first glyph of a line is never kerned against
						// the previous line.
						switch {
						case len(pending) > 0:
							pendingWidth -= pending[0].dropLeadingKern()
						case len(accum) > 0:
							accumWidth -= accum[0].Kern
							accum[0].Kern = 0
						case newLine:
							nokern = true
						default:
							kern = 0
						}
						x = pendingWidth + accumWidth
					}
				}

				switch {
				case el != nil:
					pending = append(pending, newElementBox(el))
					pendingWidth += el.Advance
					x += el.Advance
				case newParagraph:
					wrap = it.wrap.At(nextStart)
					line.MarginLeft += it.indent.At(nextStart)
					width = f.available(&line)
				case !newLine:
					accum = append(accum, PlacedGlyph{Kern: kern, Glyph: g})
					accumWidth += g.Advance + kern
					x += g.Advance + kern
				}
			}

			if len(commit) > 0 {
				line.addBox(newGlyphBox(run.Value, commit, commitWidth))
			}
			if len(accum) > 0 {
				pending = append(pending, newGlyphBox(run.Value, accum, accumWidth))
				pendingWidth += accumWidth
			}
		}

		if len(pending) > 0 {
			eolSpace = 0
		}
		line.addBoxes(pending)
		if len(line.Boxes) == 0 {
			if !seenFont {
				font = it.font.At(max(end-1, 0))
			}
			m := f.src.Metrics(font)
			line.Ascent, line.Descent = m.Ascent, m.Descent
		}
		line.Width -= eolSpace
		line.Length = end - line.Start
		yield(line)
	}
}
