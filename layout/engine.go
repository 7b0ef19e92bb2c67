package layout

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/textflow"
	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
	"github.com/gogpu/textflow/runlist"
)

// UpdateStats describes the work done by the most recent update pass.
type UpdateStats struct {
	// Shaped is the number of characters whose glyphs were recomputed.
	Shaped int

	// Flowed is the number of lines produced by line breaking.
	Flowed int

	// Moved is the number of lines whose vertical position was recomputed.
	Moved int

	// Placed and Released count lines whose boxes gained or lost geometry.
	Placed   int
	Released int
}

// Engine keeps the layout of a document up to date as it is edited.
//
// Each edit marks ranges invalid; an update pass then reshapes the affected
// characters, reflows the affected lines, repositions the lines that moved
// and recreates geometry for the visible lines that changed. Work outside
// the visible window is limited to line metadata.
//
// Engine is not safe for concurrent use. It observes the document through
// document.Listener and updates synchronously inside each mutating call.
type Engine struct {
	doc    *document.Document
	src    glyph.Source
	opts   options
	shaper shaper

	cells  []glyph.Glyph
	owners *runlist.RunList[glyph.OwnerID]
	lines  []Line

	// Character ranges.
	invalidGlyphs InvalidRange
	invalidFlow   InvalidRange
	invalidStyle  InvalidRange

	// Line index ranges.
	invalidLines  InvalidRange
	invalidVertex InvalidRange

	// flowDirty forces a reflow when the invalid text range is empty, as
	// after deleting all text.
	flowDirty bool

	visibleStart, visibleEnd int
	scroll                   float64
	contentWidth             float64
	contentHeight            float64

	selStart, selEnd int

	updateDepth int
	stats       UpdateStats
	closed      bool
}

var _ document.Listener = (*Engine)(nil)

// New lays out doc with glyphs from src and subscribes to its changes.
// Call Close to unsubscribe.
func New(doc *document.Document, src glyph.Source, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := doc.Len()
	e := &Engine{
		doc:    doc,
		src:    src,
		opts:   o,
		shaper: shaper{doc: doc, src: src},
		cells:  make([]glyph.Glyph, n),
		owners: runlist.New[glyph.OwnerID](n, 0),
	}
	e.invalidGlyphs.Invalidate(0, n)
	e.invalidFlow.Invalidate(0, n)
	e.flowDirty = true

	doc.AddListener(e)
	e.update()
	return e
}

// Document returns the document being laid out.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// Close unsubscribes from the document and releases all geometry.
// The engine must not be used afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.doc.RemoveListener(e)
	for i := e.visibleStart; i < e.visibleEnd; i++ {
		e.releaseLine(i)
	}
	e.visibleStart, e.visibleEnd = 0, 0
}

// BeginUpdate defers update passes until the matching EndUpdate. Calls
// nest.
func (e *Engine) BeginUpdate() {
	e.updateDepth++
}

// EndUpdate ends a batch started with BeginUpdate and runs one update pass
// for all edits made since.
func (e *Engine) EndUpdate() {
	if e.updateDepth == 0 {
		panic("layout: EndUpdate without BeginUpdate")
	}
	e.updateDepth--
	e.update()
}

// LastUpdate returns statistics for the most recent update pass.
func (e *Engine) LastUpdate() UpdateStats {
	return e.stats
}

// SetSize changes the viewport. A width change reflows every line; a
// height change only updates the visible window.
func (e *Engine) SetSize(width, height float64) {
	width, height = max(width, 0), max(height, 0)
	if width == e.opts.width && height == e.opts.height {
		return
	}
	if width != e.opts.width {
		e.opts.width = width
		e.invalidFlow.Invalidate(0, len(e.cells))
		e.flowDirty = true
	}
	e.opts.height = height
	e.update()
}

// Size returns the viewport size.
func (e *Engine) Size() (width, height float64) {
	return e.opts.width, e.opts.height
}

// SetScroll sets the y offset of the viewport top, clamped to the content.
func (e *Engine) SetScroll(y float64) {
	y = min(max(y, 0), max(e.contentHeight-e.opts.height, 0))
	if y == e.scroll {
		return
	}
	e.scroll = y
	e.update()
}

// Scroll returns the y offset of the viewport top.
func (e *Engine) Scroll() float64 {
	return e.scroll
}

// OnInsertText implements document.Listener.
func (e *Engine) OnInsertText(start int, text string) {
	n := utf8.RuneCountInString(text)
	e.cells = slices.Insert(e.cells, start, make([]glyph.Glyph, n)...)
	e.owners.Insert(start, n)

	e.invalidGlyphs.Insert(start, n)
	e.invalidFlow.Insert(start, n)
	e.invalidStyle.Insert(start, n)

	for i := range e.lines {
		if e.lines[i].Start > start {
			e.lines[i].Start += n
		}
	}

	switch {
	case !e.opts.multiline:
		if start == 0 {
			e.invalidFlow.Invalidate(0, len(e.cells))
		}
	case strings.ContainsFunc(text, document.IsParagraphBreak):
		e.invalidateParagraph(start, start+n)
	case e.doc.ParagraphStart(start) == start:
		e.invalidateParagraph(start, start)
	}

	if e.selStart >= start {
		e.selStart += n
	}
	if e.selEnd > start {
		e.selEnd += n
	}
	e.selEnd = max(e.selEnd, e.selStart)

	e.update()
}

// OnDeleteText implements document.Listener.
func (e *Engine) OnDeleteText(start, end int) {
	size := end - start
	e.cells = slices.Delete(e.cells, start, end)
	e.owners.Delete(start, end)

	e.invalidGlyphs.Delete(start, end)
	e.invalidFlow.Delete(start, end)
	e.invalidStyle.Delete(start, end)

	// A paragraph beginning inside the deleted range means a break was
	// removed.
	joined := false
	for i := range e.lines {
		l := &e.lines[i]
		if l.Start > start {
			if l.Start <= end && l.ParagraphBegin {
				joined = true
			}
			l.Start = max(l.Start-size, start)
		}
	}

	shift := func(p int) int {
		switch {
		case p >= end:
			return p - size
		case p > start:
			return start
		}
		return p
	}
	e.selStart, e.selEnd = shift(e.selStart), shift(e.selEnd)

	// Clusters may merge across the join.
	n := len(e.cells)
	e.invalidGlyphs.Invalidate(max(start-1, 0), min(start+1, n))
	if start > 0 {
		e.invalidFlow.Invalidate(start-1, start)
	} else if n > 0 {
		e.invalidFlow.Invalidate(0, 1)
	} else {
		e.flowDirty = true
	}

	switch {
	case n == 0:
	case !e.opts.multiline:
		if start == 0 {
			e.invalidFlow.Invalidate(0, n)
		}
	case joined || e.doc.ParagraphStart(start) == start:
		e.invalidateParagraph(max(start-1, 0), start)
	}

	e.update()
}

// invalidateParagraph marks [from, end of the paragraph containing pos) for
// reflow, leaving out the paragraph's own break. Used when an edit may
// change the wrap mode, which is read at the first character of a
// paragraph.
func (e *Engine) invalidateParagraph(from, pos int) {
	if pos >= len(e.cells) {
		return
	}
	end := e.doc.ParagraphEnd(pos)
	if end > pos && document.IsParagraphBreak(e.doc.RuneAt(end-1)) {
		end--
	}
	e.invalidFlow.Invalidate(from, end)
}

// OnStyleText implements document.Listener.
func (e *Engine) OnStyleText(start, end int, attrs document.Attrs) {
	for attr := range attrs {
		switch attr {
		case document.AttrFontName, document.AttrFontSize, document.AttrBold, document.AttrItalic:
			e.invalidGlyphs.Invalidate(start, end)
		case document.AttrColor, document.AttrBackgroundColor, document.AttrUnderline, document.AttrBaseline:
			e.invalidStyle.Invalidate(start, end)
		case document.AttrWrap:
			// Wrap mode is read at the start of the paragraph.
			if e.opts.multiline {
				e.invalidFlow.Invalidate(e.doc.ParagraphStart(start), e.doc.ParagraphEnd(max(start, end-1)))
			} else {
				e.invalidFlow.Invalidate(0, len(e.cells))
			}
		default:
			e.invalidFlow.Invalidate(start, end)
		}
	}
	e.update()
}

func (e *Engine) update() {
	if e.updateDepth > 0 || e.closed {
		return
	}
	e.stats = UpdateStats{}
	e.updateGlyphs()
	e.updateFlow()
	e.updateVertical()
	e.updateVisible()
	e.updateGeometry()

	textflow.Logger().Debug("layout: update",
		"shaped", e.stats.Shaped,
		"flowed", e.stats.Flowed,
		"moved", e.stats.Moved,
		"visible_start", e.visibleStart,
		"visible_end", e.visibleEnd,
		"placed", e.stats.Placed,
		"released", e.stats.Released)
}

func (e *Engine) updateGlyphs() {
	if !e.invalidGlyphs.IsInvalid() {
		return
	}
	start, end := e.invalidGlyphs.Validate()
	end = min(end, len(e.cells))
	start = min(start, end)

	start, end = e.shaper.reshapeBounds(start, end)
	e.shaper.shape(e.cells, e.owners, start, end)
	e.invalidFlow.Invalidate(start, end)
	e.stats.Shaped = end - start
}

func (e *Engine) flower() *flower {
	return &flower{doc: e.doc, src: e.src, cells: e.cells, owners: e.owners, opts: &e.opts}
}

// updateFlow rebreaks lines from the line before the first invalid one
// until the new lines realign with old ones past the invalid range.
func (e *Engine) updateFlow() {
	if !e.invalidFlow.IsInvalid() && !e.flowDirty && len(e.lines) > 0 {
		return
	}
	invStart, invEnd := e.invalidFlow.Validate()
	e.flowDirty = false
	invEnd = min(invEnd, len(e.cells))
	invStart = min(invStart, invEnd)

	li := 0
	if len(e.lines) > 0 {
		li = max(e.lineAt(invStart)-1, 0)
		// Deletions collapse the starts of removed lines onto one position.
		for li > 0 && e.lines[li-1].Start >= e.lines[li].Start {
			li--
		}
	}
	start := 0
	if li < len(e.lines) {
		start = e.lines[li].Start
	}

	var fresh []Line
	k := li
	realigned := false
	for l := range e.flower().lines(start) {
		fresh = append(fresh, l)
		next := l.End()
		for k < len(e.lines) && e.lines[k].Start < next {
			k++
		}
		if k < len(e.lines) && e.lines[k].Start == next && next > invEnd {
			realigned = true
			break
		}
	}
	if !realigned {
		k = len(e.lines)
	}

	rescan := false
	for i := li; i < k; i++ {
		if i >= e.visibleStart && i < e.visibleEnd {
			e.releaseLine(i)
		}
		if lineExtent(&e.lines[i]) >= e.contentWidth {
			rescan = true
		}
	}
	e.lines = slices.Replace(e.lines, li, k, fresh...)

	e.invalidLines.Delete(li, k)
	e.invalidLines.Insert(li, len(fresh))
	e.invalidVertex.Delete(li, k)
	e.invalidVertex.Insert(li, len(fresh))

	remap := func(p, inside int) int {
		switch {
		case p < li:
			return p
		case p >= k:
			return p + len(fresh) - (k - li)
		}
		return inside
	}
	e.visibleStart = remap(e.visibleStart, li)
	e.visibleEnd = max(remap(e.visibleEnd, li+len(fresh)), e.visibleStart)

	if rescan {
		e.contentWidth = 0
		for i := range e.lines {
			e.contentWidth = max(e.contentWidth, lineExtent(&e.lines[i]))
		}
	} else {
		for i := range fresh {
			e.contentWidth = max(e.contentWidth, lineExtent(&fresh[i]))
		}
	}
	e.stats.Flowed = len(fresh)
}

// lineExtent is the horizontal space a line needs.
func lineExtent(l *Line) float64 {
	return l.Width + l.MarginLeft
}

func (e *Engine) updateVertical() {
	if !e.invalidLines.IsInvalid() {
		return
	}
	start, end := e.invalidLines.Validate()
	end = min(end, len(e.lines))
	start = min(start, end)

	stop := newVFlow(e.doc, e.opts.width).flow(e.lines, start, end)
	e.invalidVertex.Invalidate(start, stop)
	e.contentHeight = contentHeight(e.lines)
	e.stats.Moved = stop - start
}

// visibleRange returns the lines intersecting the viewport.
func (e *Engine) visibleRange() (int, int) {
	top, bottom := e.scroll, e.scroll+e.opts.height
	start := sort.Search(len(e.lines), func(i int) bool {
		return e.lines[i].Bottom() > top
	})
	end := sort.Search(len(e.lines), func(i int) bool {
		return e.lines[i].Top() >= bottom
	})
	return start, max(end, start)
}

func (e *Engine) updateVisible() {
	// Content or viewport height may have shrunk since the last scroll.
	e.scroll = min(e.scroll, max(e.contentHeight-e.opts.height, 0))
	start, end := e.visibleRange()
	oldStart, oldEnd := e.visibleStart, min(e.visibleEnd, len(e.lines))

	for i := oldStart; i < oldEnd; i++ {
		if i < start || i >= end {
			e.releaseLine(i)
		}
	}
	if oldStart >= oldEnd {
		e.invalidVertex.Invalidate(start, end)
	} else {
		e.invalidVertex.Invalidate(start, min(end, oldStart))
		e.invalidVertex.Invalidate(max(start, oldEnd), end)
	}
	e.visibleStart, e.visibleEnd = start, end
}

// updateGeometry recreates the boxes of visible lines touched by style or
// position changes.
func (e *Engine) updateGeometry() {
	var dirty InvalidRange
	if e.invalidStyle.IsInvalid() {
		start, end := e.invalidStyle.Validate()
		end = min(end, len(e.cells))
		start = min(start, end)
		if start < end {
			dirty.Invalidate(e.lineAt(start), e.lineAt(end-1)+1)
		}
	}
	if e.invalidVertex.IsInvalid() {
		dirty.Invalidate(e.invalidVertex.Validate())
	}

	start, end := dirty.Validate()
	start, end = max(start, e.visibleStart), min(end, e.visibleEnd)
	if start >= end {
		return
	}
	st := newStyleIters(e.doc, &e.opts, e.selStart, e.selEnd)
	for i := start; i < end; i++ {
		e.releaseLine(i)
		e.placeLine(st, i)
	}
}

func (e *Engine) placeLine(st *styleIters, i int) {
	placeBoxes(&e.lines[i], st, func(b *Box) {
		e.opts.backend.Place(i, b)
	})
	e.stats.Placed++
}

func (e *Engine) releaseLine(i int) {
	if i < 0 || i >= len(e.lines) {
		return
	}
	released := false
	for j := range e.lines[i].Boxes {
		b := &e.lines[i].Boxes[j]
		if !b.placed {
			continue
		}
		e.opts.backend.Release(i, b)
		b.release()
		released = true
	}
	if released {
		e.stats.Released++
	}
}

// placeBoxes computes geometry for every box of l and reports each box to
// placed.
func placeBoxes(l *Line, st *styleIters, placed func(*Box)) {
	x, pos := l.X, l.Start
	for j := range l.Boxes {
		b := &l.Boxes[j]
		b.place(st, x, l.Y, pos)
		placed(b)
		x += b.Advance
		pos += b.Len()
	}
}

// lineAt returns the index of the last line starting at or before pos.
func (e *Engine) lineAt(pos int) int {
	i := sort.Search(len(e.lines), func(i int) bool {
		return e.lines[i].Start > pos
	})
	return max(i-1, 0)
}
