package layout

import (
	"iter"
	"sort"
)

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return len(e.lines)
}

// Line returns line i. The returned Boxes share storage with the engine and
// are only valid until the next edit.
func (e *Engine) Line(i int) Line {
	return e.lines[i]
}

// Lines iterates over all lines in order.
func (e *Engine) Lines() iter.Seq2[int, Line] {
	return e.lineRange(0, len(e.lines))
}

// VisibleLines iterates over the lines intersecting the viewport.
func (e *Engine) VisibleLines() iter.Seq2[int, Line] {
	return e.lineRange(e.visibleStart, e.visibleEnd)
}

// VisibleRange returns the indices [start, end) of the visible lines.
func (e *Engine) VisibleRange() (start, end int) {
	return e.visibleStart, e.visibleEnd
}

func (e *Engine) lineRange(start, end int) iter.Seq2[int, Line] {
	return func(yield func(int, Line) bool) {
		for i := start; i < end && i < len(e.lines); i++ {
			if !yield(i, e.lines[i]) {
				return
			}
		}
	}
}

// ContentWidth returns the width of the widest line including its left
// margin.
func (e *Engine) ContentWidth() float64 {
	return e.contentWidth
}

// ContentHeight returns the distance from the top of the first line to the
// bottom of the last.
func (e *Engine) ContentHeight() float64 {
	return e.contentHeight
}

// LineFromPosition returns the index of the line containing the character
// at pos. Positions past the end map to the last line.
func (e *Engine) LineFromPosition(pos int) int {
	return e.lineAt(pos)
}

// LineFromY returns the index of the line at vertical position y. Points
// above the content map to the first line, points below to the last.
func (e *Engine) LineFromY(y float64) int {
	i := sort.Search(len(e.lines), func(i int) bool {
		return y < e.lines[i].Bottom()
	})
	return min(i, len(e.lines)-1)
}

// PointFromPosition returns the baseline point of the caret before the
// character at pos.
func (e *Engine) PointFromPosition(pos int) (x, y float64) {
	l := &e.lines[e.lineAt(pos)]
	return l.X + caretOffset(l, pos), l.Y
}

// PositionOnLine returns the caret position on line i closest to x.
func (e *Engine) PositionOnLine(i int, x float64) int {
	return positionOnLine(&e.lines[i], x)
}

// PositionFromPoint returns the caret position closest to (x, y).
func (e *Engine) PositionFromPoint(x, y float64) int {
	return e.PositionOnLine(e.LineFromY(y), x)
}

// caretOffset returns the distance from the line origin to the caret before
// pos.
func caretOffset(l *Line, pos int) float64 {
	x, p := 0.0, l.Start
	for j := range l.Boxes {
		b := &l.Boxes[j]
		if pos < p+b.Len() {
			return x + b.offset(pos-p)
		}
		x += b.Advance
		p += b.Len()
	}
	return x
}

func positionOnLine(l *Line, x float64) int {
	x -= l.X
	p := l.Start
	for j := range l.Boxes {
		b := &l.Boxes[j]
		if x < b.Advance {
			return p + b.position(x)
		}
		x -= b.Advance
		p += b.Len()
	}
	return p
}
