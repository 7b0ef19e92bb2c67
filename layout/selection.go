package layout

// SetSelection highlights [start, end) with the selection colors. The range
// is clamped to the document; an empty range clears the selection.
//
// Only the characters whose highlight changes are restyled. Selection never
// affects line breaking.
func (e *Engine) SetSelection(start, end int) {
	n := len(e.cells)
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	if start == end {
		start, end = 0, 0
	}
	if start == e.selStart && end == e.selEnd {
		return
	}

	oldStart, oldEnd := e.selStart, e.selEnd
	if start >= oldEnd || end <= oldStart {
		e.invalidStyle.Invalidate(oldStart, oldEnd)
		e.invalidStyle.Invalidate(start, end)
	} else {
		e.invalidStyle.Invalidate(min(start, oldStart), max(start, oldStart))
		e.invalidStyle.Invalidate(min(end, oldEnd), max(end, oldEnd))
	}
	e.selStart, e.selEnd = start, end
	e.update()
}

// Selection returns the selected range. Start equals end when nothing is
// selected.
func (e *Engine) Selection() (start, end int) {
	return e.selStart, e.selEnd
}
