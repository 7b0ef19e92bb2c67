package layout

// InvalidRange is a half-open [start, end) interval of pending work. The zero
// value is valid and empty.
//
// Edits shift the range so it keeps covering the same content: Insert both
// moves it and marks the inserted span, Delete shrinks it.
type InvalidRange struct {
	start, end int
}

// IsInvalid reports whether any work is pending.
func (r *InvalidRange) IsInvalid() bool {
	return r.end > r.start
}

// Bounds returns the pending interval without clearing it.
func (r *InvalidRange) Bounds() (start, end int) {
	return r.start, r.end
}

// Invalidate extends the range to cover [start, end). Empty intervals are
// ignored.
func (r *InvalidRange) Invalidate(start, end int) {
	if end <= start {
		return
	}
	if !r.IsInvalid() {
		r.start, r.end = start, end
		return
	}
	r.start = min(r.start, start)
	r.end = max(r.end, end)
}

// Insert accounts for length positions inserted at pos and marks them
// invalid.
func (r *InvalidRange) Insert(pos, length int) {
	if r.IsInvalid() {
		if r.start >= pos {
			r.start += length
		}
		if r.end >= pos {
			r.end += length
		}
	}
	r.Invalidate(pos, pos+length)
}

// Delete accounts for [start, end) being removed.
func (r *InvalidRange) Delete(start, end int) {
	if !r.IsInvalid() || end <= start {
		return
	}
	size := end - start
	switch {
	case r.start >= end:
		r.start -= size
	case r.start > start:
		r.start = start
	}
	switch {
	case r.end >= end:
		r.end -= size
	case r.end > start:
		r.end = start
	}
	if r.end <= r.start {
		r.start, r.end = 0, 0
	}
}

// Validate returns the pending interval and clears it.
func (r *InvalidRange) Validate() (start, end int) {
	start, end = r.start, r.end
	r.start, r.end = 0, 0
	return start, end
}
