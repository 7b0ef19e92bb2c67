// Package runlist implements run-length encoded sequences of values over
// character positions.
//
// A RunList covers the positions [0, N) of a text buffer. Each run holds a
// value and the number of consecutive positions sharing it. The list is kept
// in canonical form: no two adjacent runs ever hold equal values, so the
// number of runs is proportional to the number of style changes rather than
// to the length of the text.
//
// Values are read through an Iterator. Iterators are forward-only cursors:
// every index passed to At, and every window passed to Ranges, must not move
// backwards. Violating this panics.
package runlist

import (
	"fmt"
	"strings"
)

// run is a value shared by count consecutive positions.
type run[T comparable] struct {
	value T
	count int
}

// RunList is a run-length encoded sequence of values.
//
// The zero value is not usable; create lists with New.
// RunList is not safe for concurrent use.
type RunList[T comparable] struct {
	runs []run[T]
	size int
}

// New creates a RunList of the given size where every position holds initial.
// A list of size 0 holds a single empty run so that index 0 can always be
// queried.
func New[T comparable](size int, initial T) *RunList[T] {
	if size < 0 {
		panic(fmt.Sprintf("runlist: negative size %d", size))
	}
	return &RunList[T]{
		runs: []run[T]{{value: initial, count: size}},
		size: size,
	}
}

// Len returns the number of positions covered by the list.
func (l *RunList[T]) Len() int {
	return l.size
}

// NumRuns returns the number of runs in the list.
func (l *RunList[T]) NumRuns() int {
	return len(l.runs)
}

// Insert grows the list by length positions at pos.
//
// The new positions take the value of the run that ends at or covers pos, so
// text typed at the end of a styled run continues that style. Inserting at 0
// extends the first run.
func (l *RunList[T]) Insert(pos, length int) {
	l.checkIndex(pos)
	if length < 0 {
		panic(fmt.Sprintf("runlist: negative insert length %d", length))
	}
	if length == 0 {
		return
	}

	start := 0
	for i := range l.runs {
		end := start + l.runs[i].count
		if start <= pos && pos <= end {
			l.runs[i].count += length
			break
		}
		start = end
	}
	l.size += length
}

// Delete removes the positions [start, end).
//
// Runs left empty are dropped and neighbours with equal values are merged.
// Deleting every position leaves one empty run holding the value that was at
// position 0.
func (l *RunList[T]) Delete(start, end int) {
	l.checkRange(start, end)
	if start == end {
		return
	}

	first := l.runs[0].value
	out := l.runs[:0]
	pos := 0
	for _, r := range l.runs {
		rs, re := pos, pos+r.count
		pos = re
		if lo, hi := max(rs, start), min(re, end); hi > lo {
			r.count -= hi - lo
		}
		if r.count == 0 {
			continue
		}
		out = appendRun(out, r)
	}
	if len(out) == 0 {
		out = append(out, run[T]{value: first})
	}
	clear(l.runs[len(out):])
	l.runs = out
	l.size -= end - start
}

// SetRun sets the value of every position in [start, end).
//
// Runs straddling start or end are split, runs inside the range are replaced,
// and equal neighbours are merged so the list stays canonical.
func (l *RunList[T]) SetRun(start, end int, value T) {
	l.checkRange(start, end)
	if start == end {
		return
	}

	out := make([]run[T], 0, len(l.runs)+2)
	pos := 0
	for _, r := range l.runs {
		rs, re := pos, pos+r.count
		pos = re
		if re <= start || rs >= end {
			out = appendRun(out, r)
			continue
		}
		if rs < start {
			out = appendRun(out, run[T]{value: r.value, count: start - rs})
		}
		out = appendRun(out, run[T]{value: value, count: min(re, end) - max(rs, start)})
		if re > end {
			out = appendRun(out, run[T]{value: r.value, count: re - end})
		}
	}
	l.runs = out
}

// At returns the value at index. Index Len() is accepted and returns the value
// of the last run, which is the value inserted text at the end would take.
//
// At scans from the first run; use an Iterator for sequential access.
func (l *RunList[T]) At(index int) T {
	l.checkIndex(index)
	start := 0
	for _, r := range l.runs {
		if index < start+r.count {
			return r.value
		}
		start += r.count
	}
	return l.runs[len(l.runs)-1].value
}

// Runs returns a snapshot of every run as a Range.
func (l *RunList[T]) Runs() []Range[T] {
	out := make([]Range[T], 0, len(l.runs))
	pos := 0
	for _, r := range l.runs {
		out = append(out, Range[T]{Start: pos, End: pos + r.count, Value: r.value})
		pos += r.count
	}
	return out
}

// Iterator returns a forward-only cursor over the list.
// The list must not be mutated while the iterator is in use.
func (l *RunList[T]) Iterator() *RunIterator[T] {
	it := &RunIterator[T]{list: l}
	it.end = l.runs[0].count
	return it
}

// String returns the runs as "[value:count ...]".
func (l *RunList[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range l.runs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v:%d", r.value, r.count)
	}
	b.WriteByte(']')
	return b.String()
}

// appendRun appends r to runs, merging it into the last run when the values
// are equal.
func appendRun[T comparable](runs []run[T], r run[T]) []run[T] {
	if n := len(runs); n > 0 && runs[n-1].value == r.value {
		runs[n-1].count += r.count
		return runs
	}
	return append(runs, r)
}

func (l *RunList[T]) checkIndex(index int) {
	if index < 0 || index > l.size {
		panic(fmt.Sprintf("runlist: index %d out of range [0, %d]", index, l.size))
	}
}

func (l *RunList[T]) checkRange(start, end int) {
	if start < 0 || end > l.size || start > end {
		panic(fmt.Sprintf("runlist: range [%d, %d) out of bounds [0, %d]", start, end, l.size))
	}
}
