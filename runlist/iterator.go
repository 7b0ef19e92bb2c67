package runlist

import (
	"fmt"
	"iter"
)

// Range is a half-open span [Start, End) of positions sharing Value.
type Range[T any] struct {
	Start, End int
	Value      T
}

// Len returns the number of positions in the range.
func (r Range[T]) Len() int {
	return r.End - r.Start
}

// Iterator is a forward-only view over per-position values.
//
// At returns the value at index; successive calls must use non-decreasing
// indices. Ranges yields maximal spans over [start, end); successive windows
// must not reach back before the end of the previous one, and neither may a
// following At.
type Iterator[T any] interface {
	At(index int) T
	Ranges(start, end int) iter.Seq[Range[T]]
}

// RunIterator is the cursor returned by RunList.Iterator.
// Sequential access is amortised O(1) per run crossed.
type RunIterator[T comparable] struct {
	list       *RunList[T]
	i          int // current run
	start, end int // bounds of the current run
	floor      int // lowest index the next call may use
}

var _ Iterator[int] = (*RunIterator[int])(nil)

// At returns the value at index, advancing the cursor.
// It panics if index is behind the cursor or outside [0, Len()].
func (it *RunIterator[T]) At(index int) T {
	it.list.checkIndex(index)
	it.advance(index)
	it.seek(index)
	return it.list.runs[it.i].value
}

// Ranges yields the runs overlapping [start, end), clipped to the window.
func (it *RunIterator[T]) Ranges(start, end int) iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		if start >= end {
			return
		}
		it.list.checkRange(start, end)
		it.advance(start)
		it.floor = end
		it.seek(start)
		for {
			r := Range[T]{
				Start: max(it.start, start),
				End:   min(it.end, end),
				Value: it.list.runs[it.i].value,
			}
			if !yield(r) || it.end >= end {
				return
			}
			it.next()
		}
	}
}

// advance moves the floor to index, panicking if index is below it.
func (it *RunIterator[T]) advance(index int) {
	if index < it.floor {
		panic(fmt.Sprintf("runlist: non-monotonic access at %d, cursor at %d", index, it.floor))
	}
	it.floor = index
}

func (it *RunIterator[T]) seek(index int) {
	for index >= it.end && it.i < len(it.list.runs)-1 {
		it.next()
	}
	if index > it.end {
		panic(fmt.Sprintf("runlist: index %d out of range [0, %d]", index, it.list.size))
	}
}

func (it *RunIterator[T]) next() {
	it.i++
	it.start = it.end
	it.end += it.list.runs[it.i].count
}

// Override returns an iterator that reports value over [start, end) and
// defers to base elsewhere. Ranges are split at the override boundaries, so
// spans on either side are never merged with the override even when their
// values are equal.
func Override[T any](base Iterator[T], start, end int, value T) Iterator[T] {
	return &overrideIterator[T]{base: base, start: start, end: end, value: value}
}

type overrideIterator[T any] struct {
	base       Iterator[T]
	start, end int
	value      T
}

func (o *overrideIterator[T]) At(index int) T {
	if o.start <= index && index < o.end {
		return o.value
	}
	return o.base.At(index)
}

func (o *overrideIterator[T]) Ranges(start, end int) iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		if end <= o.start || start >= o.end || o.start >= o.end {
			for r := range o.base.Ranges(start, end) {
				if !yield(r) {
					return
				}
			}
			return
		}
		if start < o.start {
			for r := range o.base.Ranges(start, o.start) {
				if !yield(r) {
					return
				}
			}
		}
		if !yield(Range[T]{Start: max(o.start, start), End: min(o.end, end), Value: o.value}) {
			return
		}
		if o.end < end {
			for r := range o.base.Ranges(o.end, end) {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// Filter returns an iterator reporting base's value where keep accepts it and
// fallback everywhere else.
func Filter[T any](base Iterator[T], keep func(T) bool, fallback T) Iterator[T] {
	return &filterIterator[T]{base: base, keep: keep, fallback: fallback}
}

type filterIterator[T any] struct {
	base     Iterator[T]
	keep     func(T) bool
	fallback T
}

func (f *filterIterator[T]) At(index int) T {
	return f.filter(f.base.At(index))
}

func (f *filterIterator[T]) Ranges(start, end int) iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		for r := range f.base.Ranges(start, end) {
			r.Value = f.filter(r.Value)
			if !yield(r) {
				return
			}
		}
	}
}

func (f *filterIterator[T]) filter(v T) T {
	if f.keep(v) {
		return v
	}
	return f.fallback
}

// Const returns an iterator reporting value at every position.
func Const[T any](value T) Iterator[T] {
	return constIterator[T]{value: value}
}

type constIterator[T any] struct {
	value T
}

func (c constIterator[T]) At(int) T {
	return c.value
}

func (c constIterator[T]) Ranges(start, end int) iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		if start < end {
			yield(Range[T]{Start: start, End: end, Value: c.value})
		}
	}
}

// Zip returns an iterator whose value at each position is combine applied to
// the values of a and b. Its ranges break wherever either input breaks.
func Zip[A, B, R any](a Iterator[A], b Iterator[B], combine func(A, B) R) Iterator[R] {
	return &zipIterator[A, B, R]{a: a, b: b, combine: combine}
}

type zipIterator[A, B, R any] struct {
	a       Iterator[A]
	b       Iterator[B]
	combine func(A, B) R
}

func (z *zipIterator[A, B, R]) At(index int) R {
	return z.combine(z.a.At(index), z.b.At(index))
}

func (z *zipIterator[A, B, R]) Ranges(start, end int) iter.Seq[Range[R]] {
	return func(yield func(Range[R]) bool) {
		if start >= end {
			return
		}
		nextA, stopA := iter.Pull(z.a.Ranges(start, end))
		defer stopA()
		nextB, stopB := iter.Pull(z.b.Ranges(start, end))
		defer stopB()

		ra, okA := nextA()
		rb, okB := nextB()
		pos := start
		for okA && okB {
			e := min(ra.End, rb.End)
			if !yield(Range[R]{Start: pos, End: e, Value: z.combine(ra.Value, rb.Value)}) {
				return
			}
			pos = e
			if ra.End == e {
				ra, okA = nextA()
			}
			if rb.End == e {
				rb, okB = nextB()
			}
		}
	}
}
