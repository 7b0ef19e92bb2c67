package layout

import "github.com/go-text/typesetting/segmenter"

// graphemeWindow is the initial context segmented around a range. It doubles
// until both ends of the range resolve to boundaries that do not depend on
// the window edges.
const graphemeWindow = 16

// graphemeBounds widens [start, end) to the nearest grapheme cluster
// boundaries of text.
func graphemeBounds(text []rune, start, end int) (int, int) {
	n := len(text)
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	if n == 0 {
		return 0, 0
	}
	for w := graphemeWindow; ; w *= 2 {
		lo, hi := max(start-w, 0), min(end+w, n)
		s, e, ok := boundariesIn(text, lo, hi, start, end)
		if ok || (lo == 0 && hi == n) {
			return max(s, 0), max(e, end)
		}
	}
}

// boundariesIn segments text[lo:hi] and returns the last boundary <= start
// and the first boundary >= end. The window edges only count as boundaries
// where they coincide with the ends of text.
func boundariesIn(text []rune, lo, hi, start, end int) (s, e int, ok bool) {
	var seg segmenter.Segmenter
	seg.Init(text[lo:hi])
	it := seg.GraphemeIterator()

	s, e = -1, -1
	for it.Next() {
		b := lo + it.Grapheme().Offset
		if b == lo && lo > 0 {
			continue
		}
		if b <= start {
			s = b
		}
		if b >= end && e < 0 {
			e = b
		}
	}
	if e < 0 && hi == len(text) {
		e = hi
	}
	return s, e, s >= 0 && e >= 0
}
