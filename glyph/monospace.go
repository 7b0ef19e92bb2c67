package glyph

import (
	"unicode"

	"golang.org/x/text/width"
)

// Monospace is a Source where every visible character occupies one cell
// (two for East Asian wide characters). It needs no font files and its
// output depends only on the font size, which makes layouts reproducible.
type Monospace struct {
	cfg    monospaceConfig
	owners ownerTable
}

// NewMonospace creates a fixed-cell source.
func NewMonospace(opts ...MonospaceOption) *Monospace {
	cfg := defaultMonospaceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Monospace{cfg: cfg}
}

// Glyphs implements Source.
func (m *Monospace) Glyphs(text []rune, f Font) []Glyph {
	owner := m.owners.owner(f)
	met := m.Metrics(f)
	cell := f.Size * m.cfg.cell

	out := make([]Glyph, len(text))
	for i, r := range text {
		adv := float64(cells(r)) * cell
		g := Glyph{
			Advance: adv,
			Ascent:  met.Ascent,
			Descent: met.Descent,
			Owner:   owner,
			ID:      uint32(r),
		}
		if adv > 0 && !unicode.IsSpace(r) {
			g.Bounds = Rect{X0: 0, Y0: -met.Ascent, X1: adv, Y1: met.Descent}
		}
		out[i] = g
	}
	return out
}

// Metrics implements Source.
func (m *Monospace) Metrics(f Font) Metrics {
	return Metrics{
		Ascent:  f.Size * m.cfg.ascent,
		Descent: f.Size * m.cfg.descent,
	}
}

// cells returns the number of cells r occupies.
func cells(r rune) int {
	switch {
	case r == '\t':
		return 1
	case r == '\u200b', r == '\u2028', r == '\u2029':
		return 0
	case unicode.IsControl(r):
		return 0
	case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
