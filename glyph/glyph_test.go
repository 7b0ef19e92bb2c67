package glyph

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestMonospaceGlyphs(t *testing.T) {
	m := NewMonospace(WithCellWidth(1))
	f := Font{Name: "mono", Size: 10}

	tests := []struct {
		r    rune
		want float64
	}{
		{'a', 10},
		{' ', 10},
		{'\t', 10},
		{'\n', 0},
		{'\u2028', 0},
		{'\u200b', 0},
		{'\u0301', 0}, // combining acute
		{'\u4e16', 20},
		{'\uff21', 20}, // fullwidth A
	}
	for _, tt := range tests {
		got := m.Glyphs([]rune{tt.r}, f)
		if len(got) != 1 {
			t.Fatalf("Glyphs(%U) returned %d glyphs", tt.r, len(got))
		}
		if got[0].Advance != tt.want {
			t.Errorf("advance of %U = %v, want %v", tt.r, got[0].Advance, tt.want)
		}
	}

	met := m.Metrics(f)
	if met.Ascent != 8 || met.Descent != 2 {
		t.Errorf("Metrics = %+v, want ascent 8 descent 2", met)
	}
	if met.Height() != 10 {
		t.Errorf("Height() = %v, want 10", met.Height())
	}
}

func TestMonospaceBounds(t *testing.T) {
	m := NewMonospace(WithCellWidth(1), WithExtents(0.75, 0.25))
	g := m.Glyphs([]rune("a "), Font{Size: 8})
	if g[0].Bounds != (Rect{X0: 0, Y0: -6, X1: 8, Y1: 2}) {
		t.Errorf("bounds of 'a' = %+v", g[0].Bounds)
	}
	if !g[1].Bounds.Empty() {
		t.Errorf("space has ink bounds %+v", g[1].Bounds)
	}
}

func TestOwnersPerFont(t *testing.T) {
	m := NewMonospace()
	a := m.Glyphs([]rune("x"), Font{Name: "A", Size: 10})[0].Owner
	b := m.Glyphs([]rune("x"), Font{Name: "A", Size: 10, Bold: true})[0].Owner
	a2 := m.Glyphs([]rune("y"), Font{Name: "A", Size: 10})[0].Owner
	if a == 0 || b == 0 {
		t.Fatal("owner 0 is reserved for elements")
	}
	if a == b {
		t.Error("bold and regular share an owner")
	}
	if a != a2 {
		t.Error("same font got different owners")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if !r.Has(DefaultFamily) {
		t.Error("default family not registered")
	}

	if err := r.Register("Mono", false, false, gomono.TTF); err != nil {
		t.Fatalf("Register: %v", err)
	}
	fc, err := r.lookup(Font{Name: "Mono", Bold: true})
	if err != nil || fc.family != "Mono" {
		t.Errorf("bold Mono falls back to %v, %v; want regular Mono", fc, err)
	}
	fc, err = r.lookup(Font{Name: "Missing"})
	if err != nil || fc.family != DefaultFamily {
		t.Errorf("missing family falls back to %v, %v", fc, err)
	}
}

func TestNilRegistryIsPrivate(t *testing.T) {
	a := NewOpenType(nil)
	b := NewHarfBuzz(nil)
	if a.registry == b.registry {
		t.Fatal("sources created with a nil registry share one")
	}
	if err := a.registry.Register("Mono", false, false, gomono.TTF); err != nil {
		t.Fatal(err)
	}
	if b.registry.Has("Mono") || NewOpenType(nil).registry.Has("Mono") {
		t.Error("registering a font on one source changed another")
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewEmptyRegistry()
	if err := r.Register("x", false, false, nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("Register(nil) = %v, want ErrEmptyFontData", err)
	}
	if err := r.Register("x", false, false, []byte("not a font")); err == nil {
		t.Error("Register(garbage) succeeded")
	}
	if _, err := r.lookup(Font{Name: "x"}); !errors.Is(err, ErrNoFonts) {
		t.Errorf("lookup on empty registry = %v, want ErrNoFonts", err)
	}

	if err := r.Register("Mono", false, false, gomono.TTF); err != nil {
		t.Fatal(err)
	}
	_, err := r.lookup(Font{Name: "Other"})
	var unknown *UnknownFontError
	if !errors.As(err, &unknown) || unknown.Name != "Other" {
		t.Errorf("lookup(Other) = %v, want UnknownFontError", err)
	}
}

func TestOpenTypeGlyphs(t *testing.T) {
	src := NewOpenType(nil)
	f := Font{Name: DefaultFamily, Size: 16}
	text := []rune("AVi ")
	glyphs := src.Glyphs(text, f)
	if len(glyphs) != len(text) {
		t.Fatalf("got %d glyphs for %d runes", len(glyphs), len(text))
	}
	for i, g := range glyphs {
		if g.Advance <= 0 {
			t.Errorf("glyph %d (%q) has advance %v", i, text[i], g.Advance)
		}
		if g.Owner == 0 {
			t.Errorf("glyph %d has no owner", i)
		}
	}
	if glyphs[0].Kern != 0 {
		t.Errorf("first glyph kern = %v, want 0", glyphs[0].Kern)
	}
	if glyphs[0].Bounds.Empty() {
		t.Error("'A' has empty bounds")
	}
	if !glyphs[3].Bounds.Empty() {
		t.Errorf("space has bounds %+v", glyphs[3].Bounds)
	}

	met := src.Metrics(f)
	if met.Ascent <= 0 || met.Descent <= 0 {
		t.Errorf("Metrics = %+v, want positive ascent and descent", met)
	}
	if glyphs[0].Ascent != met.Ascent {
		t.Errorf("glyph ascent %v != font ascent %v", glyphs[0].Ascent, met.Ascent)
	}
}

func TestOpenTypeScalesWithSize(t *testing.T) {
	src := NewOpenType(nil)
	small := src.Glyphs([]rune("m"), Font{Name: DefaultFamily, Size: 10})[0].Advance
	large := src.Glyphs([]rune("m"), Font{Name: DefaultFamily, Size: 20})[0].Advance
	if diff := large - 2*small; diff > 0.1 || diff < -0.1 {
		t.Errorf("advance at 20 = %v, want twice %v", large, small)
	}
}

func TestHarfBuzzGlyphs(t *testing.T) {
	src := NewHarfBuzz(nil)
	f := Font{Name: DefaultFamily, Size: 16}
	text := []rune("Hello, world")
	glyphs := src.Glyphs(text, f)
	if len(glyphs) != len(text) {
		t.Fatalf("got %d glyphs for %d runes", len(glyphs), len(text))
	}

	ot := NewOpenType(nil, WithKerning(false))
	ref := ot.Glyphs(text, f)
	var total, refTotal float64
	for i := range glyphs {
		total += glyphs[i].Advance
		refTotal += ref[i].Advance
	}
	if total <= 0 {
		t.Fatalf("total advance = %v", total)
	}
	if diff := total - refTotal; diff > refTotal*0.05 || diff < -refTotal*0.05 {
		t.Errorf("HarfBuzz width %v differs from table width %v by more than 5%%", total, refTotal)
	}

	met := src.Metrics(f)
	if met.Ascent <= 0 || met.Descent <= 0 {
		t.Errorf("Metrics = %+v, want positive ascent and descent", met)
	}
	if !IsContextSensitive(src) {
		t.Error("HarfBuzz should be context sensitive")
	}
}

func TestHarfBuzzEmpty(t *testing.T) {
	if got := NewHarfBuzz(nil).Glyphs(nil, Font{Name: DefaultFamily, Size: 12}); len(got) != 0 {
		t.Errorf("Glyphs(nil) = %v", got)
	}
}

type countingSource struct {
	Source
	calls int
}

func (c *countingSource) Glyphs(text []rune, f Font) []Glyph {
	c.calls++
	return c.Source.Glyphs(text, f)
}

func TestCache(t *testing.T) {
	src := &countingSource{Source: NewMonospace()}
	c := NewCache(src, 2)
	f := Font{Size: 10}

	c.Glyphs([]rune("abc"), f)
	c.Glyphs([]rune("abc"), f)
	if src.calls != 1 {
		t.Errorf("source called %d times for repeated text, want 1", src.calls)
	}
	c.Glyphs([]rune("abc"), Font{Size: 11})
	if src.calls != 2 {
		t.Errorf("different font did not miss the cache")
	}
	c.Glyphs([]rune("xyz"), f)
	c.Glyphs([]rune("abc"), f)

	s := c.Stats()
	if s.Len != 2 {
		t.Errorf("Len = %d, want 2", s.Len)
	}
	if s.Hits != 1 || s.Misses != 4 {
		t.Errorf("Stats = %+v, want 1 hit and 4 misses", s)
	}
	if s.Capacity != 2 || s.Evictions != 2 || s.HitRate != 0.2 {
		t.Errorf("Stats = %+v, want capacity 2, 2 evictions, hit rate 0.2", s)
	}
	if IsContextSensitive(c) {
		t.Error("cache over Monospace reported context sensitivity")
	}
}
