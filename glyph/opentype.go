package glyph

import (
	"errors"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textflow"
)

// OpenType is a Source that reads advances, bounds and pair kerning
// directly from font tables. It does not apply ligatures or complex script
// shaping; use HarfBuzz for that.
type OpenType struct {
	registry *Registry
	cfg      openTypeConfig
	owners   ownerTable
}

// NewOpenType creates a source over the fonts in registry. A nil registry
// is replaced by a private NewRegistry.
func NewOpenType(registry *Registry, opts ...OpenTypeOption) *OpenType {
	if registry == nil {
		registry = NewRegistry()
	}
	cfg := defaultOpenTypeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OpenType{registry: registry, cfg: cfg}
}

// ContextSensitive reports true when kerning is enabled.
func (o *OpenType) ContextSensitive() bool {
	return o.cfg.kerning
}

// Glyphs implements Source.
func (o *OpenType) Glyphs(text []rune, f Font) []Glyph {
	out := make([]Glyph, len(text))
	fc, err := o.registry.lookup(f)
	if err != nil {
		textflow.Logger().Warn("glyph: no font for text", "font", f.String(), "err", err)
		return out
	}

	var buf sfnt.Buffer
	ppem := floatToFixed(f.Size)
	hinting := o.hinting()
	met := o.metrics(fc.font, &buf, ppem)
	owner := o.owners.owner(f)

	var prev sfnt.GlyphIndex
	for i, r := range text {
		g := Glyph{Ascent: met.Ascent, Descent: met.Descent, Owner: owner}
		gi, err := fc.font.GlyphIndex(&buf, r)
		if err != nil {
			gi = 0
		}
		g.ID = uint32(gi)

		if adv, err := fc.font.GlyphAdvance(&buf, gi, ppem, hinting); err == nil {
			g.Advance = fixedToFloat(adv)
		}
		if b, _, err := fc.font.GlyphBounds(&buf, gi, ppem, hinting); err == nil {
			g.Bounds = Rect{
				X0: fixedToFloat(b.Min.X),
				Y0: fixedToFloat(b.Min.Y),
				X1: fixedToFloat(b.Max.X),
				Y1: fixedToFloat(b.Max.Y),
			}
		}
		if o.cfg.kerning && i > 0 {
			k, err := fc.font.Kern(&buf, prev, gi, ppem, hinting)
			if err == nil {
				g.Kern = fixedToFloat(k)
			} else if !errors.Is(err, sfnt.ErrNotFound) {
				textflow.Logger().Debug("glyph: kern lookup failed", "err", err)
			}
		}
		out[i] = g
		prev = gi
	}
	return out
}

// Metrics implements Source.
func (o *OpenType) Metrics(f Font) Metrics {
	fc, err := o.registry.lookup(f)
	if err != nil {
		return Metrics{}
	}
	var buf sfnt.Buffer
	return o.metrics(fc.font, &buf, floatToFixed(f.Size))
}

func (o *OpenType) metrics(f *sfnt.Font, buf *sfnt.Buffer, ppem fixed.Int26_6) Metrics {
	m, err := f.Metrics(buf, ppem, o.hinting())
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		LineGap: fixedToFloat(m.Height) - fixedToFloat(m.Ascent) - fixedToFloat(m.Descent),
	}
}

func (o *OpenType) hinting() font.Hinting {
	if o.cfg.hinting == HintingFull {
		return font.HintingFull
	}
	return font.HintingNone
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
