package glyph

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/textflow"
)

// HarfBuzz is a Source backed by the go-text/typesetting HarfBuzz port.
// It applies kerning, ligatures and complex script shaping.
//
// Shaping may map several characters to one glyph cluster. The cluster's
// advance is reported on its first character and the others get zero, so
// the layout still sees one glyph per character.
//
// HarfBuzz is safe for concurrent use. It caches parsed font.Font objects
// (which are thread-safe) and creates a font.Face per call.
type HarfBuzz struct {
	registry   *Registry
	owners     ownerTable
	shaperPool sync.Pool

	mu    sync.RWMutex
	fonts map[*face]*font.Font
}

// NewHarfBuzz creates a shaping source over the fonts in registry. A nil
// registry is replaced by a private NewRegistry.
func NewHarfBuzz(registry *Registry) *HarfBuzz {
	if registry == nil {
		registry = NewRegistry()
	}
	return &HarfBuzz{
		registry: registry,
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fonts: make(map[*face]*font.Font),
	}
}

// ContextSensitive implements ContextSensitive.
func (h *HarfBuzz) ContextSensitive() bool {
	return true
}

// Glyphs implements Source.
func (h *HarfBuzz) Glyphs(text []rune, f Font) []Glyph {
	out := make([]Glyph, len(text))
	if len(text) == 0 {
		return out
	}
	output, ok := h.shape(text, f)
	if !ok {
		return out
	}

	owner := h.owners.owner(f)
	ascent := fixedToFloat(output.LineBounds.Ascent)
	descent := -fixedToFloat(output.LineBounds.Descent)
	for i := range out {
		out[i] = Glyph{Ascent: ascent, Descent: descent, Owner: owner}
	}

	for _, g := range output.Glyphs {
		c := g.TextIndex()
		if c < 0 || c >= len(out) {
			continue
		}
		dst := &out[c]
		first := dst.ID == 0 && dst.Bounds.Empty()
		dst.Advance += fixedToFloat(g.Advance)
		if !first {
			continue
		}
		dst.ID = uint32(g.GlyphID)
		x0 := fixedToFloat(g.XOffset + g.XBearing)
		y0 := -fixedToFloat(g.YOffset + g.YBearing)
		dst.Bounds = Rect{
			X0: x0,
			Y0: y0,
			X1: x0 + fixedToFloat(g.Width),
			Y1: y0 - fixedToFloat(g.Height),
		}
	}
	return out
}

// Metrics implements Source.
func (h *HarfBuzz) Metrics(f Font) Metrics {
	output, ok := h.shape([]rune{' '}, f)
	if !ok {
		return Metrics{}
	}
	return Metrics{
		Ascent:  fixedToFloat(output.LineBounds.Ascent),
		Descent: -fixedToFloat(output.LineBounds.Descent),
		LineGap: fixedToFloat(output.LineBounds.Gap),
	}
}

func (h *HarfBuzz) shape(text []rune, f Font) (shaping.Output, bool) {
	fc, err := h.registry.lookup(f)
	if err != nil {
		textflow.Logger().Warn("glyph: no font for text", "font", f.String(), "err", err)
		return shaping.Output{}, false
	}
	gf, err := h.font(fc)
	if err != nil {
		textflow.Logger().Warn("glyph: failed to load font", "family", fc.family, "err", err)
		return shaping.Output{}, false
	}

	input := shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Direction: direction(text),
		Face:      font.NewFace(gf),
		Size:      floatToFixed(f.Size),
		Script:    detectScript(text),
		Language:  language.NewLanguage("en"),
	}

	hb := h.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	h.shaperPool.Put(hb)
	return output, true
}

// font returns the parsed go-text font for fc, parsing it on first use.
func (h *HarfBuzz) font(fc *face) (*font.Font, error) {
	h.mu.RLock()
	if f, ok := h.fonts[fc]; ok {
		h.mu.RUnlock()
		return f, nil
	}
	h.mu.RUnlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	if f, ok := h.fonts[fc]; ok {
		return f, nil
	}
	parsed, err := font.ParseTTF(bytes.NewReader(fc.data))
	if err != nil {
		return nil, err
	}
	h.fonts[fc] = parsed.Font
	return parsed.Font, nil
}

// direction returns the direction of the first strong character.
func direction(text []rune) di.Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		case bidi.L:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space character.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
