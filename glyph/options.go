package glyph

// MonospaceOption configures a Monospace source.
type MonospaceOption func(*monospaceConfig)

type monospaceConfig struct {
	cell    float64
	ascent  float64
	descent float64
}

func defaultMonospaceConfig() monospaceConfig {
	return monospaceConfig{
		cell:    0.6,
		ascent:  0.8,
		descent: 0.2,
	}
}

// WithCellWidth sets the advance of one cell as a fraction of the font size.
// Default: 0.6.
func WithCellWidth(ratio float64) MonospaceOption {
	return func(c *monospaceConfig) {
		if ratio > 0 {
			c.cell = ratio
		}
	}
}

// WithExtents sets ascent and descent as fractions of the font size.
// Defaults: 0.8 and 0.2.
func WithExtents(ascent, descent float64) MonospaceOption {
	return func(c *monospaceConfig) {
		c.ascent = ascent
		c.descent = descent
	}
}

// HintingMode selects grid fitting for the OpenType source.
type HintingMode uint8

const (
	// HintingNone keeps fractional advances. Default.
	HintingNone HintingMode = iota
	// HintingFull rounds metrics to whole pixels.
	HintingFull
)

// String returns the string representation of the hinting mode.
func (h HintingMode) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// OpenTypeOption configures an OpenType source.
type OpenTypeOption func(*openTypeConfig)

type openTypeConfig struct {
	hinting HintingMode
	kerning bool
}

func defaultOpenTypeConfig() openTypeConfig {
	return openTypeConfig{
		hinting: HintingNone,
		kerning: true,
	}
}

// WithHinting sets the hinting mode. Default: HintingNone.
func WithHinting(h HintingMode) OpenTypeOption {
	return func(c *openTypeConfig) {
		c.hinting = h
	}
}

// WithKerning enables or disables pair kerning. Default: enabled.
func WithKerning(enabled bool) OpenTypeOption {
	return func(c *openTypeConfig) {
		c.kerning = enabled
	}
}
