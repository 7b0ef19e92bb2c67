// Package config loads textflow tool settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
)

// Config is the root configuration structure.
type Config struct {
	Width    float64     `toml:"width"`
	Height   float64     `toml:"height"`
	Scroll   float64     `toml:"scroll"`
	Shaper   string      `toml:"shaper"`
	Wrap     string      `toml:"wrap"`
	TabWidth float64     `toml:"tab_width"`
	TabStops []float64   `toml:"tab_stops"`
	Font     FontConfig  `toml:"font"`
	Cache    CacheConfig `toml:"cache"`
}

// FontConfig selects the default font.
type FontConfig struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
	// File is an optional TTF/OTF registered under Family.
	File string `toml:"file"`
}

// CacheConfig holds shaped-run cache settings.
type CacheConfig struct {
	Size int `toml:"size"`
}

// SizeOrDefault returns the configured cache size or glyph.DefaultCacheSize
// if unset.
func (c CacheConfig) SizeOrDefault() int {
	if c.Size <= 0 {
		return glyph.DefaultCacheSize
	}
	return c.Size
}

// Shaper names.
const (
	ShaperMonospace = "monospace"
	ShaperOpenType  = "opentype"
	ShaperHarfBuzz  = "harfbuzz"
)

var wrapModes = map[string]document.WrapMode{
	"word": document.WrapWord,
	"char": document.WrapChar,
	"none": document.WrapNone,
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Width:    640,
		Height:   480,
		Shaper:   ShaperOpenType,
		Wrap:     "word",
		TabWidth: 50,
		Font: FontConfig{
			Family: glyph.DefaultFamily,
			Size:   12,
		},
	}
}

// Load reads configuration from a TOML file. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width=%v must not be negative", c.Width))
	}
	if c.Height < 0 {
		errs = append(errs, fmt.Errorf("height=%v must not be negative", c.Height))
	}
	if c.Scroll < 0 {
		errs = append(errs, fmt.Errorf("scroll=%v must not be negative", c.Scroll))
	}
	switch c.Shaper {
	case ShaperMonospace, ShaperOpenType, ShaperHarfBuzz:
	default:
		errs = append(errs, fmt.Errorf("shaper=%q must be one of monospace, opentype, harfbuzz", c.Shaper))
	}
	if _, ok := wrapModes[c.Wrap]; !ok {
		errs = append(errs, fmt.Errorf("wrap=%q must be one of word, char, none", c.Wrap))
	}
	if c.TabWidth <= 0 {
		errs = append(errs, fmt.Errorf("tab_width=%v must be positive", c.TabWidth))
	}
	for i, s := range c.TabStops {
		if s <= 0 {
			errs = append(errs, fmt.Errorf("tab_stops[%d]=%v must be positive", i, s))
		}
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font.size=%v must be positive", c.Font.Size))
	}
	if c.Font.File != "" && c.Font.Family == "" {
		errs = append(errs, errors.New("font.family is required when font.file is set"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// WrapMode returns the configured wrap mode.
func (c *Config) WrapMode() document.WrapMode {
	return wrapModes[c.Wrap]
}

// DocumentDefaults returns the default style for documents opened with c.
func (c *Config) DocumentDefaults() document.Attrs {
	attrs := document.Attrs{
		document.AttrFontName: c.Font.Family,
		document.AttrFontSize: c.Font.Size,
		document.AttrWrap:     c.WrapMode(),
	}
	if len(c.TabStops) > 0 {
		attrs[document.AttrTabStops] = c.TabStops
	}
	return attrs
}

// Source builds the glyph source named by Shaper, wrapped in a cache.
// When Font.File is set, it is read and registered under Font.Family.
func (c *Config) Source() (glyph.Source, error) {
	var reg *glyph.Registry
	if c.Font.File != "" {
		data, err := os.ReadFile(c.Font.File)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		reg = glyph.NewRegistry()
		if err := reg.Register(c.Font.Family, false, false, data); err != nil {
			return nil, fmt.Errorf("register font %s: %w", c.Font.File, err)
		}
	}

	var src glyph.Source
	switch c.Shaper {
	case ShaperMonospace:
		src = glyph.NewMonospace()
	case ShaperHarfBuzz:
		src = glyph.NewHarfBuzz(reg)
	default:
		src = glyph.NewOpenType(reg)
	}
	return glyph.NewCache(src, c.Cache.SizeOrDefault()), nil
}
