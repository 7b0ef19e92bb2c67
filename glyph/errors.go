package glyph

import (
	"errors"
	"fmt"
)

// Sentinel errors for font registration and lookup.
var (
	// ErrEmptyFontData is returned when registering a font with no data.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrEmptyFamily is returned when registering a font without a family
	// name.
	ErrEmptyFamily = errors.New("glyph: empty family name")

	// ErrNoFonts is returned when a registry has no face to fall back on.
	ErrNoFonts = errors.New("glyph: registry has no fonts")
)

// UnknownFontError is returned when a family is not registered.
type UnknownFontError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownFontError) Error() string {
	return fmt.Sprintf("glyph: unknown font family %q", e.Name)
}
