package glyph

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// DefaultFamily is the family registered by NewRegistry and used when a
// requested family is missing.
const DefaultFamily = "Go"

// face is one registered font file.
type face struct {
	family string
	data   []byte
	font   *sfnt.Font
}

type faceKey struct {
	family       string
	bold, italic bool
}

// Registry maps font families and styles to font files.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	faces map[faceKey]*face
}

// NewRegistry creates a registry with the Go font family registered under
// DefaultFamily in all four styles.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, f := range []struct {
		data         []byte
		bold, italic bool
	}{
		{goregular.TTF, false, false},
		{gobold.TTF, true, false},
		{goitalic.TTF, false, true},
		{gobolditalic.TTF, true, true},
	} {
		if err := r.Register(DefaultFamily, f.bold, f.italic, f.data); err != nil {
			panic(fmt.Sprintf("glyph: embedded Go font: %v", err))
		}
	}
	return r
}

// NewEmptyRegistry creates a registry with no fonts.
func NewEmptyRegistry() *Registry {
	return &Registry{faces: make(map[faceKey]*face)}
}

// Register adds a TrueType or OpenType font for family in the given style.
// An empty family uses the font's own family name.
func (r *Registry) Register(family string, bold, italic bool, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("glyph: failed to parse font: %w", err)
	}
	if family == "" {
		family, _ = f.Name(nil, sfnt.NameIDFamily)
		if family == "" {
			return ErrEmptyFamily
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[faceKey{family, bold, italic}] = &face{family: family, data: data, font: f}
	return nil
}

// Len returns the number of registered faces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.faces)
}

// lookup returns the face for f. It falls back to the regular style of the
// family, then to DefaultFamily. An error is returned only when nothing can
// serve the request.
func (r *Registry) lookup(f Font) (*face, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range []faceKey{
		{f.Name, f.Bold, f.Italic},
		{f.Name, false, false},
		{DefaultFamily, f.Bold, f.Italic},
		{DefaultFamily, false, false},
	} {
		if fc, ok := r.faces[k]; ok {
			return fc, nil
		}
	}
	if len(r.faces) == 0 {
		return nil, ErrNoFonts
	}
	return nil, &UnknownFontError{Name: f.Name}
}

// Has reports whether family is registered in any style.
func (r *Registry) Has(family string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := range r.faces {
		if k.family == family {
			return true
		}
	}
	return false
}
