package layout

import "image/color"

// DefaultTabWidth is the tab pitch used past the last explicit tab stop.
const DefaultTabWidth = 50.0

// Option configures a layout.
type Option func(*options)

type options struct {
	width, height  float64
	wrapLines      bool
	multiline      bool
	backend        Backend
	selectionColor color.RGBA
	selectionBG    color.RGBA
	tabWidth       float64
}

func defaultOptions() options {
	return options{
		wrapLines:      true,
		multiline:      true,
		backend:        nopBackend{},
		selectionColor: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		selectionBG:    color.RGBA{R: 46, G: 106, B: 197, A: 0xff},
		tabWidth:       DefaultTabWidth,
	}
}

// WithSize sets the viewport size. Width is the wrapping width; height
// bounds the visible window.
func WithSize(width, height float64) Option {
	return func(o *options) {
		o.width = max(width, 0)
		o.height = max(height, 0)
	}
}

// WithWrapLines enables or disables wrapping at the viewport width.
// When disabled, lines only end at forced breaks. Default: true.
func WithWrapLines(wrap bool) Option {
	return func(o *options) {
		o.wrapLines = wrap
	}
}

// WithMultiline controls whether line and paragraph separators start new
// lines. Default: true.
func WithMultiline(multiline bool) Option {
	return func(o *options) {
		o.multiline = multiline
	}
}

// WithBackend sets the receiver of box geometry.
func WithBackend(b Backend) Option {
	return func(o *options) {
		if b == nil {
			b = nopBackend{}
		}
		o.backend = b
	}
}

// WithSelectionColors sets the text and background colors of selected text.
func WithSelectionColors(fg, bg color.RGBA) Option {
	return func(o *options) {
		o.selectionColor = fg
		o.selectionBG = bg
	}
}

// WithTabWidth sets the tab pitch used once explicit tab stops run out.
// Non-positive values are ignored.
func WithTabWidth(w float64) Option {
	return func(o *options) {
		if w > 0 {
			o.tabWidth = w
		}
	}
}
