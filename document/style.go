package document

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/textflow/runlist"
)

// Attr names a character or paragraph style attribute.
type Attr string

// Character attributes.
const (
	AttrFontName        Attr = "font_name"        // string
	AttrFontSize        Attr = "font_size"        // float64, points
	AttrBold            Attr = "bold"             // bool
	AttrItalic          Attr = "italic"           // bool
	AttrColor           Attr = "color"            // color.RGBA
	AttrBackgroundColor Attr = "background_color" // color.RGBA, zero is none
	AttrUnderline       Attr = "underline"        // color.RGBA, zero is none
	AttrBaseline        Attr = "baseline"         // float64, positive raises glyphs
	AttrKerning         Attr = "kerning"          // float64, extra space between glyphs
)

// Paragraph attributes. They are read at the first character of a paragraph
// or of a line; SetParagraphStyle applies them to whole paragraphs.
const (
	AttrAlign        Attr = "align"         // Align
	AttrMarginLeft   Attr = "margin_left"   // float64
	AttrMarginRight  Attr = "margin_right"  // float64
	AttrMarginTop    Attr = "margin_top"    // float64
	AttrMarginBottom Attr = "margin_bottom" // float64
	AttrIndent       Attr = "indent"        // float64, first line only
	AttrLeading      Attr = "leading"       // float64, extra space between lines
	AttrLineSpacing  Attr = "line_spacing"  // float64, baseline distance, 0 uses font ascent
	AttrWrap         Attr = "wrap"          // WrapMode
	AttrTabStops     Attr = "tab_stops"     // TabStops
)

// Attrs maps attributes to values. A nil value resets the attribute to the
// document default.
type Attrs map[Attr]any

// Align is the horizontal alignment of a line.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

const unknownStr = "Unknown"

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return unknownStr
	}
}

// WrapMode controls where a paragraph may be broken into lines.
type WrapMode uint8

const (
	// WrapWord breaks lines at whitespace. A word longer than the line is
	// never split.
	WrapWord WrapMode = iota

	// WrapNone disables wrapping; lines end only at explicit breaks.
	WrapNone

	// WrapChar breaks at any character.
	WrapChar
)

// String returns the string representation of the wrap mode.
func (w WrapMode) String() string {
	switch w {
	case WrapWord:
		return "Word"
	case WrapNone:
		return "None"
	case WrapChar:
		return "Char"
	default:
		return unknownStr
	}
}

// TabStops is an immutable list of tab stop positions, interned per
// document so that equal lists compare equal and share one run.
type TabStops struct {
	p *tabStopList
}

type tabStopList struct {
	stops []float64
}

// Stops returns the tab stop positions in ascending order.
// The returned slice must not be modified.
func (t TabStops) Stops() []float64 {
	if t.p == nil {
		return nil
	}
	return t.p.stops
}

// Next returns the first stop strictly greater than x, or false if there is
// none.
func (t TabStops) Next(x float64) (float64, bool) {
	for _, s := range t.Stops() {
		if s > x {
			return s, true
		}
	}
	return 0, false
}

// Element is an inline object embedded in the text as a U+FFFC placeholder.
// The layout reserves Advance horizontally and Ascent/Descent vertically.
type Element struct {
	Ascent  float64
	Descent float64
	Advance float64

	// Data is carried through to rendering backends untouched.
	Data any
}

// defaultStyle is the style of text that has never been styled.
var defaultStyle = Attrs{
	AttrFontName:        "Go",
	AttrFontSize:        12.0,
	AttrBold:            false,
	AttrItalic:          false,
	AttrColor:           color.RGBA{A: 0xff},
	AttrBackgroundColor: color.RGBA{},
	AttrUnderline:       color.RGBA{},
	AttrBaseline:        0.0,
	AttrKerning:         0.0,
	AttrAlign:           AlignLeft,
	AttrMarginLeft:      0.0,
	AttrMarginRight:     0.0,
	AttrMarginTop:       0.0,
	AttrMarginBottom:    0.0,
	AttrIndent:          0.0,
	AttrLeading:         0.0,
	AttrLineSpacing:     0.0,
	AttrWrap:            WrapWord,
	AttrTabStops:        TabStops{},
}

// DefaultStyle returns a copy of the style used for unstyled text.
func DefaultStyle() Attrs {
	out := make(Attrs, len(defaultStyle))
	for k, v := range defaultStyle {
		out[k] = v
	}
	return out
}

// Attributes returns every attribute name in a stable order.
func Attributes() []Attr {
	attrs := make([]Attr, 0, len(defaultStyle))
	for k := range defaultStyle {
		attrs = append(attrs, k)
	}
	slices.Sort(attrs)
	return attrs
}

// styleList is a per-attribute RunList with value conversion.
type styleList interface {
	insert(pos, n int)
	delete(start, end int)
	set(start, end int, v any)
	at(pos int) any
	size() int
}

type typedList[T comparable] struct {
	attr Attr
	runs *runlist.RunList[T]
	def  T
	conv func(any) (T, bool)
}

func newTypedList[T comparable](attr Attr, n int, def T, conv func(any) (T, bool)) *typedList[T] {
	return &typedList[T]{attr: attr, runs: runlist.New(n, def), def: def, conv: conv}
}

func (l *typedList[T]) insert(pos, n int)     { l.runs.Insert(pos, n) }
func (l *typedList[T]) delete(start, end int) { l.runs.Delete(start, end) }
func (l *typedList[T]) at(pos int) any        { return l.runs.At(pos) }
func (l *typedList[T]) size() int             { return l.runs.NumRuns() }

func (l *typedList[T]) set(start, end int, v any) {
	if v == nil {
		l.runs.SetRun(start, end, l.def)
		return
	}
	t, ok := l.conv(v)
	if !ok {
		panic(fmt.Sprintf("document: invalid value %#v for attribute %s", v, l.attr))
	}
	l.runs.SetRun(start, end, t)
}

func identity[T comparable](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func toColor(v any) (color.RGBA, bool) {
	switch c := v.(type) {
	case color.RGBA:
		return c, true
	case color.Color:
		return color.RGBAModel.Convert(c).(color.RGBA), true
	default:
		return color.RGBA{}, false
	}
}

func toWrap(v any) (WrapMode, bool) {
	switch w := v.(type) {
	case WrapMode:
		return w, w <= WrapChar
	case bool:
		if w {
			return WrapWord, true
		}
		return WrapNone, true
	default:
		return 0, false
	}
}

func toAlign(v any) (Align, bool) {
	a, ok := v.(Align)
	return a, ok && a <= AlignRight
}

// internTabStops returns the shared handle for stops.
func (d *Document) internTabStops(v any) (TabStops, bool) {
	var stops []float64
	switch s := v.(type) {
	case TabStops:
		return s, true
	case []float64:
		stops = slices.Clone(s)
	default:
		return TabStops{}, false
	}
	if len(stops) == 0 {
		return TabStops{}, true
	}
	slices.Sort(stops)

	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = strconv.FormatFloat(s, 'g', -1, 64)
	}
	key := strings.Join(parts, ",")
	if p, ok := d.tabStops[key]; ok {
		return TabStops{p: p}, true
	}
	p := &tabStopList{stops: stops}
	d.tabStops[key] = p
	return TabStops{p: p}, true
}

// newStyleList creates the run list for attr holding def at every position.
func (d *Document) newStyleList(attr Attr, n int, def any) styleList {
	must := func(ok bool) {
		if !ok {
			panic(fmt.Sprintf("document: invalid default %#v for attribute %s", def, attr))
		}
	}
	switch attr {
	case AttrFontName:
		v, ok := identity[string](def)
		must(ok)
		return newTypedList(attr, n, v, identity[string])
	case AttrBold, AttrItalic:
		v, ok := identity[bool](def)
		must(ok)
		return newTypedList(attr, n, v, identity[bool])
	case AttrColor, AttrBackgroundColor, AttrUnderline:
		v, ok := toColor(def)
		must(ok)
		return newTypedList(attr, n, v, toColor)
	case AttrAlign:
		v, ok := toAlign(def)
		must(ok)
		return newTypedList(attr, n, v, toAlign)
	case AttrWrap:
		v, ok := toWrap(def)
		must(ok)
		return newTypedList(attr, n, v, toWrap)
	case AttrTabStops:
		v, ok := d.internTabStops(def)
		must(ok)
		return newTypedList(attr, n, v, d.internTabStops)
	default:
		v, ok := toFloat(def)
		must(ok)
		return newTypedList(attr, n, v, toFloat)
	}
}

// StyleRuns returns a forward-only iterator over the values of attr.
// It panics if T is not the value type of attr.
func StyleRuns[T comparable](d *Document, attr Attr) runlist.Iterator[T] {
	l, ok := d.styles[attr]
	if !ok {
		panic(fmt.Sprintf("document: unknown attribute %q", attr))
	}
	typed, ok := l.(*typedList[T])
	if !ok {
		panic(fmt.Sprintf("document: attribute %s does not hold %T values", attr, *new(T)))
	}
	return typed.runs.Iterator()
}
