// Package document provides styled text storage for the layout engine.
//
// A Document holds a text buffer together with one run list per style
// attribute, the identity of each paragraph, and inline elements. Every
// mutation is announced to registered listeners with the affected character
// range, which is all a layout needs to decide what to recompute.
//
// Positions are rune indices into the text.
package document

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/gogpu/textflow/runlist"
)

// Paragraph and line break characters.
const (
	LineFeed           = '\n'
	LineSeparator      = '\u2028'
	ParagraphSeparator = '\u2029'
	ObjectReplacement  = '\ufffc'
)

// IsParagraphBreak reports whether r ends a paragraph.
func IsParagraphBreak(r rune) bool {
	return r == LineFeed || r == ParagraphSeparator
}

// ParagraphID identifies a paragraph across edits. Inserting a paragraph
// break gives the text after it a fresh ID; deleting a break merges the two
// paragraphs under the ID of the first.
type ParagraphID uint64

// Listener receives document change notifications. Ranges refer to the
// document after the change for inserts and style changes, and before the
// change for deletes.
type Listener interface {
	OnInsertText(start int, text string)
	OnDeleteText(start, end int)
	OnStyleText(start, end int, attrs Attrs)
}

// Document is a mutable styled text buffer.
//
// Document is not safe for concurrent use. Listeners run synchronously
// inside the mutating call.
type Document struct {
	text      []rune
	styles    map[Attr]styleList
	order     []Attr
	defaults  Attrs
	paragraph *runlist.RunList[ParagraphID]
	elements  *runlist.RunList[*Element]
	lastID    ParagraphID
	tabStops  map[string]*tabStopList
	listeners []Listener
}

// New creates a document holding text in the default style.
func New(text string, opts ...Option) *Document {
	cfg := defaultDocumentConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	runes := []rune(text)
	n := len(runes)
	d := &Document{
		text:     runes,
		styles:   make(map[Attr]styleList, len(defaultStyle)),
		order:    Attributes(),
		defaults: DefaultStyle(),
		elements: runlist.New[*Element](n, nil),
		tabStops: make(map[string]*tabStopList),
	}
	for k, v := range cfg.defaults {
		if _, ok := defaultStyle[k]; !ok {
			panic(fmt.Sprintf("document: unknown attribute %q", k))
		}
		d.defaults[k] = v
	}
	for _, attr := range d.order {
		d.styles[attr] = d.newStyleList(attr, n, d.defaults[attr])
	}

	d.lastID = 1
	d.paragraph = runlist.New(n, d.lastID)
	d.splitParagraphs(0, n)
	return d
}

// Len returns the number of characters in the document.
func (d *Document) Len() int {
	return len(d.text)
}

// Text returns the document text.
func (d *Document) Text() string {
	return string(d.text)
}

// Slice returns the text in [start, end).
func (d *Document) Slice(start, end int) string {
	d.checkRange(start, end)
	return string(d.text[start:end])
}

// RuneAt returns the character at pos.
func (d *Document) RuneAt(pos int) rune {
	if pos < 0 || pos >= len(d.text) {
		panic(fmt.Sprintf("document: position %d out of range [0, %d)", pos, len(d.text)))
	}
	return d.text[pos]
}

// Runes returns the text buffer. The slice is owned by the document, must
// not be modified, and is invalidated by the next edit.
func (d *Document) Runes() []rune {
	return d.text
}

// AddListener registers l for change notifications.
func (d *Document) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

// RemoveListener unregisters l. It is a no-op if l is not registered.
func (d *Document) RemoveListener(l Listener) {
	if i := slices.Index(d.listeners, l); i >= 0 {
		d.listeners = slices.Delete(d.listeners, i, i+1)
	}
}

// InsertText inserts text at pos. The new characters take the style of the
// character before pos (or the first character when pos is 0), then attrs
// is applied on top of it.
func (d *Document) InsertText(pos int, text string, attrs Attrs) {
	if d.insert(pos, text, attrs) == 0 {
		return
	}
	for _, l := range d.listeners {
		l.OnInsertText(pos, text)
	}
}

// InsertElement inserts el as a single U+FFFC placeholder at pos.
func (d *Document) InsertElement(pos int, el *Element, attrs Attrs) {
	if el == nil {
		panic("document: nil element")
	}
	placeholder := string(ObjectReplacement)
	d.insert(pos, placeholder, attrs)
	d.elements.SetRun(pos, pos+1, el)
	for _, l := range d.listeners {
		l.OnInsertText(pos, placeholder)
	}
}

func (d *Document) insert(pos int, text string, attrs Attrs) int {
	d.checkPos(pos)
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}

	d.text = slices.Insert(d.text, pos, []rune(text)...)
	for _, attr := range d.order {
		d.styles[attr].insert(pos, n)
	}
	d.paragraph.Insert(pos, n)
	d.elements.Insert(pos, n)
	d.elements.SetRun(pos, pos+n, nil)
	d.splitParagraphs(pos, pos+n)
	if attrs != nil {
		d.applyStyle(pos, pos+n, attrs)
	}
	return n
}

// DeleteText removes the characters in [start, end).
func (d *Document) DeleteText(start, end int) {
	d.checkRange(start, end)
	if start == end {
		return
	}

	joined := slices.ContainsFunc(d.text[start:end], IsParagraphBreak)
	d.text = slices.Delete(d.text, start, end)
	for _, attr := range d.order {
		d.styles[attr].delete(start, end)
	}
	d.paragraph.Delete(start, end)
	d.elements.Delete(start, end)
	if joined && start < len(d.text) {
		ps := d.ParagraphStart(start)
		d.paragraph.SetRun(ps, d.ParagraphEnd(start), d.paragraph.At(ps))
	}

	for _, l := range d.listeners {
		l.OnDeleteText(start, end)
	}
}

// SetStyle applies attrs to [start, end).
func (d *Document) SetStyle(start, end int, attrs Attrs) {
	d.checkRange(start, end)
	d.applyStyle(start, end, attrs)
	for _, l := range d.listeners {
		l.OnStyleText(start, end, attrs)
	}
}

// SetParagraphStyle applies attrs to every paragraph overlapping
// [start, end).
func (d *Document) SetParagraphStyle(start, end int, attrs Attrs) {
	d.checkRange(start, end)
	ps := d.ParagraphStart(start)
	pe := d.ParagraphEnd(max(start, end-1))
	d.SetStyle(ps, pe, attrs)
}

func (d *Document) applyStyle(start, end int, attrs Attrs) {
	for attr, v := range attrs {
		l, ok := d.styles[attr]
		if !ok {
			panic(fmt.Sprintf("document: unknown attribute %q", attr))
		}
		if v == nil {
			v = d.defaults[attr]
		}
		l.set(start, end, v)
	}
}

// Style returns the value of attr at pos. Position Len() returns the style
// text appended at the end would take.
func (d *Document) Style(pos int, attr Attr) any {
	l, ok := d.styles[attr]
	if !ok {
		panic(fmt.Sprintf("document: unknown attribute %q", attr))
	}
	d.checkPos(pos)
	return l.at(pos)
}

// Element returns the inline element at pos, or nil.
func (d *Document) Element(pos int) *Element {
	d.checkPos(pos)
	return d.elements.At(pos)
}

// ElementRuns returns a forward-only iterator over inline elements.
// Positions that hold no element report nil.
func (d *Document) ElementRuns() runlist.Iterator[*Element] {
	return d.elements.Iterator()
}

// ParagraphID returns the identity of the paragraph containing pos.
func (d *Document) ParagraphID(pos int) ParagraphID {
	d.checkPos(pos)
	return d.paragraph.At(pos)
}

// ParagraphStart returns the first character of the paragraph containing
// pos.
func (d *Document) ParagraphStart(pos int) int {
	d.checkPos(pos)
	for i := pos - 1; i >= 0; i-- {
		if IsParagraphBreak(d.text[i]) {
			return i + 1
		}
	}
	return 0
}

// ParagraphEnd returns the position just past the break ending the paragraph
// containing pos, or Len() for the last paragraph.
func (d *Document) ParagraphEnd(pos int) int {
	d.checkPos(pos)
	for i := pos; i < len(d.text); i++ {
		if IsParagraphBreak(d.text[i]) {
			return i + 1
		}
	}
	return len(d.text)
}

// splitParagraphs restores paragraph identity after [start, end) was
// inserted. Text inserted right after a break joins the paragraph that
// follows it, and the text after each inserted break gets a fresh ID.
func (d *Document) splitParagraphs(start, end int) {
	if start > 0 && IsParagraphBreak(d.text[start-1]) {
		var id ParagraphID
		if end < len(d.text) {
			id = d.paragraph.At(end)
		} else {
			d.lastID++
			id = d.lastID
		}
		d.paragraph.SetRun(start, d.ParagraphEnd(start), id)
	}
	for i := start; i < end; i++ {
		if !IsParagraphBreak(d.text[i]) || i+1 >= len(d.text) {
			continue
		}
		d.lastID++
		d.paragraph.SetRun(i+1, d.ParagraphEnd(i+1), d.lastID)
	}
}

// NumRuns returns the number of runs stored for attr, for diagnostics.
func (d *Document) NumRuns(attr Attr) int {
	l, ok := d.styles[attr]
	if !ok {
		panic(fmt.Sprintf("document: unknown attribute %q", attr))
	}
	return l.size()
}

func (d *Document) checkPos(pos int) {
	if pos < 0 || pos > len(d.text) {
		panic(fmt.Sprintf("document: position %d out of range [0, %d]", pos, len(d.text)))
	}
}

func (d *Document) checkRange(start, end int) {
	if start < 0 || end > len(d.text) || start > end {
		panic(fmt.Sprintf("document: range [%d, %d) out of bounds [0, %d]", start, end, len(d.text)))
	}
}
