package layout

import (
	"slices"
	"testing"

	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
)

// monoDoc returns a document whose characters are 10 units wide with ascent
// 8 and descent 2 under mono().
func monoDoc(text string) *document.Document {
	return document.New(text, document.WithDefaults(document.Attrs{
		document.AttrFontSize: 10.0,
	}))
}

func mono() glyph.Source {
	return glyph.NewMonospace(glyph.WithCellWidth(1))
}

func lineTexts(doc *document.Document, lines []Line) []string {
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = doc.Slice(lines[i].Start, lines[i].End())
	}
	return out
}

func TestWordWrap(t *testing.T) {
	doc := monoDoc("aaaa bbbb cccc")
	l := Build(doc, mono(), WithSize(91, 0))

	want := []string{"aaaa bbbb ", "cccc"}
	if got := lineTexts(doc, l.Lines); !slices.Equal(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	if l.Lines[0].Width != 90 {
		t.Errorf("first line width = %v, want 90", l.Lines[0].Width)
	}
	if l.Lines[1].Width != 40 {
		t.Errorf("second line width = %v, want 40", l.Lines[1].Width)
	}
	if l.ContentWidth != 90 {
		t.Errorf("ContentWidth = %v, want 90", l.ContentWidth)
	}
}

func TestLongWordNotSplit(t *testing.T) {
	doc := monoDoc("abcdefghij")
	l := Build(doc, mono(), WithSize(35, 0))
	if len(l.Lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(l.Lines), lineTexts(doc, l.Lines))
	}
	if l.Lines[0].Width != 100 {
		t.Errorf("width = %v, want 100", l.Lines[0].Width)
	}
	if l.Lines[0].X != 0 {
		t.Errorf("overwide line X = %v, want left aligned at 0", l.Lines[0].X)
	}
}

func TestCharWrap(t *testing.T) {
	doc := monoDoc("abcdefghij")
	doc.SetStyle(0, doc.Len(), document.Attrs{document.AttrWrap: document.WrapChar})
	l := Build(doc, mono(), WithSize(35, 0))

	want := []string{"abc", "def", "ghi", "j"}
	if got := lineTexts(doc, l.Lines); !slices.Equal(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestWrapDisabled(t *testing.T) {
	doc := monoDoc("aaaa bbbb cccc\ndd")

	l := Build(doc, mono(), WithSize(30, 0), WithWrapLines(false))
	want := []string{"aaaa bbbb cccc\n", "dd"}
	if got := lineTexts(doc, l.Lines); !slices.Equal(got, want) {
		t.Errorf("WithWrapLines(false): lines = %q, want %q", got, want)
	}

	doc.SetStyle(0, doc.Len(), document.Attrs{document.AttrWrap: false})
	l = Build(doc, mono(), WithSize(30, 0))
	if got := lineTexts(doc, l.Lines); !slices.Equal(got, want) {
		t.Errorf("wrap=false: lines = %q, want %q", got, want)
	}
}

func TestTrailingWhitespace(t *testing.T) {
	doc := monoDoc("aaaa   bbbb")
	l := Build(doc, mono(), WithSize(65, 0))

	want := []string{"aaaa   ", "bbbb"}
	if got := lineTexts(doc, l.Lines); !slices.Equal(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}

	stripped := Build(monoDoc("aaaa"), mono(), WithSize(65, 0))
	if l.Lines[0].Width != stripped.Lines[0].Width {
		t.Errorf("width with trailing spaces = %v, without = %v", l.Lines[0].Width, stripped.Lines[0].Width)
	}

	// Spaces followed by a forced break do not count either.
	doc = monoDoc("ab  \ncd")
	l = Build(doc, mono(), WithSize(1000, 0))
	if l.Lines[0].Width != 20 {
		t.Errorf("width before newline = %v, want 20", l.Lines[0].Width)
	}
}

func TestForcedBreaks(t *testing.T) {
	doc := monoDoc("a\n\nb\u2028c")
	l := Build(doc, mono(), WithSize(1000, 0))

	want := []string{"a\n", "\n", "b\u2028", "c"}
	if got := lineTexts(doc, l.Lines); !slices.Equal(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}

	empty := l.Lines[1]
	if empty.Ascent != 8 || empty.Descent != 2 || len(empty.Boxes) != 0 {
		t.Errorf("empty line: ascent %v descent %v boxes %d, want 8 2 0",
			empty.Ascent, empty.Descent, len(empty.Boxes))
	}

	wantY := []float64{8, 18, 28, 38}
	for i, y := range wantY {
		if l.Lines[i].Y != y {
			t.Errorf("line %d Y = %v, want %v", i, l.Lines[i].Y, y)
		}
	}

	flags := []struct{ begin, end bool }{{true, true}, {true, true}, {true, false}, {false, false}}
	for i, f := range flags {
		if l.Lines[i].ParagraphBegin != f.begin || l.Lines[i].ParagraphEnd != f.end {
			t.Errorf("line %d paragraph flags = %v %v, want %v %v", i,
				l.Lines[i].ParagraphBegin, l.Lines[i].ParagraphEnd, f.begin, f.end)
		}
	}
}

func TestTrailingNewlineAddsLine(t *testing.T) {
	doc := monoDoc("ab\n")
	l := Build(doc, mono(), WithSize(100, 0))
	if len(l.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(l.Lines))
	}
	last := l.Lines[1]
	if last.Start != 3 || last.Length != 0 || last.Ascent != 8 {
		t.Errorf("last line = start %d length %d ascent %v", last.Start, last.Length, last.Ascent)
	}
}

func TestSingleLineMode(t *testing.T) {
	doc := monoDoc("ab\ncd")
	l := Build(doc, mono(), WithSize(1000, 0), WithMultiline(false))
	if len(l.Lines) != 1 {
		t.Errorf("got %d lines in single line mode, want 1", len(l.Lines))
	}
}

func TestEmptyDocument(t *testing.T) {
	doc := monoDoc("")
	l := Build(doc, mono(), WithSize(100, 100))
	if len(l.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(l.Lines))
	}
	if l.Lines[0].Ascent != 8 || l.ContentHeight != 10 {
		t.Errorf("empty document: ascent %v height %v", l.Lines[0].Ascent, l.ContentHeight)
	}
}

func TestTabs(t *testing.T) {
	tests := []struct {
		name  string
		stops []float64
		want  float64 // x of the character after the tab
	}{
		{"default pitch", nil, 50},
		{"explicit stop", []float64{30}, 30},
		{"stop passed", []float64{5}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := monoDoc("a\tb")
			if tt.stops != nil {
				doc.SetStyle(0, doc.Len(), document.Attrs{document.AttrTabStops: tt.stops})
			}
			eng := New(doc, mono(), WithSize(1000, 100))
			defer eng.Close()
			if x, _ := eng.PointFromPosition(2); x != tt.want {
				t.Errorf("x after tab = %v, want %v", x, tt.want)
			}
		})
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		align document.Align
		want  float64
	}{
		{document.AlignLeft, 5},
		{document.AlignCenter, 40},
		{document.AlignRight, 75},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			doc := monoDoc("ab")
			doc.SetParagraphStyle(0, 1, document.Attrs{
				document.AttrAlign:       tt.align,
				document.AttrMarginLeft:  5.0,
				document.AttrMarginRight: 5.0,
			})
			l := Build(doc, mono(), WithSize(100, 0))
			if got := l.Lines[0].X; got != tt.want {
				t.Errorf("X = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParagraphSpacing(t *testing.T) {
	tests := []struct {
		name  string
		attrs document.Attrs
		text  string
		width float64
		wantY []float64
	}{
		{
			name:  "margins",
			attrs: document.Attrs{document.AttrMarginTop: 4.0, document.AttrMarginBottom: 6.0},
			text:  "a\nb",
			width: 100,
			wantY: []float64{12, 32},
		},
		{
			name:  "leading",
			attrs: document.Attrs{document.AttrLeading: 3.0},
			text:  "aaaa bbbb",
			width: 45,
			wantY: []float64{8, 21},
		},
		{
			name:  "line spacing",
			attrs: document.Attrs{document.AttrLineSpacing: 15.0},
			text:  "aaaa bbbb",
			width: 45,
			wantY: []float64{15, 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := monoDoc(tt.text)
			doc.SetStyle(0, doc.Len(), tt.attrs)
			l := Build(doc, mono(), WithSize(tt.width, 0))
			if len(l.Lines) != len(tt.wantY) {
				t.Fatalf("got %d lines, want %d", len(l.Lines), len(tt.wantY))
			}
			for i, y := range tt.wantY {
				if l.Lines[i].Y != y {
					t.Errorf("line %d Y = %v, want %v", i, l.Lines[i].Y, y)
				}
			}
		})
	}
}

func TestIndent(t *testing.T) {
	doc := monoDoc("aaaa bbbb")
	doc.SetStyle(0, doc.Len(), document.Attrs{document.AttrIndent: 10.0})
	l := Build(doc, mono(), WithSize(55, 0))

	want := []string{"aaaa ", "bbbb"}
	if got := lineTexts(doc, l.Lines); !slices.Equal(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	if l.Lines[0].X != 10 || l.Lines[1].X != 0 {
		t.Errorf("X = %v, %v; want 10, 0", l.Lines[0].X, l.Lines[1].X)
	}
}

func TestFontRunsSplitBoxes(t *testing.T) {
	doc := monoDoc("aabb")
	doc.SetStyle(2, 4, document.Attrs{document.AttrFontSize: 20.0})
	l := Build(doc, mono(), WithSize(1000, 0))

	line := l.Lines[0]
	if len(line.Boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(line.Boxes))
	}
	if line.Boxes[0].Owner == line.Boxes[1].Owner {
		t.Error("boxes of different fonts share an owner")
	}
	if line.Width != 60 || line.Ascent != 16 || line.Descent != 4 {
		t.Errorf("line width %v ascent %v descent %v, want 60 16 4", line.Width, line.Ascent, line.Descent)
	}
}

func TestInlineElement(t *testing.T) {
	doc := monoDoc("ab")
	el := &document.Element{Ascent: 20, Descent: 5, Advance: 30}
	doc.InsertElement(1, el, nil)
	l := Build(doc, mono(), WithSize(1000, 0))

	line := l.Lines[0]
	if len(line.Boxes) != 3 {
		t.Fatalf("got %d boxes, want 3", len(line.Boxes))
	}
	b := line.Boxes[1]
	if b.Kind != ElementBox || b.Element != el {
		t.Errorf("middle box = %v %p, want element %p", b.Kind, b.Element, el)
	}
	if line.Width != 50 || line.Ascent != 20 || line.Descent != 5 {
		t.Errorf("line width %v ascent %v descent %v, want 50 20 5", line.Width, line.Ascent, line.Descent)
	}
	q := b.Quads()
	if len(q) != 1 || q[0].Kind != QuadElement || q[0].X0 != 10 || q[0].X1 != 40 {
		t.Errorf("element quads = %+v", q)
	}
}

func TestKerningAttr(t *testing.T) {
	doc := monoDoc("abc")
	doc.SetStyle(0, 3, document.Attrs{document.AttrKerning: 2.0})
	l := Build(doc, mono(), WithSize(1000, 0))
	// The first glyph of a line is never kerned.
	if l.Lines[0].Width != 34 {
		t.Errorf("width = %v, want 34", l.Lines[0].Width)
	}
}

func TestGraphemeBounds(t *testing.T) {
	text := []rune("ae\u0301x")
	tests := []struct {
		start, end int
		wantS      int
		wantE      int
	}{
		{2, 3, 1, 3},
		{1, 2, 1, 3},
		{3, 4, 3, 4},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		s, e := graphemeBounds(text, tt.start, tt.end)
		if s != tt.wantS || e != tt.wantE {
			t.Errorf("graphemeBounds(%d, %d) = [%d, %d), want [%d, %d)",
				tt.start, tt.end, s, e, tt.wantS, tt.wantE)
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	text := ""
	for range 200 {
		text += "The quick brown fox jumps over the lazy dog. "
	}
	doc := monoDoc(text)
	src := glyph.NewCache(mono(), 0)
	b.ReportAllocs()
	for b.Loop() {
		Build(doc, src, WithSize(400, 0))
	}
}
