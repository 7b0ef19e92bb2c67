package layout

import "github.com/gogpu/textflow/document"

// Line is one laid-out line of text.
//
// X and Y locate the left end of the baseline with y growing downward.
// Ascent and Descent are positive distances from the baseline. Width excludes
// trailing whitespace.
type Line struct {
	Start  int
	Length int

	X, Y    float64
	Ascent  float64
	Descent float64
	Width   float64

	MarginLeft  float64
	MarginRight float64
	Align       document.Align

	ParagraphBegin bool
	ParagraphEnd   bool

	// Boxes are released (Box.Placed false) while the line is outside the
	// visible window.
	Boxes []Box

	// Vertical flow state, kept so a partial pass can resume from the
	// previous line.
	spacing float64
	leading float64
	below   float64
}

// End returns the position just past the last character of the line.
func (l *Line) End() int {
	return l.Start + l.Length
}

// Top returns the y coordinate of the top of the line box.
func (l *Line) Top() float64 {
	return l.Y - l.Ascent
}

// Bottom returns the y coordinate of the bottom of the line box.
func (l *Line) Bottom() float64 {
	return l.Y + l.Descent
}

func (l *Line) addBox(b Box) {
	l.Boxes = append(l.Boxes, b)
	l.Ascent = max(l.Ascent, b.Ascent)
	l.Descent = max(l.Descent, b.Descent)
	l.Width += b.Advance
}

func (l *Line) addBoxes(boxes []Box) {
	for _, b := range boxes {
		l.addBox(b)
	}
}
