package layout

import (
	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/runlist"
)

// vflow assigns baselines to lines.
type vflow struct {
	marginTop    runlist.Iterator[float64]
	marginBottom runlist.Iterator[float64]
	lineSpacing  runlist.Iterator[float64]
	leading      runlist.Iterator[float64]
	width        float64
}

func newVFlow(doc *document.Document, width float64) *vflow {
	return &vflow{
		marginTop:    document.StyleRuns[float64](doc, document.AttrMarginTop),
		marginBottom: document.StyleRuns[float64](doc, document.AttrMarginBottom),
		lineSpacing:  document.StyleRuns[float64](doc, document.AttrLineSpacing),
		leading:      document.StyleRuns[float64](doc, document.AttrLeading),
		width:        width,
	}
}

// flow positions lines[start:] and returns the index it stopped at. Once a
// line at or past end keeps its previous position, the lines after it are
// unchanged and the pass stops there.
func (v *vflow) flow(lines []Line, start, end int) int {
	var y, spacing, leading float64
	if start > 0 {
		prev := &lines[start-1]
		y = prev.Y + prev.below
		spacing, leading = prev.spacing, prev.leading
	}

	for i := start; i < len(lines); i++ {
		l := &lines[i]
		if l.ParagraphBegin {
			y += v.marginTop.At(l.Start)
			spacing = v.lineSpacing.At(l.Start)
			leading = v.leading.At(l.Start)
		} else {
			y += leading
		}
		if spacing > 0 {
			y += spacing
		} else {
			y += l.Ascent
		}
		l.X = alignX(l, v.width)

		if i >= end && l.Y == y && l.spacing == spacing && l.leading == leading {
			return i
		}
		l.Y, l.spacing, l.leading = y, spacing, leading

		l.below = 0
		if spacing <= 0 {
			l.below = l.Descent
		}
		if l.ParagraphEnd {
			l.below += v.marginBottom.At(l.Start)
		}
		y += l.below
	}
	return len(lines)
}

// alignX returns the x origin of a line in a container of the given width.
// Lines wider than the container are left aligned.
func alignX(l *Line, width float64) float64 {
	if l.Width > width {
		return l.MarginLeft
	}
	switch l.Align {
	case document.AlignCenter:
		return (width-l.MarginLeft-l.MarginRight-l.Width)/2 + l.MarginLeft
	case document.AlignRight:
		return width - l.MarginRight - l.Width
	default:
		return l.MarginLeft
	}
}

// contentHeight returns the bottom of the last line.
func contentHeight(lines []Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	last := &lines[len(lines)-1]
	return last.Y + last.below
}
