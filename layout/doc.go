// Package layout breaks a styled document into lines and keeps them current
// as the document is edited.
//
// # Pipeline
//
// Layout runs in five stages, each driven by its own InvalidRange:
//
//  1. Glyphs: characters are shaped by a glyph.Source. Edited ranges are
//     widened to whole grapheme clusters (and whole paragraphs for sources
//     that kern or form ligatures).
//  2. Flow: shaped characters are broken into lines by greedy word wrap.
//     Reflow starts one line before the first edited line and stops as soon
//     as a new line starts where an old line did, past the edit.
//  3. Vertical flow: lines get baselines from margins, leading and line
//     spacing. Propagation stops once a line keeps its old position.
//  4. Visibility: the scroll offset and viewport height select the visible
//     window of lines.
//  5. Geometry: visible lines whose style or position changed get new quads.
//
// Lines outside the visible window keep their metadata but hold no
// geometry, so the cost of an edit does not grow with the document beyond
// line bookkeeping.
//
// # Coordinates
//
// Y grows downward. Line.Y is the baseline; Ascent extends above it and
// Descent below.
//
// # Static layout
//
// Build produces the same lines as an Engine in one pass and places all of
// them. It is meant for documents that do not change.
package layout
