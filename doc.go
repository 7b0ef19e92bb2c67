// Package textflow is an incremental rich-text layout engine.
//
// # Overview
//
// textflow turns a styled, editable text document into positioned lines of
// glyphs and keeps that layout up to date as the document changes. After
// each edit only the affected region is reshaped and reflowed, and only the
// lines inside the visible window are turned into geometry.
//
// # Quick Start
//
//	doc := document.New("Hello, world")
//	doc.SetStyle(0, 5, document.Attrs{document.AttrBold: true})
//
//	src := glyph.NewCache(glyph.NewOpenType(nil), 0)
//	eng := layout.New(doc, src, layout.WithSize(400, 300))
//	defer eng.Close()
//
//	doc.InsertText(5, ", dear", nil) // the engine updates itself
//	for i, line := range eng.VisibleLines() {
//	    fmt.Println(i, line.Y, doc.Slice(line.Start, line.Start+line.Length))
//	}
//
// # Architecture
//
// The module is organized into:
//   - runlist: run-length encoded per-character values and forward iterators
//   - document: text buffer, style attributes, paragraphs, change events
//   - glyph: glyph sources (monospace, OpenType tables, HarfBuzz) and caching
//   - layout: line breaking, vertical flow, the incremental engine and
//     geometry for the visible window
//
// # Logging
//
// The root package holds the shared logger. It is silent by default; see
// SetLogger.
package textflow
