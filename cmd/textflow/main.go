// Command textflow lays out a text file and prints the lines visible in a
// viewport.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/textflow"
	"github.com/gogpu/textflow/document"
	"github.com/gogpu/textflow/glyph"
	"github.com/gogpu/textflow/internal/config"
	"github.com/gogpu/textflow/layout"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		width      = flag.Float64("width", 0, "viewport width")
		height     = flag.Float64("height", 0, "viewport height")
		scroll     = flag.Float64("scroll", 0, "viewport scroll offset")
		shaper     = flag.String("shaper", "", "glyph source: monospace, opentype or harfbuzz")
		fontFile   = flag.String("font", "", "TTF/OTF file used as the default font")
		size       = flag.Float64("size", 0, "font size")
		wrap       = flag.String("wrap", "", "wrap mode: word, char or none")
		appendText = flag.String("append", "", "text appended after the initial layout")
		verbose    = flag.Bool("v", false, "log layout updates to stderr")
	)
	flag.Parse()

	if *verbose {
		textflow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "scroll":
			cfg.Scroll = *scroll
		case "shaper":
			cfg.Shaper = *shaper
		case "font":
			cfg.Font.File = *fontFile
		case "size":
			cfg.Font.Size = *size
		case "wrap":
			cfg.Wrap = *wrap
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	src, err := cfg.Source()
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	doc := document.New(text, document.WithDefaults(cfg.DocumentDefaults()))
	eng := layout.New(doc, src,
		layout.WithSize(cfg.Width, cfg.Height),
		layout.WithTabWidth(cfg.TabWidth),
	)
	defer eng.Close()
	eng.SetScroll(cfg.Scroll)

	if *appendText != "" {
		doc.InsertText(doc.Len(), *appendText, nil)
		s := eng.LastUpdate()
		log.Printf("append: shaped %d, flowed %d lines, placed %d, released %d\n",
			s.Shaped, s.Flowed, s.Placed, s.Released)
	}

	printLines(os.Stdout, eng)

	if c, ok := src.(*glyph.Cache); ok {
		st := c.Stats()
		log.Printf("%d lines, content %.1fx%.1f, cache %d/%d entries (hit rate %.2f, %d evictions)\n",
			eng.LineCount(), eng.ContentWidth(), eng.ContentHeight(), st.Len, st.Capacity, st.HitRate, st.Evictions)
	}
}

func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	return string(data), err
}

func printLines(w io.Writer, eng *layout.Engine) {
	doc := eng.Document()
	for i, l := range eng.VisibleLines() {
		fmt.Fprintf(w, "%4d  y=%-8.1f x=%-7.1f w=%-7.1f %q\n", i, l.Y, l.X, l.Width, doc.Slice(l.Start, l.End()))
	}
}
