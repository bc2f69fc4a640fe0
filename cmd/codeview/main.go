// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/codeview/main.go
// Summary: Highlights a source file into the cell grid and writes a PNG.

package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/framegrace/texelpad/compositor"
	"github.com/framegrace/texelpad/config"
	"github.com/framegrace/texelpad/glyph"
	"github.com/framegrace/texelpad/grid"
	"github.com/framegrace/texelpad/internal/highlight"
	"github.com/framegrace/texelpad/layout"
	"github.com/framegrace/texelpad/theme"
)

func main() {
	out := flag.String("out", "codeview.png", "output PNG path")
	cols := flag.Int("cols", 100, "grid columns")
	style := flag.String("style", "", "chroma style name")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: codeview [flags] <source-file>")
	}
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}

	cfg := config.LoadDefault()
	renderer, err := glyph.NewRenderer(glyph.Config{
		SizePx:        cfg.FontSizePx,
		CacheCapacity: cfg.CacheCapacity,
	})
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer renderer.Close()

	lines := highlight.Source(path, string(source), *style)

	rows := len(lines)
	if rows < 1 {
		rows = 1
	}
	g := grid.New(*cols, rows)

	fw, fh := renderer.CellSize()
	lay := layout.Compute(*cols*fw, rows*fh, fw, fh, layout.Insets{}, 0)
	highlight.Draw(g, lines, 0)

	frame := image.NewRGBA(image.Rect(0, 0, lay.WidthPx, lay.HeightPx))
	th := theme.FromHex(cfg.Theme.Foreground, cfg.Theme.Background, cfg.Theme.Cursor)
	comp := compositor.New(renderer, th)
	if err := comp.Composite(frame, g, lay); err != nil {
		log.Printf("composite: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		log.Fatalf("encode: %v", err)
	}
	log.Printf("wrote %s (%dx%d cells, language %s)", *out, g.Cols(), g.Rows(),
		highlight.DetectLanguage(path, source))
}
