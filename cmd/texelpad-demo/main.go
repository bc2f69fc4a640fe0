// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpad-demo/main.go
// Summary: Renders a styled demo screen through the full engine to PNGs.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpad/bridge"
	"github.com/framegrace/texelpad/config"
	"github.com/framegrace/texelpad/engine"
	"github.com/framegrace/texelpad/glyph"
	"github.com/framegrace/texelpad/grid"
	"github.com/framegrace/texelpad/input"
	"github.com/framegrace/texelpad/internal/pngdump"
)

// boxService stands in for a host text service: it answers every
// renderCharacter call with a tinted outline box at the requested size.
// Useful for eyeballing the fallback path without a real host attached.
type boxService struct{}

func (boxService) RenderCharacter(_ context.Context, _ string, sizePx int, colorARGB uint32) ([]byte, error) {
	w := sizePx * 6 / 10
	if w < 4 {
		w = 4
	}
	fg := glyph.UnpackARGB(colorARGB)
	bm := &glyph.Bitmap{Width: w, Height: sizePx, Pix: make([]byte, w*sizePx*4)}
	for y := 0; y < sizePx; y++ {
		for x := 0; x < w; x++ {
			if x != 0 && x != w-1 && y != 0 && y != sizePx-1 {
				continue
			}
			o := (y*w + x) * 4
			bm.Pix[o] = fg.R
			bm.Pix[o+1] = fg.G
			bm.Pix[o+2] = fg.B
			bm.Pix[o+3] = fg.A
		}
	}
	return bridge.Encode(bm), nil
}

type demoApp struct {
	cols, rows int
	lastKey    string
}

func (a *demoApp) Run() error { return nil }
func (a *demoApp) Stop()      {}

func (a *demoApp) Resize(cols, rows int) {
	a.cols, a.rows = cols, rows
}

func (a *demoApp) HandleEvent(ev tcell.Event) {
	if key, ok := ev.(*tcell.EventKey); ok {
		if key.Key() == tcell.KeyRune {
			a.lastKey = string(key.Rune())
		} else {
			a.lastKey = key.Name()
		}
	}
}

func (a *demoApp) Draw(g *grid.Grid) {
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)

	row := 1
	g.SetString(2, row, "texelpad demo", tcell.ColorWhite, tcell.ColorDefault, tcell.AttrBold)
	row += 2
	g.SetString(2, row, "bold", tcell.ColorWhite, tcell.ColorDefault, tcell.AttrBold)
	g.SetString(8, row, "italic", tcell.ColorAqua, tcell.ColorDefault, tcell.AttrItalic)
	g.SetString(16, row, "underline", tcell.ColorYellow, tcell.ColorDefault, tcell.AttrUnderline)
	g.SetString(27, row, "reverse", tcell.ColorWhite, tcell.ColorDefault, tcell.AttrReverse)
	row += 2
	g.SetString(2, row, "wide: 漢字 ハンカク 한글", tcell.ColorGreen, tcell.ColorDefault, 0)
	row += 2
	g.SetString(2, row, "emoji: ☀ ☂ 🎉 🚀", tcell.ColorWhite, tcell.ColorDefault, 0)
	row += 2
	g.SetString(2, row, "box: ┌─┬─┐ │ ├ ┤ └─┴─┘", tcell.ColorSilver, tcell.ColorDefault, 0)
	row += 2
	if a.lastKey != "" {
		g.SetString(2, row, fmt.Sprintf("last key: %s", a.lastKey), tcell.ColorFuchsia, tcell.ColorDefault, 0)
	}

	g.SetCursor(2, row+2)
	g.CursorVisible = true
}

func main() {
	out := flag.String("out", "frames", "output directory for PNG frames")
	width := flag.Int("width", 720, "surface width in pixels")
	height := flag.Int("height", 1280, "surface height in pixels")
	duration := flag.Duration("duration", 2*time.Second, "how long to run the loop")
	useBridge := flag.Bool("bridge", false, "route glyphs through a stub host bridge")
	flag.Parse()

	cfg := config.LoadDefault()

	opts := engine.Options{Config: cfg}
	if *useBridge {
		opts.Config.PreferHostRenderer = true
		opts.Bridge = bridge.NewProvider(boxService{}, cfg.BridgeTimeout())
	}

	surface, err := pngdump.New(*out, *width, *height)
	if err != nil {
		log.Fatalf("surface: %v", err)
	}

	app := &demoApp{}
	eng, err := engine.New(app, surface, opts)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- eng.Run() }()

	// Tap a few virtual keys so the band renders pressed and latched
	// states in the captured frames. The band hugs the bottom edge and
	// the demo has no insets, so a near-bottom point always lands in it;
	// the engine owns the layout, so we do not read it from here.
	go func() {
		time.Sleep(300 * time.Millisecond)
		tap := input.Touch{X: *width / 2, Y: *height - 10}
		tap.Action = input.TouchDown
		eng.PostTouch(tap)
		time.Sleep(100 * time.Millisecond)
		tap.Action = input.TouchUp
		eng.PostTouch(tap)
	}()

	time.Sleep(*duration)
	eng.Stop()
	if err := <-done; err != nil {
		log.Fatalf("run: %v", err)
	}
	log.Printf("wrote %d frames to %s", surface.Frames(), *out)
}
