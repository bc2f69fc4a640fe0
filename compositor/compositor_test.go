package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpad/glyph"
	"github.com/framegrace/texelpad/grid"
	"github.com/framegrace/texelpad/layout"
	"github.com/framegrace/texelpad/theme"
)

// stubSource returns solid bitmaps and records every request.
type stubSource struct {
	w, h     int
	bmW, bmH int
	calls    []string
}

func (s *stubSource) RenderStyled(cluster string, fg color.RGBA, style glyph.Style) (*glyph.Bitmap, error) {
	s.calls = append(s.calls, cluster)
	w, h := s.bmW, s.bmH
	if w == 0 {
		w, h = s.w, s.h
	}
	bm := glyph.NewBitmap(w, h, false)
	for i := 0; i < len(bm.Pix); i += 4 {
		bm.Pix[i] = fg.R
		bm.Pix[i+1] = fg.G
		bm.Pix[i+2] = fg.B
		bm.Pix[i+3] = 255
	}
	return bm, nil
}

func (s *stubSource) CellSize() (int, int) { return s.w, s.h }

func testSetup(cols, rows int) (*stubSource, *Compositor, *image.RGBA, layout.Layout) {
	src := &stubSource{w: 10, h: 16}
	lay := layout.Compute(cols*10, rows*16, 10, 16, layout.Insets{}, 0)
	frame := image.NewRGBA(image.Rect(0, 0, lay.WidthPx, lay.HeightPx))
	return src, New(src, theme.Default()), frame, lay
}

func TestBlankGridFillsBackground(t *testing.T) {
	src, c, frame, lay := testSetup(4, 2)
	g := grid.New(4, 2)
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)

	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	if len(src.calls) != 0 {
		t.Fatalf("blank cells rasterized: %v", src.calls)
	}
	r, g2, b, a := frame.At(5, 5).RGBA()
	if r != 0 || g2 != 0 || b != 0 || a != 0xffff {
		t.Fatalf("background not painted: %d %d %d %d", r, g2, b, a)
	}
}

func TestUnchangedCellsSkipped(t *testing.T) {
	src, c, frame, lay := testSetup(4, 2)
	g := grid.New(4, 2)
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)
	g.SetString(0, 0, "hi", tcell.ColorWhite, tcell.ColorDefault, 0)

	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	if got := len(src.calls); got != 2 {
		t.Fatalf("first pass rendered %d glyphs, want 2", got)
	}

	src.calls = nil
	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	if len(src.calls) != 0 {
		t.Fatalf("second pass re-rendered %v", src.calls)
	}

	g.SetString(1, 0, "o", tcell.ColorWhite, tcell.ColorDefault, 0)
	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	if len(src.calls) != 1 || src.calls[0] != "o" {
		t.Fatalf("damage pass rendered %v, want [o]", src.calls)
	}
}

func TestContinuationNeverRasterized(t *testing.T) {
	src, c, frame, lay := testSetup(4, 1)
	g := grid.New(4, 1)
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)
	g.SetString(0, 0, "漢", tcell.ColorWhite, tcell.ColorDefault, 0)

	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	if len(src.calls) != 1 || src.calls[0] != "漢" {
		t.Fatalf("calls = %v, want one for the wide cell", src.calls)
	}
}

func TestOversizedBitmapStaysInCell(t *testing.T) {
	src, c, frame, lay := testSetup(3, 1)
	src.bmW, src.bmH = 40, 64 // four times the cell
	g := grid.New(3, 1)
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)
	g.SetString(1, 0, "A", tcell.ColorWhite, tcell.ColorDefault, 0)

	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	// Neighboring cells must stay untouched black.
	for _, x := range []int{5, 25} {
		r, _, _, _ := frame.At(x, 8).RGBA()
		if r != 0 {
			t.Fatalf("glyph leaked outside its cell at x=%d", x)
		}
	}
	r, _, _, _ := frame.At(15, 8).RGBA()
	if r == 0 {
		t.Fatal("scaled glyph missing from its own cell")
	}
}

func TestReverseSwapsColors(t *testing.T) {
	_, c, frame, lay := testSetup(2, 1)
	g := grid.New(2, 1)
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)
	g.Set(0, 0, grid.Cell{Grapheme: " ", Fg: tcell.ColorWhite, Bg: tcell.ColorDefault, Attrs: tcell.AttrReverse})

	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := frame.At(2, 2).RGBA()
	if r != 0xffff {
		t.Fatal("reversed cell background should take the foreground color")
	}
}

func TestCursorInverts(t *testing.T) {
	_, c, frame, lay := testSetup(3, 1)
	g := grid.New(3, 1)
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)
	g.SetCursor(1, 0)
	g.CursorVisible = true

	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := frame.At(15, 8).RGBA()
	if r != 0xffff {
		t.Fatal("cursor cell not inverted")
	}

	// Move the cursor; the old cell must return to background.
	g.SetCursor(2, 0)
	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}
	r, _, _, _ = frame.At(15, 8).RGBA()
	if r != 0 {
		t.Fatal("old cursor cell not restored")
	}
	r, _, _, _ = frame.At(25, 8).RGBA()
	if r != 0xffff {
		t.Fatal("new cursor cell not inverted")
	}
}

func TestGridResizeForcesRepaint(t *testing.T) {
	src, c, frame, lay := testSetup(4, 2)
	g := grid.New(4, 2)
	g.Clear(tcell.ColorDefault, tcell.ColorDefault)
	g.SetString(0, 0, "x", tcell.ColorWhite, tcell.ColorDefault, 0)
	if err := c.Composite(frame, g, lay); err != nil {
		t.Fatal(err)
	}

	g2 := g.Resize(5, 2)
	src.calls = nil
	lay2 := layout.Compute(50, 32, 10, 16, layout.Insets{}, 0)
	frame2 := image.NewRGBA(image.Rect(0, 0, 50, 32))
	if err := c.Composite(frame2, g2, lay2); err != nil {
		t.Fatal(err)
	}
	if len(src.calls) != 1 {
		t.Fatalf("resize pass rendered %v, want full repaint of the one glyph", src.calls)
	}
}
