// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: compositor/compositor.go
// Summary: Rasterizes a cell grid into an RGBA frame with damage tracking.

package compositor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/framegrace/texelpad/glyph"
	"github.com/framegrace/texelpad/grid"
	"github.com/framegrace/texelpad/layout"
	"github.com/framegrace/texelpad/theme"
)

// GlyphSource supplies cell-sized glyph bitmaps. *glyph.Renderer satisfies
// it; tests substitute a stub.
type GlyphSource interface {
	RenderStyled(cluster string, fg color.RGBA, style glyph.Style) (*glyph.Bitmap, error)
	CellSize() (width, height int)
}

// Compositor paints grids into a pixel frame. It remembers the previous
// grid so an unchanged cell costs nothing; callers reuse one compositor
// per surface.
type Compositor struct {
	src   GlyphSource
	theme *theme.Theme

	prev       *grid.Grid
	prevCurCol int
	prevCurRow int
	prevCurVis bool
}

// New returns a compositor that paints with the given glyph source and
// theme.
func New(src GlyphSource, th *theme.Theme) *Compositor {
	if th == nil {
		th = theme.Default()
	}
	return &Compositor{src: src, theme: th, prevCurCol: -1, prevCurRow: -1}
}

// Invalidate drops the remembered grid so the next pass repaints every
// cell. Call it after the frame buffer itself was replaced or resized.
func (c *Compositor) Invalidate() {
	c.prev = nil
	c.prevCurCol, c.prevCurRow = -1, -1
}

// Composite paints every damaged cell of g into frame. Cell geometry
// comes from lay; cells outside the frame are clipped. The pass is a
// full repaint when the grid size changed since the last call.
func (c *Compositor) Composite(frame *image.RGBA, g *grid.Grid, lay layout.Layout) error {
	if frame == nil {
		return fmt.Errorf("compositor: nil frame")
	}

	prev := c.prev
	if prev != nil && (prev.Cols() != g.Cols() || prev.Rows() != g.Rows()) {
		prev = nil
	}

	var firstErr error
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.At(col, row)
			if cell.Cont {
				// Painted by the wide cell to its left.
				continue
			}
			if prev != nil && cell.Equal(prev.At(col, row)) && !c.cursorDamaged(g, col, row, cell.Wide) {
				continue
			}
			if err := c.paintCell(frame, lay, col, row, cell); err != nil && firstErr == nil {
				firstErr = err
			}
			if cell.Wide {
				col++
			}
		}
	}

	if g.CursorVisible && g.InBounds(g.CursorCol, g.CursorRow) {
		c.invertCell(frame, lay, g.CursorCol, g.CursorRow, g.At(g.CursorCol, g.CursorRow).Wide)
	}

	c.prev = g.Clone()
	c.prevCurCol, c.prevCurRow = g.CursorCol, g.CursorRow
	c.prevCurVis = g.CursorVisible
	return firstErr
}

// cursorDamaged reports whether the cell must repaint because the cursor
// sits on it now or sat on it during the previous pass.
func (c *Compositor) cursorDamaged(g *grid.Grid, col, row int, wide bool) bool {
	hit := func(cc, cr int, vis bool) bool {
		if !vis || cr != row {
			return false
		}
		if cc == col {
			return true
		}
		return wide && cc == col+1
	}
	return hit(g.CursorCol, g.CursorRow, g.CursorVisible) ||
		hit(c.prevCurCol, c.prevCurRow, c.prevCurVis)
}

func (c *Compositor) paintCell(frame *image.RGBA, lay layout.Layout, col, row int, cell grid.Cell) error {
	fg := c.theme.FgRGBA(cell.Fg)
	bg := c.theme.BgRGBA(cell.Bg)
	if cell.Attrs&tcell.AttrReverse != 0 {
		fg, bg = bg, fg
	}
	if cell.Attrs&tcell.AttrDim != 0 {
		fg = theme.Dim(fg, 0.5)
	}

	x, y := lay.CellOrigin(col, row)
	span := lay.FontWidth
	if cell.Wide {
		span *= 2
	}
	fillRect(frame, x, y, span, lay.FontHeight, bg)

	if !cell.IsBlank() {
		var style glyph.Style
		if cell.Attrs&tcell.AttrBold != 0 {
			style |= glyph.StyleBold
		}
		if cell.Attrs&tcell.AttrItalic != 0 {
			style |= glyph.StyleItalic
		}
		bm, err := c.src.RenderStyled(cell.Grapheme, fg, style)
		if err != nil {
			return err
		}
		blit(frame, bm, x, y, span, lay.FontHeight)
	}

	if cell.Attrs&tcell.AttrUnderline != 0 {
		fillRect(frame, x, y+lay.FontHeight-1, span, 1, fg)
	}
	return nil
}

// blit draws a glyph bitmap into the cell rectangle at (x,y). Bitmaps
// larger than the cell are scaled down to fit; smaller ones are centered
// at native size. Pixels blend with straight alpha and the written alpha
// keeps the larger of the two channels so composited frames stay opaque
// where either layer was.
func blit(frame *image.RGBA, bm *glyph.Bitmap, x, y, cellW, cellH int) {
	if bm == nil || bm.Width == 0 || bm.Height == 0 {
		return
	}

	src := &image.RGBA{Pix: bm.Pix, Stride: bm.Width * 4, Rect: image.Rect(0, 0, bm.Width, bm.Height)}
	w, h := bm.Width, bm.Height

	scale := 1.0
	if s := float64(cellW) / float64(w); s < scale {
		scale = s
	}
	if s := float64(cellH) / float64(h); s < scale {
		scale = s
	}
	if scale < 1 {
		w = int(float64(bm.Width) * scale)
		h = int(float64(bm.Height) * scale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Rect, src, src.Rect, xdraw.Src, nil)
		src = scaled
	}

	dx := x + (cellW-w)/2
	dy := y + (cellH-h)/2
	for sy := 0; sy < h; sy++ {
		fy := dy + sy
		if fy < frame.Rect.Min.Y || fy >= frame.Rect.Max.Y {
			continue
		}
		for sx := 0; sx < w; sx++ {
			fx := dx + sx
			if fx < frame.Rect.Min.X || fx >= frame.Rect.Max.X {
				continue
			}
			si := src.PixOffset(sx, sy)
			a := src.Pix[si+3]
			if a == 0 {
				continue
			}
			di := frame.PixOffset(fx, fy)
			if a == 255 {
				copy(frame.Pix[di:di+4], src.Pix[si:si+4])
				continue
			}
			blend(frame.Pix[di:di+4], src.Pix[si:si+4], a)
		}
	}
}

// blend mixes src over dst with straight alpha in place.
func blend(dst, src []byte, a byte) {
	inv := 255 - int(a)
	for i := 0; i < 3; i++ {
		dst[i] = byte((int(src[i])*int(a) + int(dst[i])*inv) / 255)
	}
	if a > dst[3] {
		dst[3] = a
	}
}

func fillRect(frame *image.RGBA, x, y, w, h int, c color.RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(frame.Rect)
	for fy := r.Min.Y; fy < r.Max.Y; fy++ {
		i := frame.PixOffset(r.Min.X, fy)
		for fx := r.Min.X; fx < r.Max.X; fx++ {
			frame.Pix[i] = c.R
			frame.Pix[i+1] = c.G
			frame.Pix[i+2] = c.B
			frame.Pix[i+3] = c.A
			i += 4
		}
	}
}

func (c *Compositor) invertCell(frame *image.RGBA, lay layout.Layout, col, row int, wide bool) {
	x, y := lay.CellOrigin(col, row)
	span := lay.FontWidth
	if wide {
		span *= 2
	}
	r := image.Rect(x, y, x+span, y+lay.FontHeight).Intersect(frame.Rect)
	for fy := r.Min.Y; fy < r.Max.Y; fy++ {
		i := frame.PixOffset(r.Min.X, fy)
		for fx := r.Min.X; fx < r.Max.X; fx++ {
			frame.Pix[i] = 255 - frame.Pix[i]
			frame.Pix[i+1] = 255 - frame.Pix[i+1]
			frame.Pix[i+2] = 255 - frame.Pix[i+2]
			i += 4
		}
	}
}
