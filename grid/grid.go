// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/grid.go
// Summary: Row-major cell grid with cursor state and wholesale resize.

package grid

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/framegrace/texelpad/glyph"
)

// Grid is a rectangular, row-major array of cells plus cursor state. Its
// dimensions always match the last layout computation; resizing replaces
// the grid rather than mutating it partially.
type Grid struct {
	cols, rows int
	cells      []Cell

	CursorCol     int
	CursorRow     int
	CursorVisible bool
}

// New allocates a blank grid. Dimensions are clamped to at least 1×1.
func New(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]Cell, cols*rows),
	}
}

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (col, row) addresses a cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// At returns the cell at (col, row), or a blank cell out of bounds.
func (g *Grid) At(col, row int) Cell {
	if !g.InBounds(col, row) {
		return Cell{}
	}
	return g.cells[row*g.cols+col]
}

// Set places a cell. A wide cell also claims col+1 with a continuation
// placeholder; a wide cell that would not fit is dropped entirely rather
// than leaving a dangling half.
func (g *Grid) Set(col, row int, c Cell) {
	if !g.InBounds(col, row) {
		return
	}
	if c.Wide {
		if col+1 >= g.cols {
			return
		}
		// Both claimed columns may overlap existing wide pairs; blank
		// the other halves first so no head or continuation dangles.
		g.clearWidePair(col, row)
		g.clearWidePair(col+1, row)
		g.cells[row*g.cols+col] = c
		g.cells[row*g.cols+col+1] = Cell{Fg: c.Fg, Bg: c.Bg, Cont: true}
		return
	}
	// Overwriting half of a wide pair blanks the other half.
	g.clearWidePair(col, row)
	g.cells[row*g.cols+col] = c
}

func (g *Grid) clearWidePair(col, row int) {
	idx := row*g.cols + col
	if g.cells[idx].Cont && col > 0 && g.cells[idx-1].Wide {
		g.cells[idx-1] = Cell{Fg: g.cells[idx-1].Fg, Bg: g.cells[idx-1].Bg}
	}
	if g.cells[idx].Wide && col+1 < g.cols {
		g.cells[idx+1] = Cell{Fg: g.cells[idx].Fg, Bg: g.cells[idx].Bg}
	}
}

// SetString writes s starting at (col, row), segmenting into grapheme
// clusters and advancing by display width. It returns the column after the
// last written cell. Text never wraps; overflow is clipped.
func (g *Grid) SetString(col, row int, s string, fg, bg tcell.Color, attrs tcell.AttrMask) int {
	state := -1
	var cluster string
	for rest := s; rest != ""; {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		wide := glyph.IsWide(cluster)
		if !wide && runewidth.StringWidth(cluster) >= 2 {
			wide = true
		}
		if !g.InBounds(col, row) {
			break
		}
		g.Set(col, row, Cell{Grapheme: cluster, Fg: fg, Bg: bg, Attrs: attrs, Wide: wide})
		if wide {
			col += 2
		} else {
			col++
		}
	}
	return col
}

// Fill paints every cell with c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Clear resets every cell to blank with the given colors.
func (g *Grid) Clear(fg, bg tcell.Color) {
	g.Fill(Blank(fg, bg))
}

// SetCursor moves the cursor, clamping to bounds.
func (g *Grid) SetCursor(col, row int) {
	if col < 0 {
		col = 0
	}
	if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	g.CursorCol, g.CursorRow = col, row
}

// Resize returns a new grid of the requested size, copying the overlapping
// region. Cells outside the new bounds are discarded, new cells are blank.
// The receiver is left untouched; replacement is always wholesale.
func (g *Grid) Resize(cols, rows int) *Grid {
	ng := New(cols, rows)
	for row := 0; row < rows && row < g.rows; row++ {
		for col := 0; col < cols && col < g.cols; col++ {
			c := g.At(col, row)
			// A wide cell whose continuation got clipped off must
			// not survive as a half glyph.
			if c.Wide && col+1 >= cols {
				continue
			}
			ng.cells[row*cols+col] = c
		}
	}
	ng.CursorCol, ng.CursorRow = g.CursorCol, g.CursorRow
	ng.CursorVisible = g.CursorVisible
	if ng.CursorCol >= cols {
		ng.CursorCol = cols - 1
	}
	if ng.CursorRow >= rows {
		ng.CursorRow = rows - 1
	}
	return ng
}

// Clone returns a deep copy, used by the compositor to retain the previous
// frame's contents for damage diffing.
func (g *Grid) Clone() *Grid {
	ng := &Grid{
		cols:          g.cols,
		rows:          g.rows,
		cells:         make([]Cell, len(g.cells)),
		CursorCol:     g.CursorCol,
		CursorRow:     g.CursorRow,
		CursorVisible: g.CursorVisible,
	}
	copy(ng.cells, g.cells)
	return ng
}
