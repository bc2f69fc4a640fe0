// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cell.go
// Summary: Cell model for the character grid.

package grid

import "github.com/gdamore/tcell/v2"

// Cell is one terminal grid position: a grapheme cluster plus styling.
// A wide cell spans two columns; the column to its right holds a
// continuation placeholder that is never rendered on its own.
type Cell struct {
	// Grapheme is one user-perceived character, normally a single
	// codepoint but possibly a multi-codepoint cluster. Empty means
	// blank.
	Grapheme string
	Fg       tcell.Color
	Bg       tcell.Color
	Attrs    tcell.AttrMask
	Wide     bool
	// Cont marks the reserved placeholder to the right of a wide cell.
	Cont bool
}

// Blank returns an empty cell carrying the given colors.
func Blank(fg, bg tcell.Color) Cell {
	return Cell{Fg: fg, Bg: bg}
}

// IsBlank reports whether the cell has nothing to rasterize.
func (c Cell) IsBlank() bool {
	return c.Cont || c.Grapheme == "" || c.Grapheme == " "
}

// Equal reports whether two cells would produce identical pixels.
func (c Cell) Equal(o Cell) bool {
	return c == o
}
