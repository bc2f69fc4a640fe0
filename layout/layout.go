// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/layout.go
// Summary: Derives grid geometry from pixel size, font metrics and chrome.

package layout

// Insets is reserved screen-edge space occupied by host UI chrome such as
// a status bar or navigation bar.
type Insets struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Orientation of the physical surface.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// OrientationOf derives the orientation from pixel dimensions.
func OrientationOf(widthPx, heightPx int) Orientation {
	if widthPx > heightPx {
		return Landscape
	}
	return Portrait
}

// Layout captures one geometry computation. Values are never mutated in
// place; any change to physical size, orientation, insets, keyboard
// visibility or font size produces a wholesale replacement.
type Layout struct {
	Cols int
	Rows int

	FontWidth  int
	FontHeight int

	WidthPx  int
	HeightPx int
	Insets   Insets

	// KeyboardHeight is the on-screen keyboard band height (0 when
	// hidden); KeyboardY is the pixel row where the band starts.
	KeyboardHeight int
	KeyboardY      int

	Orientation Orientation
}

// Compute derives grid dimensions from the usable pixel area. Columns and
// rows are each at least 1 so the grid never degenerates.
func Compute(widthPx, heightPx, fontWidth, fontHeight int, insets Insets, keyboardHeight int) Layout {
	if fontWidth < 1 {
		fontWidth = 1
	}
	if fontHeight < 1 {
		fontHeight = 1
	}

	usableW := widthPx - insets.Left - insets.Right
	usableH := heightPx - insets.Top - insets.Bottom - keyboardHeight

	cols := usableW / fontWidth
	if cols < 1 {
		cols = 1
	}
	rows := usableH / fontHeight
	if rows < 1 {
		rows = 1
	}

	return Layout{
		Cols:           cols,
		Rows:           rows,
		FontWidth:      fontWidth,
		FontHeight:     fontHeight,
		WidthPx:        widthPx,
		HeightPx:       heightPx,
		Insets:         insets,
		KeyboardHeight: keyboardHeight,
		KeyboardY:      heightPx - insets.Bottom - keyboardHeight,
		Orientation:    OrientationOf(widthPx, heightPx),
	}
}

// CellOrigin returns the top-left pixel of a grid cell.
func (l Layout) CellOrigin(col, row int) (x, y int) {
	return l.Insets.Left + col*l.FontWidth, l.Insets.Top + row*l.FontHeight
}

// CellAt maps a pixel position to grid coordinates, clamped to bounds.
func (l Layout) CellAt(x, y int) (col, row int) {
	col = (x - l.Insets.Left) / l.FontWidth
	row = (y - l.Insets.Top) / l.FontHeight
	if col < 0 {
		col = 0
	}
	if col >= l.Cols {
		col = l.Cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= l.Rows {
		row = l.Rows - 1
	}
	return col, row
}

// ContentBottom is the first pixel row below the cell area.
func (l Layout) ContentBottom() int {
	return l.HeightPx - l.Insets.Bottom - l.KeyboardHeight
}

// InKeyboardBand reports whether the pixel row falls inside the virtual
// keyboard band.
func (l Layout) InKeyboardBand(y int) bool {
	return l.KeyboardHeight > 0 && y >= l.KeyboardY
}
