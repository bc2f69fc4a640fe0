package vkeys

import (
	"image"
	"image/color"
)

// 5x7 bitmap font for button labels. The keyboard band bypasses the glyph
// rasterizer entirely so it stays legible even when font loading fails.
const (
	microW       = 5
	microH       = 7
	microSpacing = 1
)

var microGlyphs = map[rune][microH]uint8{
	'A': {0b01110, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'B': {0b11110, 0b10001, 0b10001, 0b11110, 0b10001, 0b10001, 0b11110},
	'C': {0b01110, 0b10001, 0b10000, 0b10000, 0b10000, 0b10001, 0b01110},
	'D': {0b11110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b11110},
	'E': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b11111},
	'F': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b10000},
	'G': {0b01110, 0b10001, 0b10000, 0b10111, 0b10001, 0b10001, 0b01110},
	'H': {0b10001, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'I': {0b01110, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	'K': {0b10001, 0b10010, 0b10100, 0b11000, 0b10100, 0b10010, 0b10001},
	'L': {0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b11111},
	'R': {0b11110, 0b10001, 0b10001, 0b11110, 0b10100, 0b10010, 0b10001},
	'S': {0b01111, 0b10000, 0b10000, 0b01110, 0b00001, 0b00001, 0b11110},
	'T': {0b11111, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100},
	'^': {0b00100, 0b01110, 0b10101, 0b00100, 0b00100, 0b00100, 0b00000},
	'v': {0b00000, 0b00100, 0b00100, 0b00100, 0b10101, 0b01110, 0b00100},
	'<': {0b00010, 0b00100, 0b01000, 0b10000, 0b01000, 0b00100, 0b00010},
	'>': {0b01000, 0b00100, 0b00010, 0b00001, 0b00010, 0b00100, 0b01000},
}

// drawLabel centers text inside the button rectangle.
func drawLabel(frame *image.RGBA, x, y, w, h int, text string, fg color.RGBA) {
	runes := []rune(text)
	textW := len(runes)*(microW+microSpacing) - microSpacing
	startX := x + (w-textW)/2
	startY := y + (h-microH)/2

	for i, r := range runes {
		drawMicroGlyph(frame, startX+i*(microW+microSpacing), startY, r, fg)
	}
}

func drawMicroGlyph(frame *image.RGBA, x, y int, r rune, fg color.RGBA) {
	pattern, ok := microGlyphs[r]
	if !ok {
		return
	}
	bounds := frame.Bounds()
	for row, bits := range pattern {
		for col := 0; col < microW; col++ {
			if (bits>>(microW-1-col))&1 == 0 {
				continue
			}
			px, py := x+col, y+row
			if px < bounds.Min.X || py < bounds.Min.Y || px >= bounds.Max.X || py >= bounds.Max.Y {
				continue
			}
			frame.SetRGBA(px, py, fg)
		}
	}
}
