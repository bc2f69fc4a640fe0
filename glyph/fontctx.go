// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: glyph/fontctx.go
// Summary: Owned font context: parsed fonts and faces for one cell size.

package glyph

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Style selects a mono face variant. Underline and reverse are handled at
// blit time and never reach the rasterizer.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
)

// Emoji and special symbols render slightly smaller than the nominal cell
// font so they fit the grid visually.
const symbolScale = 0.9

// cellWidthFactor relates the nominal font size to the cell advance. It
// must match the grid spacing used by the compositor.
const cellWidthFactor = 0.6

// FontContext owns the faces for a single integral font size. It replaces
// the hidden global paint objects of a typical platform renderer: one
// context per size, rebuilt wholesale when the size changes.
type FontContext struct {
	sizePx int
	mono   map[Style]font.Face
	symbol font.Face
}

var monoSources = map[Style][]byte{
	0:                       gomono.TTF,
	StyleBold:               gomonobold.TTF,
	StyleItalic:             gomonoitalic.TTF,
	StyleBold | StyleItalic: gomonobolditalic.TTF,
}

// NewFontContext parses the embedded fonts and builds faces for sizePx.
func NewFontContext(sizePx int) (*FontContext, error) {
	if sizePx < 1 {
		return nil, fmt.Errorf("glyph: invalid font size %d", sizePx)
	}
	fc := &FontContext{sizePx: sizePx, mono: make(map[Style]font.Face, 4)}

	for style, data := range monoSources {
		face, err := newFace(data, float64(sizePx))
		if err != nil {
			fc.Close()
			return nil, fmt.Errorf("glyph: mono face (style %d): %w", style, err)
		}
		fc.mono[style] = face
	}

	symbol, err := newFace(goregular.TTF, float64(sizePx)*symbolScale)
	if err != nil {
		fc.Close()
		return nil, fmt.Errorf("glyph: symbol face: %w", err)
	}
	fc.symbol = symbol
	return fc, nil
}

func newFace(data []byte, sizePx float64) (font.Face, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	// DPI 72 makes the point size equal the pixel size.
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// SizePx returns the nominal cell font size this context was built for.
func (fc *FontContext) SizePx() int { return fc.sizePx }

// CellSize returns the cell advance in pixels for this context.
func (fc *FontContext) CellSize() (width, height int) {
	return CellMetrics(fc.sizePx)
}

// CellMetrics derives the cell advance from a font size without a context.
func CellMetrics(sizePx int) (width, height int) {
	return int(math.Ceil(float64(sizePx) * cellWidthFactor)), sizePx
}

// face picks the drawing face for a classified cluster: the monospace
// variants for narrow text, the broader-coverage face for emoji/symbols.
func (fc *FontContext) face(class Class, style Style) font.Face {
	if class.EmojiOrSpecial {
		return fc.symbol
	}
	if f, ok := fc.mono[style&(StyleBold|StyleItalic)]; ok {
		return f
	}
	return fc.mono[0]
}

// Close releases all faces. The context is unusable afterwards.
func (fc *FontContext) Close() error {
	var first error
	for _, f := range fc.mono {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	if fc.symbol != nil {
		if err := fc.symbol.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
