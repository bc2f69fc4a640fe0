// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Color palette and tcell colour to RGBA translation.

package theme

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme resolves cell colours to concrete pixels. Reset is asymmetric on
// purpose: a reset foreground is the default text colour, a reset
// background is the screen colour.
type Theme struct {
	DefaultFg color.RGBA
	DefaultBg color.RGBA
	Cursor    color.RGBA
}

// Default returns white-on-black, the conventional terminal scheme.
func Default() *Theme {
	return &Theme{
		DefaultFg: color.RGBA{255, 255, 255, 255},
		DefaultBg: color.RGBA{0, 0, 0, 255},
		Cursor:    color.RGBA{200, 200, 200, 255},
	}
}

// FromHex builds a theme from hex colour strings, falling back to the
// defaults for any string that fails to parse.
func FromHex(fg, bg, cursor string) *Theme {
	t := Default()
	if c, err := colorful.Hex(fg); err == nil {
		t.DefaultFg = toRGBA(c)
	}
	if c, err := colorful.Hex(bg); err == nil {
		t.DefaultBg = toRGBA(c)
	}
	if c, err := colorful.Hex(cursor); err == nil {
		t.Cursor = toRGBA(c)
	}
	return t
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

// FgRGBA resolves a cell foreground colour.
func (t *Theme) FgRGBA(c tcell.Color) color.RGBA {
	if c == tcell.ColorDefault || c == tcell.ColorReset {
		return t.DefaultFg
	}
	return rgbaOf(c)
}

// BgRGBA resolves a cell background colour.
func (t *Theme) BgRGBA(c tcell.Color) color.RGBA {
	if c == tcell.ColorDefault || c == tcell.ColorReset {
		return t.DefaultBg
	}
	return rgbaOf(c)
}

func rgbaOf(c tcell.Color) color.RGBA {
	r, g, b := c.TrueColor().RGB()
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// Dim blends a colour toward black by f (0 = unchanged, 1 = black). Used
// for keyboard chrome and press-feedback decay.
func Dim(c color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	src := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	out := src.BlendRgb(colorful.Color{}, f)
	res := toRGBA(out)
	res.A = c.A
	return res
}
