// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vkeys/render.go
// Summary: Draws the keyboard band directly into the frame buffer.

package vkeys

import (
	"image"
	"image/color"
	"time"

	"github.com/framegrace/texelpad/theme"
)

// Band colors.
var (
	bandBg    = color.RGBA{20, 20, 20, 255}
	buttonBg  = color.RGBA{40, 40, 40, 255}
	pressedBg = color.RGBA{0, 200, 100, 255}
	latchedBg = color.RGBA{0, 150, 200, 255}
	accentBg  = color.RGBA{50, 80, 200, 255}
	labelFg   = color.RGBA{255, 255, 255, 255}
	arrowFg   = color.RGBA{255, 220, 100, 255}
	borderFg  = color.RGBA{80, 80, 80, 255}
)

// Render paints the keyboard band and its buttons into frame. The band
// occupies [keyboardY, keyboardY+HeightPx) across the full surface width.
func (k *Keyboard) Render(st *State, frame *image.RGBA, windowWidth, keyboardY int) {
	now := time.Now()
	feedback := st.FeedbackActive(now)

	fillRect(frame, 0, keyboardY, windowWidth, k.HeightPx(), bandBg)

	for _, r := range k.Regions(windowWidth, keyboardY) {
		k.drawButton(frame, r, st, feedback)
	}
}

func (k *Keyboard) drawButton(frame *image.RGBA, r Region, st *State, feedback bool) {
	pressed := feedback && st.PressedKey == r.Name
	latched := (r.Name == NameShift && st.ShiftActive) || (r.Name == NameCtrl && st.CtrlActive)
	accent := r.Name == NameEnter || r.Name == NameKeyboard
	arrow := r.Name == NameUp || r.Name == NameDown || r.Name == NameLeft || r.Name == NameRight

	bg := buttonBg
	switch {
	case pressed:
		bg = pressedBg
	case latched:
		bg = latchedBg
	case accent:
		bg = accentBg
	}

	fillRect(frame, r.X, r.Y, r.W, r.H, bg)
	strokeRect(frame, r.X, r.Y, r.W, r.H, borderFg)

	fg := labelFg
	if arrow {
		fg = arrowFg
	}
	if pressed {
		fg = theme.Dim(fg, 0.1)
	}
	drawLabel(frame, r.X, r.Y, r.W, r.H, labelFor(k, r.Name), fg)
}

func labelFor(k *Keyboard, name string) string {
	for _, b := range k.row1 {
		if b.Name == name {
			return b.Label
		}
	}
	for _, b := range k.row2 {
		if b.Name == name {
			return b.Label
		}
	}
	return name
}

func fillRect(frame *image.RGBA, x, y, w, h int, c color.RGBA) {
	bounds := frame.Bounds()
	x0, y0 := max(x, bounds.Min.X), max(y, bounds.Min.Y)
	x1, y1 := min(x+w, bounds.Max.X), min(y+h, bounds.Max.Y)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			frame.SetRGBA(px, py, c)
		}
	}
}

func strokeRect(frame *image.RGBA, x, y, w, h int, c color.RGBA) {
	fillRect(frame, x, y, w, 1, c)
	fillRect(frame, x, y+h-1, w, 1, c)
	fillRect(frame, x, y, 1, h, c)
	fillRect(frame, x+w-1, y, 1, h, c)
}
