// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vkeys/keyboard.go
// Summary: On-screen keyboard: button table, pixel regions, hit testing.

package vkeys

import (
	"time"
)

// Key names understood by the input mapper.
const (
	NameEsc      = "ESC"
	NameTab      = "TAB"
	NameShift    = "SHIFT"
	NameCtrl     = "CTRL"
	NameUp       = "UP"
	NameDown     = "DOWN"
	NameLeft     = "LEFT"
	NameRight    = "RIGHT"
	NameEnter    = "ENTER"
	NameDelete   = "DELETE"
	NameKeyboard = "KEYBOARD"
)

// Key is one button: its printed label, the key name it emits, and its
// width in layout units.
type Key struct {
	Label string
	Name  string
	Units int
}

// Region is a button's fixed rectangle in pixel space. The region table is
// stable for the lifetime of a layout.
type Region struct {
	Name       string
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Touch targets stop growing past this width even on very wide surfaces.
const maxButtonWidth = 150

// buttonGap is the spacing between adjacent buttons.
const buttonGap = 2

// Keyboard is the two-row on-screen key bar rendered at the bottom of the
// surface.
type Keyboard struct {
	row1    []Key
	row2    []Key
	row2Pad int

	// ButtonHeight is the per-row button height in pixels.
	ButtonHeight int
}

// DefaultButtonHeight suits handheld touch targets.
const DefaultButtonHeight = 90

// New builds the default layout: controls and arrows on top, the remaining
// arrows plus the soft-keyboard toggle below.
func New(buttonHeight int) *Keyboard {
	if buttonHeight < 8 {
		buttonHeight = DefaultButtonHeight
	}
	return &Keyboard{
		row1: []Key{
			{Label: "ESC", Name: NameEsc, Units: 1},
			{Label: "TAB", Name: NameTab, Units: 1},
			{Label: "SFT", Name: NameShift, Units: 1},
			{Label: "CTL", Name: NameCtrl, Units: 1},
			{Label: "^", Name: NameUp, Units: 1},
			{Label: "DEL", Name: NameDelete, Units: 1},
			{Label: "RET", Name: NameEnter, Units: 1},
		},
		row2: []Key{
			{Label: "<", Name: NameLeft, Units: 1},
			{Label: "v", Name: NameDown, Units: 1},
			{Label: ">", Name: NameRight, Units: 1},
			{Label: "KB", Name: NameKeyboard, Units: 1},
		},
		row2Pad:      3,
		ButtonHeight: buttonHeight,
	}
}

// HeightPx is the total band height: two button rows plus separators.
func (k *Keyboard) HeightPx() int {
	return k.ButtonHeight*2 + 4
}

func (k *Keyboard) geometry(windowWidth int) (buttonWidth, keyboardX int) {
	totalUnits := 0
	for _, b := range k.row1 {
		totalUnits += b.Units
	}
	buttonWidth = windowWidth / totalUnits
	if buttonWidth > maxButtonWidth {
		buttonWidth = maxButtonWidth
	}
	keyboardX = (windowWidth - buttonWidth*totalUnits) / 2
	if keyboardX < 0 {
		keyboardX = 0
	}
	return buttonWidth, keyboardX
}

// Regions returns the button rectangles for a surface of the given width
// with the band starting at keyboardY. The table order is the hit-test
// order; first match wins.
func (k *Keyboard) Regions(windowWidth, keyboardY int) []Region {
	buttonWidth, keyboardX := k.geometry(windowWidth)

	regions := make([]Region, 0, len(k.row1)+len(k.row2))

	y := keyboardY + 1
	x := keyboardX
	for _, b := range k.row1 {
		w := buttonWidth * b.Units
		regions = append(regions, Region{Name: b.Name, X: x, Y: y, W: w, H: k.ButtonHeight})
		x += w + buttonGap
	}

	y = keyboardY + k.ButtonHeight + 3
	x = keyboardX + buttonWidth*k.row2Pad + buttonGap*k.row2Pad
	for _, b := range k.row2 {
		w := buttonWidth * b.Units
		regions = append(regions, Region{Name: b.Name, X: x, Y: y, W: w, H: k.ButtonHeight})
		x += w + buttonGap
	}
	return regions
}

// HitTest finds the first region containing (x, y), in table order.
func HitTest(regions []Region, x, y int) (string, bool) {
	for _, r := range regions {
		if r.Contains(x, y) {
			return r.Name, true
		}
	}
	return "", false
}

// feedbackWindow is how long a pressed button keeps its highlight.
const feedbackWindow = 200 * time.Millisecond

// State tracks latched modifiers and the currently pressed virtual key.
// Only the input mapper mutates it.
type State struct {
	ShiftActive bool
	CtrlActive  bool
	PressedKey  string

	pressedAt time.Time
}

// SetPressed records a press for visual feedback.
func (s *State) SetPressed(name string) {
	s.PressedKey = name
	s.pressedAt = time.Now()
}

// ClearPressed drops the transient press state.
func (s *State) ClearPressed() {
	s.PressedKey = ""
	s.pressedAt = time.Time{}
}

// ToggleShift flips the shift latch.
func (s *State) ToggleShift() { s.ShiftActive = !s.ShiftActive }

// ToggleCtrl flips the ctrl latch.
func (s *State) ToggleCtrl() { s.CtrlActive = !s.CtrlActive }

// FeedbackActive reports whether the press highlight should still show.
func (s *State) FeedbackActive(now time.Time) bool {
	if s.PressedKey == "" {
		return false
	}
	return now.Sub(s.pressedAt) < feedbackWindow
}
