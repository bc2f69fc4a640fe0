// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/mapper.go
// Summary: Maps raw pointer/key hardware events to terminal events.

package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpad/layout"
	"github.com/framegrace/texelpad/vkeys"
)

// Mapper converts raw host input into terminal events. It owns the
// keyboard latch state; SHIFT and CTRL are toggles that persist across key
// presses until explicitly re-toggled, so sequences like Ctrl+Arrow work
// without multi-touch.
type Mapper struct {
	state vkeys.State
}

// NewMapper returns a mapper with cleared latches.
func NewMapper() *Mapper {
	return &Mapper{}
}

// State exposes the keyboard state for rendering the key band.
func (m *Mapper) State() *vkeys.State { return &m.state }

// MapTouch translates one pointer event. Touches inside the keyboard band
// are hit-tested against the region table (first match wins); touches on
// the grid become mouse-style events in cell coordinates. A nil return
// means the event is consumed or ignored.
func (m *Mapper) MapTouch(t Touch, lay layout.Layout, regions []vkeys.Region) tcell.Event {
	if lay.InKeyboardBand(t.Y) {
		return m.mapKeyboardTouch(t, regions)
	}

	col, row := lay.CellAt(t.X, t.Y)
	switch t.Action {
	case TouchDown, TouchMove:
		return tcell.NewEventMouse(col, row, tcell.Button1, m.modifiers())
	case TouchUp:
		return tcell.NewEventMouse(col, row, tcell.ButtonNone, m.modifiers())
	default:
		return nil
	}
}

func (m *Mapper) mapKeyboardTouch(t Touch, regions []vkeys.Region) tcell.Event {
	switch t.Action {
	case TouchUp, TouchCancel:
		m.state.ClearPressed()
		return nil
	case TouchMove:
		return nil
	}

	name, ok := vkeys.HitTest(regions, t.X, t.Y)
	if !ok {
		return nil
	}
	m.state.SetPressed(name)

	switch name {
	case vkeys.NameShift:
		m.state.ToggleShift()
		return nil
	case vkeys.NameCtrl:
		m.state.ToggleCtrl()
		return nil
	case vkeys.NameKeyboard:
		return NewEventToggleKeyboard()
	}
	return KeyEvent(name, m.state.ShiftActive, m.state.CtrlActive)
}

// MapKeyName translates a virtual key name using the current latches.
// Modifier names toggle their latch and emit nothing.
func (m *Mapper) MapKeyName(name string) tcell.Event {
	switch name {
	case vkeys.NameShift:
		m.state.ToggleShift()
		return nil
	case vkeys.NameCtrl:
		m.state.ToggleCtrl()
		return nil
	case vkeys.NameKeyboard:
		return NewEventToggleKeyboard()
	}
	return KeyEvent(name, m.state.ShiftActive, m.state.CtrlActive)
}

func (m *Mapper) modifiers() tcell.ModMask {
	var mods tcell.ModMask
	if m.state.ShiftActive {
		mods |= tcell.ModShift
	}
	if m.state.CtrlActive {
		mods |= tcell.ModCtrl
	}
	return mods
}

// KeyEvent builds a terminal key event for a virtual key name combined
// with latch state. Unknown names yield nil.
func KeyEvent(name string, shift, ctrl bool) tcell.Event {
	var mods tcell.ModMask
	if shift {
		mods |= tcell.ModShift
	}
	if ctrl {
		mods |= tcell.ModCtrl
	}

	switch name {
	case vkeys.NameEsc:
		return tcell.NewEventKey(tcell.KeyEscape, 0, mods)
	case vkeys.NameTab:
		return tcell.NewEventKey(tcell.KeyTab, 0, mods)
	case vkeys.NameUp:
		return tcell.NewEventKey(tcell.KeyUp, 0, mods)
	case vkeys.NameDown:
		return tcell.NewEventKey(tcell.KeyDown, 0, mods)
	case vkeys.NameLeft:
		return tcell.NewEventKey(tcell.KeyLeft, 0, mods)
	case vkeys.NameRight:
		return tcell.NewEventKey(tcell.KeyRight, 0, mods)
	case vkeys.NameEnter:
		return tcell.NewEventKey(tcell.KeyEnter, 0, mods)
	case vkeys.NameDelete:
		return tcell.NewEventKey(tcell.KeyDelete, 0, mods)
	case "BACKSPACE":
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, mods)
	case "SPACE":
		return tcell.NewEventKey(tcell.KeyRune, ' ', mods)
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return nil
	}
	r := runes[0]
	if shift {
		r = unicode.ToUpper(r)
	} else {
		r = unicode.ToLower(r)
	}
	return tcell.NewEventKey(tcell.KeyRune, r, mods)
}

// Android-style hardware key codes understood by MapKey.
const (
	rawKeyUp        = 19
	rawKeyDown      = 20
	rawKeyLeft      = 21
	rawKeyRight     = 22
	rawKeyTab       = 61
	rawKeySpace     = 62
	rawKeyEnter     = 66
	rawKeyBackspace = 67
	rawKeyEscape    = 111
	rawKeyDelete    = 112
	rawKeyA         = 29 // KEYCODE_A; letters are contiguous through Z
	rawKeyZ         = 54
	rawKey0         = 7 // KEYCODE_0; digits are contiguous through 9
	rawKey9         = 16
)

// MapKey translates a hardware key code plus explicit modifier state into
// a terminal event. The mapper's latches are OR-ed in so the virtual and
// physical keyboards compose.
func (m *Mapper) MapKey(keyCode int, mods tcell.ModMask) tcell.Event {
	shift := mods&tcell.ModShift != 0 || m.state.ShiftActive
	ctrl := mods&tcell.ModCtrl != 0 || m.state.CtrlActive

	switch keyCode {
	case rawKeyUp:
		return KeyEvent(vkeys.NameUp, shift, ctrl)
	case rawKeyDown:
		return KeyEvent(vkeys.NameDown, shift, ctrl)
	case rawKeyLeft:
		return KeyEvent(vkeys.NameLeft, shift, ctrl)
	case rawKeyRight:
		return KeyEvent(vkeys.NameRight, shift, ctrl)
	case rawKeyTab:
		return KeyEvent(vkeys.NameTab, shift, ctrl)
	case rawKeySpace:
		return KeyEvent("SPACE", shift, ctrl)
	case rawKeyEnter:
		return KeyEvent(vkeys.NameEnter, shift, ctrl)
	case rawKeyBackspace:
		return KeyEvent("BACKSPACE", shift, ctrl)
	case rawKeyEscape:
		return KeyEvent(vkeys.NameEsc, shift, ctrl)
	case rawKeyDelete:
		return KeyEvent(vkeys.NameDelete, shift, ctrl)
	}
	if keyCode >= rawKeyA && keyCode <= rawKeyZ {
		return KeyEvent(string(rune('a'+keyCode-rawKeyA)), shift, ctrl)
	}
	if keyCode >= rawKey0 && keyCode <= rawKey9 {
		return KeyEvent(string(rune('0'+keyCode-rawKey0)), shift, ctrl)
	}
	return nil
}
