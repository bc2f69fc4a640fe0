package input

import "time"

// TouchAction is the raw pointer phase reported by the host.
type TouchAction int

const (
	TouchDown TouchAction = iota
	TouchMove
	TouchUp
	TouchCancel
)

// Touch is one raw pointer event in physical pixels. It lives for a single
// gesture.
type Touch struct {
	ID     int
	X, Y   int
	Action TouchAction
}

// EventToggleKeyboard asks the host to show or hide its soft keyboard. It
// implements tcell.Event so it can travel the same channel as key and
// mouse events.
type EventToggleKeyboard struct {
	t time.Time
}

// NewEventToggleKeyboard stamps a toggle request with the current time.
func NewEventToggleKeyboard() *EventToggleKeyboard {
	return &EventToggleKeyboard{t: time.Now()}
}

// When returns the event timestamp.
func (e *EventToggleKeyboard) When() time.Time { return e.t }
