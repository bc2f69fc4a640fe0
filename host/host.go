// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/host.go
// Summary: Host collaborator surface: insets, soft keyboard, lifecycle.

package host

import (
	"errors"
	"log"

	"github.com/framegrace/texelpad/layout"
)

var (
	// ErrInsetQuery reports that the rich inset API is unavailable.
	ErrInsetQuery = errors.New("host: inset query failed")
	// ErrKeyboardToggle reports that an IME show/hide call was refused.
	ErrKeyboardToggle = errors.New("host: keyboard toggle failed")
)

// InsetSource reports the screen area reserved by host chrome.
type InsetSource interface {
	Insets() (layout.Insets, error)
}

// CoarseInsets is the fallback source built from the host's status-bar and
// navigation-bar dimension lookup. It never fails.
type CoarseInsets struct {
	StatusBar int
	NavBar    int
}

func (c CoarseInsets) Insets() (layout.Insets, error) {
	return layout.Insets{Top: c.StatusBar, Bottom: c.NavBar}, nil
}

// QueryInsets asks primary first and falls through to fallback, then to
// zero insets. Failures are logged, never propagated; a frame with wrong
// insets beats no frame.
func QueryInsets(primary, fallback InsetSource) layout.Insets {
	if primary != nil {
		in, err := primary.Insets()
		if err == nil {
			return in
		}
		log.Printf("host: inset query failed, using fallback: %v", err)
	}
	if fallback != nil {
		in, err := fallback.Insets()
		if err == nil {
			return in
		}
		log.Printf("host: fallback inset query failed, using zero insets: %v", err)
	}
	return layout.Insets{}
}

// IME is one host API for showing and hiding the soft keyboard.
type IME interface {
	ShowSoftKeyboard() error
	HideSoftKeyboard() error
}

// Toggler drives the soft keyboard through a primary IME API with one
// alternate attempt on refusal. Both failing is logged and dropped; an
// unresponsive keyboard is not worth crashing over.
type Toggler struct {
	Primary   IME
	Alternate IME
}

// Show requests the soft keyboard. Safe to call from any goroutine.
func (t *Toggler) Show() {
	t.drive("show", IME.ShowSoftKeyboard)
}

// Hide dismisses the soft keyboard. Safe to call from any goroutine.
func (t *Toggler) Hide() {
	t.drive("hide", IME.HideSoftKeyboard)
}

func (t *Toggler) drive(op string, call func(IME) error) {
	if t.Primary != nil {
		if err := call(t.Primary); err == nil {
			return
		}
	}
	if t.Alternate != nil {
		if err := call(t.Alternate); err == nil {
			log.Printf("host: keyboard %s succeeded via alternate API", op)
			return
		}
	}
	log.Printf("host: keyboard %s dropped: %v", op, ErrKeyboardToggle)
}

// StaticInsets is a fixed source for tests and desktop demos.
type StaticInsets layout.Insets

func (s StaticInsets) Insets() (layout.Insets, error) {
	return layout.Insets(s), nil
}
