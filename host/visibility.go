// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/visibility.go
// Summary: Infers soft-keyboard visibility from window height changes.

package host

import "log"

// Visibility thresholds. A height change smaller than both the screen
// fraction and the absolute floor is treated as chrome jitter, not a
// keyboard transition.
const (
	visibleFraction = 0.15
	visibleFloorPx  = 100
	mismatchRatio   = 0.85
	mismatchDeltaPx = 50
)

// Detector tracks the visible window height reported by the host and
// infers whether the soft keyboard occludes the surface. The host has no
// direct visibility callback, so height deltas are the only signal; the
// detector also corrects stale state left behind by programmatic
// show/hide calls that the window resize never confirmed.
type Detector struct {
	screenHeight int
	prevHeight   int
	visible      bool
}

// NewDetector creates a detector for a screen of the given full height.
func NewDetector(screenHeight int) *Detector {
	return &Detector{screenHeight: screenHeight}
}

// Visible reports the current inferred keyboard state.
func (d *Detector) Visible() bool { return d.visible }

// OccludedHeight is the pixel height the keyboard takes when visible.
func (d *Detector) OccludedHeight() int {
	if !d.visible || d.prevHeight == 0 {
		return 0
	}
	return d.screenHeight - d.prevHeight
}

// SetVisible records a programmatic show/hide so detection does not fire
// a spurious transition on the matching window resize.
func (d *Detector) SetVisible(visible bool) {
	d.visible = visible
}

// Observe feeds one reported window height and returns whether the
// inferred visibility changed. The first observation only establishes the
// baseline.
func (d *Detector) Observe(windowHeight int) (changed, visible bool) {
	if d.prevHeight == 0 {
		d.prevHeight = windowHeight
		d.visible = false
		return false, false
	}

	diff := windowHeight - d.prevHeight
	if diff < 0 {
		diff = -diff
	}
	threshold := int(float64(d.screenHeight) * visibleFraction)
	if threshold < visibleFloorPx {
		threshold = visibleFloorPx
	}

	if diff > threshold {
		isVisible := windowHeight < d.prevHeight
		wasVisible := d.visible
		d.visible = isVisible
		d.prevHeight = windowHeight
		if isVisible != wasVisible {
			log.Printf("host: keyboard %s inferred from resize (%dpx delta)", visibilityWord(isVisible), diff)
			return true, isVisible
		}
		return false, isVisible
	}

	// No transition-sized change; sanity-check the held state against
	// the absolute height ratio.
	ratio := float64(windowHeight) / float64(d.screenHeight)
	likelyVisible := ratio < mismatchRatio
	if d.visible != likelyVisible && diff > mismatchDeltaPx {
		log.Printf("host: keyboard state mismatch corrected to %s (ratio %.2f)", visibilityWord(likelyVisible), ratio)
		d.visible = likelyVisible
		d.prevHeight = windowHeight
		return true, likelyVisible
	}

	d.prevHeight = windowHeight
	return false, d.visible
}

func visibilityWord(v bool) string {
	if v {
		return "visible"
	}
	return "hidden"
}
