// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/pngdump/pngdump.go
// Summary: Engine surface that writes every presented frame as a PNG.

package pngdump

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

// Surface stands in for a device framebuffer by dumping frames to
// numbered PNG files. It is the presentation target for the desktop
// demos.
type Surface struct {
	dir  string
	w, h int

	mu sync.Mutex
	n  int
}

// New creates the output directory and returns a surface of the given
// pixel size.
func New(dir string, width, height int) (*Surface, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	return &Surface{dir: dir, w: width, h: height}, nil
}

// Size reports the surface dimensions in pixels.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// SetSize changes the reported dimensions; the engine picks it up on the
// next resize event.
func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = width, height
}

// Present writes the frame as frame-NNNN.png.
func (s *Surface) Present(frame *image.RGBA) error {
	s.mu.Lock()
	name := filepath.Join(s.dir, fmt.Sprintf("frame-%04d.png", s.n))
	s.n++
	s.mu.Unlock()

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return nil
}

// Frames reports how many frames were written so far.
func (s *Surface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
