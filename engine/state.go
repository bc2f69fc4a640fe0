// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/state.go
// Summary: Binary layout snapshot saved across suspend/resume.

package engine

import (
	"encoding/binary"
	"errors"

	"github.com/framegrace/texelpad/layout"
)

// ErrShortState reports a truncated state blob.
var ErrShortState = errors.New("engine: short state blob")

const savedStateSize = 17

// SavedState is the layout snapshot written when the host pauses the
// engine. Hosts treat the encoded form as opaque bytes.
type SavedState struct {
	WidthPx     int
	HeightPx    int
	Orientation layout.Orientation
	StatusBarPx int
	NavBarPx    int
}

// Encode packs the snapshot little-endian: width u32, height u32,
// orientation u8, status bar u32, nav bar u32.
func (s SavedState) Encode() []byte {
	buf := make([]byte, savedStateSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(s.WidthPx))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(s.HeightPx))
	buf[8] = byte(s.Orientation)
	binary.LittleEndian.PutUint32(buf[9:13], uint32(s.StatusBarPx))
	binary.LittleEndian.PutUint32(buf[13:17], uint32(s.NavBarPx))
	return buf
}

// DecodeState unpacks a snapshot produced by Encode.
func DecodeState(data []byte) (SavedState, error) {
	if len(data) < savedStateSize {
		return SavedState{}, ErrShortState
	}
	return SavedState{
		WidthPx:     int(binary.LittleEndian.Uint32(data[0:4])),
		HeightPx:    int(binary.LittleEndian.Uint32(data[4:8])),
		Orientation: layout.Orientation(data[8]),
		StatusBarPx: int(binary.LittleEndian.Uint32(data[9:13])),
		NavBarPx:    int(binary.LittleEndian.Uint32(data[13:17])),
	}, nil
}
