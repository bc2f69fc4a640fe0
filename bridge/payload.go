// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: bridge/payload.go
// Summary: Binary glyph payload exchanged with the host text service.

package bridge

import (
	"encoding/binary"
	"errors"

	"github.com/framegrace/texelpad/glyph"
)

// Wire layout, little-endian:
//
//	offset 0  u32  bitmap width
//	offset 4  u32  bitmap height
//	offset 8  u8   wide flag (0/1)
//	offset 9  w*h*4 RGBA pixels, row-major, straight alpha
//
// An empty payload is the failure sentinel.
const headerSize = 9

// maxDim bounds declared dimensions so a corrupt header cannot force a
// giant allocation.
const maxDim = 1 << 14

var (
	// ErrEmptyPayload is the host's failure sentinel; callers treat it
	// exactly like a local render failure.
	ErrEmptyPayload = errors.New("bridge: empty payload")
	ErrShortPayload = errors.New("bridge: payload shorter than declared size")
	ErrBadDimension = errors.New("bridge: invalid bitmap dimensions")
)

// Encode packs a bitmap into the wire format.
func Encode(bm *glyph.Bitmap) []byte {
	buf := make([]byte, headerSize+len(bm.Pix))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(bm.Width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(bm.Height))
	if bm.Wide {
		buf[8] = 1
	}
	copy(buf[headerSize:], bm.Pix)
	return buf
}

// Decode unpacks a wire payload into a bitmap. The pixel data is copied;
// the caller may reuse the input buffer.
func Decode(data []byte) (*glyph.Bitmap, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	if len(data) < headerSize {
		return nil, ErrShortPayload
	}
	width := binary.LittleEndian.Uint32(data[0:4])
	height := binary.LittleEndian.Uint32(data[4:8])
	if width == 0 || height == 0 || width > maxDim || height > maxDim {
		return nil, ErrBadDimension
	}
	need := int(width) * int(height) * 4
	if len(data) < headerSize+need {
		return nil, ErrShortPayload
	}
	bm := &glyph.Bitmap{
		Width:  int(width),
		Height: int(height),
		Wide:   data[8] != 0,
		Pix:    make([]byte, need),
	}
	copy(bm.Pix, data[headerSize:headerSize+need])
	return bm, nil
}
