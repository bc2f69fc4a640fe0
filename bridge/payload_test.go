// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: bridge/payload_test.go
// Summary: Exercises payload codec behaviour to keep the wire format stable.

package bridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/framegrace/texelpad/glyph"
)

func samplebitmap() *glyph.Bitmap {
	bm := glyph.NewBitmap(3, 2, true)
	for i := range bm.Pix {
		bm.Pix[i] = byte(i * 7)
	}
	return bm
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	bm := samplebitmap()
	data := Encode(bm)

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Width != bm.Width || got.Height != bm.Height || got.Wide != bm.Wide {
		t.Fatalf("header mismatch: %dx%d wide=%v", got.Width, got.Height, got.Wide)
	}
	if !bytes.Equal(got.Pix, bm.Pix) {
		t.Fatal("pixel mismatch after round trip")
	}
}

func TestEncodeHeaderLayout(t *testing.T) {
	data := Encode(samplebitmap())
	if binary.LittleEndian.Uint32(data[0:4]) != 3 {
		t.Fatal("width not at offset 0")
	}
	if binary.LittleEndian.Uint32(data[4:8]) != 2 {
		t.Fatal("height not at offset 4")
	}
	if data[8] != 1 {
		t.Fatal("wide flag not at offset 8")
	}
	if len(data) != 9+3*2*4 {
		t.Fatalf("payload length = %d", len(data))
	}
}

func TestDecodeEmptyIsFailureSentinel(t *testing.T) {
	if _, err := Decode(nil); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestDecodeShortPayload(t *testing.T) {
	if _, err := Decode([]byte{1, 2, 3}); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected ErrShortPayload, got %v", err)
	}

	data := Encode(samplebitmap())
	if _, err := Decode(data[:len(data)-1]); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("truncated pixels: expected ErrShortPayload, got %v", err)
	}
}

func TestDecodeBadDimensions(t *testing.T) {
	data := Encode(samplebitmap())
	binary.LittleEndian.PutUint32(data[0:4], 0)
	if _, err := Decode(data); !errors.Is(err, ErrBadDimension) {
		t.Fatalf("expected ErrBadDimension, got %v", err)
	}
	binary.LittleEndian.PutUint32(data[0:4], 1<<20)
	if _, err := Decode(data); !errors.Is(err, ErrBadDimension) {
		t.Fatalf("oversized width: expected ErrBadDimension, got %v", err)
	}
}

type scriptedService struct {
	reply []byte
	err   error
	delay time.Duration
	calls int
}

func (s *scriptedService) RenderCharacter(ctx context.Context, cluster string, sizePx int, colorARGB uint32) ([]byte, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return s.reply, s.err
}

func TestProviderDecodesReply(t *testing.T) {
	svc := &scriptedService{reply: Encode(samplebitmap())}
	p := NewProvider(svc, time.Second)

	bm, err := p.Render("漢", 32, color.RGBA{255, 255, 255, 255})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if bm.Width != 3 || !bm.Wide {
		t.Fatalf("unexpected bitmap %dx%d wide=%v", bm.Width, bm.Height, bm.Wide)
	}
}

func TestProviderEmptyReplyFails(t *testing.T) {
	p := NewProvider(&scriptedService{}, time.Second)
	if _, err := p.Render("A", 32, color.RGBA{}); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestProviderTimeout(t *testing.T) {
	svc := &scriptedService{reply: Encode(samplebitmap()), delay: 200 * time.Millisecond}
	p := NewProvider(svc, 10*time.Millisecond)

	start := time.Now()
	if _, err := p.Render("A", 32, color.RGBA{}); err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Fatalf("call did not respect timeout: %v", elapsed)
	}
}
