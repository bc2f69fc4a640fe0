package pngdump

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestPresentWritesNumberedFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := New(dir, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	frame := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 3; i++ {
		if err := s.Present(frame); err != nil {
			t.Fatal(err)
		}
	}
	if s.Frames() != 3 {
		t.Fatalf("frames = %d, want 3", s.Frames())
	}
	for _, name := range []string{"frame-0000.png", "frame-0001.png", "frame-0002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}
