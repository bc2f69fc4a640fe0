package glyph

// Bitmap is a rendered glyph: straight (non-premultiplied) alpha RGBA,
// top-left origin, row-major, 4 bytes per pixel.
type Bitmap struct {
	Width  int
	Height int
	Wide   bool
	Pix    []byte
}

// NewBitmap allocates a fully transparent bitmap of the given size.
func NewBitmap(width, height int, wide bool) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Wide:   wide,
		Pix:    make([]byte, width*height*4),
	}
}

// At returns the RGBA bytes at (x, y). Out-of-bounds reads return zeros.
func (b *Bitmap) At(x, y int) (r, g, bl, a byte) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, 0, 0, 0
	}
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Opaque reports whether any pixel has non-zero alpha.
func (b *Bitmap) Opaque() bool {
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 0 {
			return true
		}
	}
	return false
}
