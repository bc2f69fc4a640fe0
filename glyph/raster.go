// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: glyph/raster.go
// Summary: Renders grapheme clusters into cached RGBA bitmaps.

package glyph

import (
	"errors"
	"image"
	"image/color"
	"log"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrRender reports that a glyph could not be produced at all. Callers must
// substitute a blank cell rather than abort the frame.
var ErrRender = errors.New("glyph: render failed")

// minBitmapDim keeps tiny font sizes from producing degenerate allocations.
const minBitmapDim = 4

// External is an alternate glyph source, typically the host platform's own
// text service reached over the cross-boundary bridge. It may have better
// coverage (color emoji, CJK) than the embedded fonts.
type External interface {
	Render(cluster string, sizePx int, fg color.RGBA) (*Bitmap, error)
}

// Config tunes a Renderer.
type Config struct {
	// SizePx is the nominal cell font size in pixels.
	SizePx int
	// CacheCapacity bounds the LRU bitmap cache.
	CacheCapacity int
	// External, when set, is consulted for glyphs.
	External External
	// PreferExternal queries External before the embedded fonts instead
	// of only as a fallback.
	PreferExternal bool
}

// DefaultConfig returns the renderer defaults.
func DefaultConfig() Config {
	return Config{SizePx: 32, CacheCapacity: 1000}
}

// Renderer turns grapheme clusters into Bitmaps. It owns a FontContext and
// a bounded LRU cache; neither is safe for concurrent use, matching the
// single render-loop ownership model.
type Renderer struct {
	cfg   Config
	fc    *FontContext
	cache *cache
}

// NewRenderer builds a renderer for cfg.SizePx.
func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.SizePx < 1 {
		cfg.SizePx = DefaultConfig().SizePx
	}
	if cfg.CacheCapacity < 1 {
		cfg.CacheCapacity = DefaultConfig().CacheCapacity
	}
	fc, err := NewFontContext(cfg.SizePx)
	if err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg, fc: fc, cache: newCache(cfg.CacheCapacity)}, nil
}

// SizePx returns the current nominal font size.
func (r *Renderer) SizePx() int { return r.fc.SizePx() }

// CellSize returns the grid cell advance in pixels.
func (r *Renderer) CellSize() (width, height int) { return r.fc.CellSize() }

// SetSize rebuilds the font context for a new size and drops the cache.
// It is a no-op when the size is unchanged.
func (r *Renderer) SetSize(sizePx int) error {
	if sizePx == r.fc.SizePx() {
		return nil
	}
	fc, err := NewFontContext(sizePx)
	if err != nil {
		return err
	}
	r.fc.Close()
	r.fc = fc
	r.cache.clear()
	return nil
}

// CacheLen reports how many bitmaps are currently cached.
func (r *Renderer) CacheLen() int { return r.cache.len() }

// Close releases the glyph cache and font faces.
func (r *Renderer) Close() error {
	r.cache.clear()
	return r.fc.Close()
}

// Render rasterizes one grapheme cluster at the renderer's current size.
func (r *Renderer) Render(cluster string, fg color.RGBA) (*Bitmap, error) {
	return r.RenderStyled(cluster, fg, 0)
}

// RenderStyled rasterizes a cluster with a mono face variant (bold/italic).
// Results are cached under (cluster, size, color, style); identical keys
// always return pixel-identical bitmaps.
func (r *Renderer) RenderStyled(cluster string, fg color.RGBA, style Style) (*Bitmap, error) {
	if cluster == "" {
		return nil, ErrRender
	}

	key := CacheKey{Cluster: cluster, SizePx: r.fc.SizePx(), Color: PackARGB(fg), Style: style}
	if bm, ok := r.cache.get(key); ok {
		return bm, nil
	}

	bm, err := r.rasterize(cluster, fg, style)
	if err != nil {
		return nil, err
	}
	r.cache.put(key, bm)
	return bm, nil
}

func (r *Renderer) rasterize(cluster string, fg color.RGBA, style Style) (bm *Bitmap, err error) {
	// The draw path reads font tables; treat any panic as a render
	// failure so a corrupt glyph never takes the frame down.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("glyph: panic rendering %q: %v", cluster, rec)
			bm, err = nil, ErrRender
		}
	}()

	class := Classify(cluster)
	baseW, cellH := r.fc.CellSize()
	width := baseW
	if class.Wide {
		width = baseW * 2
	}
	if width < minBitmapDim {
		width = minBitmapDim
	}
	height := cellH
	if height < minBitmapDim {
		height = minBitmapDim
	}

	// Whitespace occupies the cell without ink.
	if strings.TrimSpace(cluster) == "" {
		return NewBitmap(width, height, class.Wide), nil
	}

	if r.cfg.PreferExternal {
		if ext := r.external(cluster, fg); ext != nil {
			return ext, nil
		}
	}

	bm = r.drawEmbedded(cluster, fg, style, class, width, height)
	if bm.Opaque() {
		return bm, nil
	}

	// Embedded fonts had no coverage. Ask the platform service, then
	// settle for a visible placeholder block.
	if !r.cfg.PreferExternal {
		if ext := r.external(cluster, fg); ext != nil {
			return ext, nil
		}
	}
	drawFallbackBlock(bm, fg)
	return bm, nil
}

// drawEmbedded rasterizes onto a transparent surface with the embedded
// fonts, centering horizontally on the measured advance and vertically on
// the baseline so the glyph's visual midpoint matches the bitmap's.
func (r *Renderer) drawEmbedded(cluster string, fg color.RGBA, style Style, class Class, width, height int) *Bitmap {
	face := r.fc.face(class, style)

	advance := font.MeasureString(face, cluster).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	drawX := (width - advance) / 2
	baselineY := height/2 + (ascent-descent)/2

	mask := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(drawX, baselineY),
	}
	drawer.DrawString(cluster)

	// Tint pass: keep only the anti-aliasing coverage as straight alpha
	// and apply the requested foreground color.
	bm := NewBitmap(width, height, class.Wide)
	for i := 0; i < len(bm.Pix); i += 4 {
		a := mask.Pix[i+3]
		if a == 0 {
			continue
		}
		bm.Pix[i] = fg.R
		bm.Pix[i+1] = fg.G
		bm.Pix[i+2] = fg.B
		bm.Pix[i+3] = a
	}
	return bm
}

func (r *Renderer) external(cluster string, fg color.RGBA) *Bitmap {
	if r.cfg.External == nil {
		return nil
	}
	bm, err := r.cfg.External.Render(cluster, r.fc.SizePx(), fg)
	if err != nil || bm == nil || !bm.Opaque() {
		return nil
	}
	return bm
}

// drawFallbackBlock fills a centered solid block so missing glyphs stay
// visible instead of silently vanishing.
func drawFallbackBlock(bm *Bitmap, fg color.RGBA) {
	size := int(float64(bm.Height) * cellWidthFactor)
	if size < minBitmapDim {
		size = minBitmapDim
	}
	x0 := (bm.Width - size) / 2
	y0 := (bm.Height - size) / 2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	for y := y0; y < y0+size && y < bm.Height; y++ {
		for x := x0; x < x0+size && x < bm.Width; x++ {
			i := (y*bm.Width + x) * 4
			bm.Pix[i] = fg.R
			bm.Pix[i+1] = fg.G
			bm.Pix[i+2] = fg.B
			bm.Pix[i+3] = fg.A
		}
	}
}

// PackARGB packs a color as the host-side 0xAARRGGBB integer.
func PackARGB(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnpackARGB reverses PackARGB.
func UnpackARGB(v uint32) color.RGBA {
	return color.RGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Warm pre-renders printable ASCII and the common box-drawing runes so the
// first composited frame does not pay the full rasterization cost.
func (r *Renderer) Warm(fg color.RGBA) {
	for c := rune(' '); c <= '~'; c++ {
		_, _ = r.Render(string(c), fg)
	}
	for _, c := range boxDrawing {
		_, _ = r.Render(string(c), fg)
	}
	log.Printf("glyph: cache warmed with %d entries", r.cache.len())
}

var boxDrawing = []rune{
	'─', '│', '┌', '┐', '└', '┘', '├', '┤', '┬', '┴', '┼',
	'═', '║', '╔', '╗', '╚', '╝', '╠', '╣', '╦', '╩', '╬',
}
