package exposure

import (
	"image"
	"image/draw"
)

// Buffer is an immutable W×H grid of 8-bit RGBA samples, one per source
// photograph. It is materialized once from an image.Image so that repeated
// per-pixel reads during aggregation avoid the interface dispatch and color
// model conversion cost of image.Image.At.
type Buffer struct {
	width  int
	height int
	pix    []uint8 // row-major RGBA, 4 bytes per pixel
}

// NewBuffer copies img into a new Buffer. The source image is not retained;
// callers may discard or reuse it afterwards.
func NewBuffer(img image.Image) *Buffer {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Buffer{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    rgba.Pix,
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Size returns the buffer dimensions as an image.Point.
func (b *Buffer) Size() image.Point { return image.Point{X: b.width, Y: b.height} }

// RGBA returns the 8-bit color components at (x, y). Coordinates must be
// within bounds.
func (b *Buffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := (y*b.width + x) * 4
	return b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]
}

// Luma returns the perceptual brightness of the pixel at (x, y) in the range
// [0, 255], using ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B). Alpha
// is ignored. Coordinates must be within bounds.
//
// The weighted sum is computed with an exact integer numerator so that a
// uniform gray pixel of value v has luma exactly v. This keeps the strict
// "luma > threshold" comparison stable at threshold boundaries.
func (b *Buffer) Luma(x, y int) float64 {
	i := (y*b.width + x) * 4
	return float64(299*int(b.pix[i])+587*int(b.pix[i+1])+114*int(b.pix[i+2])) / 1000
}
