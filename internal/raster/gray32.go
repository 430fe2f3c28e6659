// Package raster provides a single-channel float32 image type used as the
// interchange format between matrices, segmentation masks, and the standard
// library's image ecosystem.
package raster

import (
	"errors"
	"image"
	"image/color"
)

// Gray32 is an in-memory float32 grayscale raster. Pix holds one value per
// pixel in row-major order; values in [0, 1] map onto the displayable range
// but arbitrary finite values are allowed (matrix round-trips rely on this).
type Gray32 struct {
	Pix    []float32
	Stride int
	Rect   image.Rectangle
}

// NewGray32 allocates a zero-filled raster covering r.
func NewGray32(r image.Rectangle) *Gray32 {
	w, h := r.Dx(), r.Dy()
	return &Gray32{
		Pix:    make([]float32, w*h),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (g *Gray32) ColorModel() color.Model { return color.Gray16Model }

// Bounds implements image.Image.
func (g *Gray32) Bounds() image.Rectangle { return g.Rect }

// At implements image.Image, clamping the float value into [0, 1] and
// expanding it to 16-bit gray.
func (g *Gray32) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(g.Rect) {
		return color.Gray16{}
	}
	v := g.FloatAt(x, y)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return color.Gray16{Y: uint16(v*65535 + 0.5)}
}

// FloatAt returns the raw float value at (x, y). Coordinates must lie within
// Bounds.
func (g *Gray32) FloatAt(x, y int) float32 {
	return g.Pix[g.pixOffset(x, y)]
}

// SetFloat stores v at (x, y). Coordinates must lie within Bounds.
func (g *Gray32) SetFloat(x, y int, v float32) {
	g.Pix[g.pixOffset(x, y)] = v
}

func (g *Gray32) pixOffset(x, y int) int {
	return (y-g.Rect.Min.Y)*g.Stride + (x - g.Rect.Min.X)
}

// ErrEmptyRaster is returned when a conversion receives a raster with no
// pixels.
var ErrEmptyRaster = errors.New("raster: empty raster")
