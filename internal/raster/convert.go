package raster

import (
	"errors"
	"image"
	"image/color"
)

// FromImage converts any image into a Gray32 raster using Rec. 601 luminance
// weights, scaled into [0, 1].
func FromImage(img image.Image) (*Gray32, error) {
	if img == nil {
		return nil, errors.New("raster: nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyRaster
	}

	out := NewGray32(image.Rect(0, 0, b.Dx(), b.Dy()))
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			row := g.Pix[y*g.Stride : y*g.Stride+b.Dx()]
			for x, p := range row {
				out.Pix[y*out.Stride+x] = float32(p) / 255.0
			}
		}
		return out, nil
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum := 0.299*float32(r) + 0.587*float32(g) + 0.114*float32(bl)
			out.Pix[y*out.Stride+x] = lum / 65535.0
		}
	}
	return out, nil
}

// ToGray renders the raster into an 8-bit grayscale image, clamping values
// into [0, 1]. Useful for encoding masks to PNG.
func (g *Gray32) ToGray() *image.Gray {
	b := g.Rect
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := g.Pix[y*g.Stride+x]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			out.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return out
}

// ResizeBilinear resamples the raster to width x height using bilinear
// interpolation directly on the float values, preserving sub-8-bit precision
// that an image-space resize would quantize away.
func (g *Gray32) ResizeBilinear(width, height int) (*Gray32, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("raster: invalid target dimensions")
	}
	srcW, srcH := g.Rect.Dx(), g.Rect.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, ErrEmptyRaster
	}

	out := NewGray32(image.Rect(0, 0, width, height))
	if srcW == width && srcH == height {
		copy(out.Pix, g.Pix)
		return out, nil
	}

	scaleX := float32(srcW) / float32(width)
	scaleY := float32(srcH) / float32(height)
	for y := 0; y < height; y++ {
		sy := (float32(y)+0.5)*scaleY - 0.5
		y0 := int(sy)
		if sy < 0 {
			sy, y0 = 0, 0
		}
		y1 := y0 + 1
		if y1 >= srcH {
			y1 = srcH - 1
		}
		fy := sy - float32(y0)
		for x := 0; x < width; x++ {
			sx := (float32(x)+0.5)*scaleX - 0.5
			x0 := int(sx)
			if sx < 0 {
				sx, x0 = 0, 0
			}
			x1 := x0 + 1
			if x1 >= srcW {
				x1 = srcW - 1
			}
			fx := sx - float32(x0)

			top := g.Pix[y0*g.Stride+x0]*(1-fx) + g.Pix[y0*g.Stride+x1]*fx
			bot := g.Pix[y1*g.Stride+x0]*(1-fx) + g.Pix[y1*g.Stride+x1]*fx
			out.Pix[y*out.Stride+x] = top*(1-fy) + bot*fy
		}
	}
	return out, nil
}
