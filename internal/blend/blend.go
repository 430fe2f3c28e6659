// Package blend defines the compositing capability: combining a foreground
// and a background under a per-pixel mask.
package blend

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/photomat/photomat/internal/raster"
)

// Compositor combines foreground and background pixels according to a mask,
// where mask value 1 selects the foreground and 0 the background.
type Compositor interface {
	Blend(fg, bg image.Image, mask *raster.Gray32) (image.Image, error)
}

// Alpha is the production compositor: a straight per-pixel linear mix in
// non-premultiplied RGBA space.
type Alpha struct{}

// Blend computes out = fg*m + bg*(1-m) per channel. All three inputs must
// share the same pixel dimensions.
func (Alpha) Blend(fg, bg image.Image, mask *raster.Gray32) (image.Image, error) {
	if fg == nil || bg == nil {
		return nil, errors.New("blend: nil input image")
	}
	if mask == nil {
		return nil, errors.New("blend: nil mask")
	}

	w, h := fg.Bounds().Dx(), fg.Bounds().Dy()
	if bg.Bounds().Dx() != w || bg.Bounds().Dy() != h {
		return nil, fmt.Errorf("blend: background %dx%d does not match foreground %dx%d",
			bg.Bounds().Dx(), bg.Bounds().Dy(), w, h)
	}
	if mask.Rect.Dx() != w || mask.Rect.Dy() != h {
		return nil, fmt.Errorf("blend: mask %dx%d does not match foreground %dx%d",
			mask.Rect.Dx(), mask.Rect.Dy(), w, h)
	}

	// imaging.Clone normalizes both inputs to NRGBA with Min at the origin.
	fgN := imaging.Clone(fg)
	bgN := imaging.Clone(bg)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := mask.FloatAt(x, y)
			if m < 0 {
				m = 0
			}
			if m > 1 {
				m = 1
			}
			o := y*out.Stride + x*4
			f := y*fgN.Stride + x*4
			b := y*bgN.Stride + x*4
			for ch := 0; ch < 4; ch++ {
				fv := float32(fgN.Pix[f+ch])
				bv := float32(bgN.Pix[b+ch])
				out.Pix[o+ch] = uint8(fv*m + bv*(1-m) + 0.5)
			}
		}
	}
	return out, nil
}

// Func adapts a plain function to the Compositor interface.
type Func func(fg, bg image.Image, mask *raster.Gray32) (image.Image, error)

// Blend implements Compositor.
func (f Func) Blend(fg, bg image.Image, mask *raster.Gray32) (image.Image, error) {
	return f(fg, bg, mask)
}
