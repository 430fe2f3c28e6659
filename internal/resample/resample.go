// Package resample defines the image-resampling capability and its
// production binding. The pipeline only ever sees the interface; tests
// substitute deterministic fakes.
package resample

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Resampler produces an image of exactly the requested pixel dimensions
// using a quality-preserving filter.
type Resampler interface {
	Resample(img image.Image, width, height int) (image.Image, error)
}

// Lanczos is the default production resampler.
type Lanczos struct{}

// Resample scales img to width x height with a Lanczos filter.
func (Lanczos) Resample(img image.Image, width, height int) (image.Image, error) {
	if img == nil {
		return nil, errors.New("resample: nil image")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resample: invalid target dimensions %dx%d", width, height)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// Func adapts a plain function to the Resampler interface.
type Func func(img image.Image, width, height int) (image.Image, error)

// Resample implements Resampler.
func (f Func) Resample(img image.Image, width, height int) (image.Image, error) {
	return f(img, width, height)
}
