// Package segment defines the foreground-segmentation capability and its
// ONNX Runtime binding. The model is treated as an opaque service producing
// a per-pixel confidence mask; everything here is parameter marshaling.
package segment

import (
	"context"
	"image"

	"github.com/photomat/photomat/internal/raster"
)

// Segmenter produces a per-pixel foreground-confidence mask for an image.
// Mask values lie in [0, 1], 1 meaning foreground, at the same pixel
// dimensions as the input.
type Segmenter interface {
	Segment(ctx context.Context, img image.Image) (*raster.Gray32, error)
	Close() error
}

// Func adapts a plain function to the Segmenter interface; Close is a no-op.
// Tests use it to bind deterministic fakes.
type Func func(ctx context.Context, img image.Image) (*raster.Gray32, error)

// Segment implements Segmenter.
func (f Func) Segment(ctx context.Context, img image.Image) (*raster.Gray32, error) {
	return f(ctx, img)
}

// Close implements Segmenter.
func (Func) Close() error { return nil }
