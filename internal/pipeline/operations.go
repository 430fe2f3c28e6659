package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/photomat/photomat/internal/sizing"
)

// Resize computes the policy output size for img against desired and
// resamples to it. With thumbnail set, output is clamped into the thumbnail
// box per the sizing policy.
func (p *Pipeline) Resize(ctx context.Context, img image.Image, desired sizing.Size, thumbnail bool) (image.Image, error) {
	if img == nil {
		return nil, errors.New("pipeline: nil image")
	}
	b := img.Bounds()
	original := sizing.Size{Width: b.Dx(), Height: b.Dy()}

	target, err := sizing.ComputeOutputSize(original, desired, thumbnail, p.screenBound)
	if err != nil {
		return nil, fmt.Errorf("pipeline: sizing failed: %w", err)
	}

	var out image.Image
	var opErr error
	start := time.Now()
	err = p.queue.submit(ctx, func() {
		out, opErr = p.resampler.Resample(img, target.Width, target.Height)
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, fmt.Errorf("pipeline: resample failed: %w", opErr)
	}

	slog.Debug("resized image",
		"original", original.String(),
		"target", target.String(),
		"thumbnail", thumbnail,
		"duration", time.Since(start))
	return out, nil
}

// Thumbnail is Resize with the thumbnail clamp enabled.
func (p *Pipeline) Thumbnail(ctx context.Context, img image.Image, desired sizing.Size) (image.Image, error) {
	return p.Resize(ctx, img, desired, true)
}

// SegmentBlend masks the foreground subject of fg and composites it onto bg.
// The background is resampled to the foreground's dimensions first when they
// differ.
func (p *Pipeline) SegmentBlend(ctx context.Context, fg, bg image.Image) (image.Image, error) {
	if fg == nil || bg == nil {
		return nil, errors.New("pipeline: nil image")
	}
	if p.segmenter == nil {
		return nil, ErrNoSegmenter
	}

	var out image.Image
	var opErr error
	start := time.Now()
	err := p.queue.submit(ctx, func() {
		out, opErr = p.segmentBlend(ctx, fg, bg)
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}

	slog.Debug("segmented and blended image", "duration", time.Since(start))
	return out, nil
}

func (p *Pipeline) segmentBlend(ctx context.Context, fg, bg image.Image) (image.Image, error) {
	mask, err := p.segmenter.Segment(ctx, fg)
	if err != nil {
		return nil, fmt.Errorf("pipeline: segmentation failed: %w", err)
	}

	fb := fg.Bounds()
	if bg.Bounds().Dx() != fb.Dx() || bg.Bounds().Dy() != fb.Dy() {
		bg, err = p.resampler.Resample(bg, fb.Dx(), fb.Dy())
		if err != nil {
			return nil, fmt.Errorf("pipeline: background resample failed: %w", err)
		}
	}

	out, err := p.compositor.Blend(fg, bg, mask)
	if err != nil {
		return nil, fmt.Errorf("pipeline: compositing failed: %w", err)
	}
	return out, nil
}

// SegmentMask returns the raw segmentation mask for img rendered as an
// 8-bit grayscale image.
func (p *Pipeline) SegmentMask(ctx context.Context, img image.Image) (image.Image, error) {
	if img == nil {
		return nil, errors.New("pipeline: nil image")
	}
	if p.segmenter == nil {
		return nil, ErrNoSegmenter
	}

	var out image.Image
	var opErr error
	err := p.queue.submit(ctx, func() {
		mask, err := p.segmenter.Segment(ctx, img)
		if err != nil {
			opErr = fmt.Errorf("pipeline: segmentation failed: %w", err)
			return
		}
		out = mask.ToGray()
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}
