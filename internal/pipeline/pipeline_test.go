package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/photomat/photomat/internal/raster"
	"github.com/photomat/photomat/internal/segment"
	"github.com/photomat/photomat/internal/sizing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestPipeline(t *testing.T, opts ...func(*Builder)) *Pipeline {
	t.Helper()
	b := NewBuilder()
	for _, opt := range opts {
		opt(b)
	}
	p, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestBuildDefaults(t *testing.T) {
	p := buildTestPipeline(t)
	assert.Equal(t, DefaultScreenBound, p.ScreenBound())
}

func TestResizeAppliesPolicy(t *testing.T) {
	p := buildTestPipeline(t)

	// Portrait 400x800, desired 100x100: policy output is 50x100.
	src := image.NewRGBA(image.Rect(0, 0, 400, 800))
	out, err := p.Resize(context.Background(), src, sizing.Size{Width: 100, Height: 100}, false)
	require.NoError(t, err)
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())
}

func TestThumbnailClamps(t *testing.T) {
	p := buildTestPipeline(t)

	src := image.NewRGBA(image.Rect(0, 0, 400, 800))
	out, err := p.Thumbnail(context.Background(), src, sizing.Size{Width: 300, Height: 300})
	require.NoError(t, err)
	assert.Equal(t, 125, out.Bounds().Dx())
	assert.Equal(t, 250, out.Bounds().Dy())
}

func TestResizeHonorsScreenBound(t *testing.T) {
	p := buildTestPipeline(t, func(b *Builder) { b.WithScreenBound(1000) })

	// Landscape 900x300 (aspect 3), desired 600x500: candidate 1500 > 1000.
	src := image.NewRGBA(image.Rect(0, 0, 900, 300))
	out, err := p.Resize(context.Background(), src, sizing.Size{Width: 600, Height: 500}, false)
	require.NoError(t, err)
	assert.Equal(t, 600, out.Bounds().Dx())
	assert.Equal(t, 200, out.Bounds().Dy())
}

func TestResizeNilImage(t *testing.T) {
	p := buildTestPipeline(t)
	_, err := p.Resize(context.Background(), nil, sizing.Size{Width: 10, Height: 10}, false)
	assert.Error(t, err)
}

func TestSegmentBlendWithFakeSegmenter(t *testing.T) {
	// Fake: left half foreground, right half background.
	fake := segment.Func(func(_ context.Context, img image.Image) (*raster.Gray32, error) {
		b := img.Bounds()
		mask := raster.NewGray32(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx()/2; x++ {
				mask.SetFloat(x, y, 1)
			}
		}
		return mask, nil
	})
	p := buildTestPipeline(t, func(b *Builder) { b.WithSegmenter(fake) })

	fg := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	bg := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			fg.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			bg.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	out, err := p.SegmentBlend(context.Background(), fg, bg)
	require.NoError(t, err)

	n, ok := out.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, uint8(255), n.NRGBAAt(0, 0).R, "left half keeps foreground")
	assert.Equal(t, uint8(255), n.NRGBAAt(3, 0).B, "right half shows background")
}

func TestSegmentBlendResamplesBackground(t *testing.T) {
	fake := segment.Func(func(_ context.Context, img image.Image) (*raster.Gray32, error) {
		b := img.Bounds()
		return raster.NewGray32(image.Rect(0, 0, b.Dx(), b.Dy())), nil // all background
	})
	p := buildTestPipeline(t, func(b *Builder) { b.WithSegmenter(fake) })

	fg := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	bg := image.NewNRGBA(image.Rect(0, 0, 2, 2)) // mismatched size

	out, err := p.SegmentBlend(context.Background(), fg, bg)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Bounds().Dx())
	assert.Equal(t, 8, out.Bounds().Dy())
}

func TestSegmentBlendWithoutSegmenter(t *testing.T) {
	p := buildTestPipeline(t)
	fg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	_, err := p.SegmentBlend(context.Background(), fg, fg)
	assert.ErrorIs(t, err, ErrNoSegmenter)
}

func TestSegmentMask(t *testing.T) {
	fake := segment.Func(func(_ context.Context, img image.Image) (*raster.Gray32, error) {
		b := img.Bounds()
		mask := raster.NewGray32(image.Rect(0, 0, b.Dx(), b.Dy()))
		for i := range mask.Pix {
			mask.Pix[i] = 1
		}
		return mask, nil
	})
	p := buildTestPipeline(t, func(b *Builder) { b.WithSegmenter(fake) })

	out, err := p.SegmentMask(context.Background(), image.NewNRGBA(image.Rect(0, 0, 3, 3)))
	require.NoError(t, err)

	gray, ok := out.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, uint8(255), gray.GrayAt(1, 1).Y)
}

func TestSegmentMaskPropagatesFailure(t *testing.T) {
	boom := errors.New("model exploded")
	fake := segment.Func(func(_ context.Context, _ image.Image) (*raster.Gray32, error) {
		return nil, boom
	})
	p := buildTestPipeline(t, func(b *Builder) { b.WithSegmenter(fake) })

	_, err := p.SegmentMask(context.Background(), image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	assert.ErrorIs(t, err, boom)
}
