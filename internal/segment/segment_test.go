package segment

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/photomat/photomat/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncAdapter(t *testing.T) {
	want := raster.NewGray32(image.Rect(0, 0, 2, 2))
	s := Func(func(ctx context.Context, img image.Image) (*raster.Gray32, error) {
		return want, nil
	})

	got, err := s.Segment(context.Background(), nil)
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.NoError(t, s.Close())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("model.onnx")
	assert.Equal(t, "model.onnx", cfg.ModelPath)
	assert.Equal(t, 512, cfg.InputSize)
	assert.Equal(t, "input", cfg.InputName)
	assert.Equal(t, "output", cfg.OutputName)
}

func TestNewModelRequiresPath(t *testing.T) {
	_, err := NewModel(Config{})
	assert.Error(t, err)
}

func TestNormalizeNCHW(t *testing.T) {
	img := imaging.New(2, 2, color.NRGBA{R: 255, G: 128, B: 0, A: 255})
	dst := make([]float32, 3*2*2)
	normalizeNCHW(img, 2, dst)

	// Red plane all 1.0, green ~0.5, blue 0.
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1.0, dst[i], 1e-6)
		assert.InDelta(t, 128.0/255.0, dst[4+i], 1e-6)
		assert.InDelta(t, 0.0, dst[8+i], 1e-6)
	}
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-6)
	assert.Greater(t, sigmoid(10), float32(0.99))
	assert.Less(t, sigmoid(-10), float32(0.01))
}

func TestModelCloseIdempotent(t *testing.T) {
	m := &Model{}
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}
