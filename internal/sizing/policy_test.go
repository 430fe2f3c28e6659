package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOutputSizePortrait(t *testing.T) {
	// Aspect ratio 2.0, no thumbnail: fit desired height.
	out, err := ComputeOutputSize(Size{400, 800}, Size{100, 100}, false, 4096)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 50, Height: 100}, out)
}

func TestComputeOutputSizePortraitThumbnailClamp(t *testing.T) {
	// height candidate = 300*2.0 = 600 > 250, clamp into thumbnail box.
	out, err := ComputeOutputSize(Size{400, 800}, Size{300, 300}, true, 4096)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 125, Height: 250}, out)
}

func TestComputeOutputSizePortraitThumbnailNoClamp(t *testing.T) {
	// height candidate = 100*2.0 = 200 <= 250, thumbnail flag has no effect.
	out, err := ComputeOutputSize(Size{400, 800}, Size{100, 100}, true, 4096)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 50, Height: 100}, out)
}

func TestComputeOutputSizeLandscape(t *testing.T) {
	// width candidate = 100*2.0 = 200; within bound and thumbnail threshold.
	out, err := ComputeOutputSize(Size{800, 400}, Size{400, 100}, false, 1000)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 200, Height: 100}, out)
}

func TestComputeOutputSizeLandscapeScreenBoundOverflow(t *testing.T) {
	// width candidate = 500*3.0 = 1500 > 1000: fit desired width instead.
	out, err := ComputeOutputSize(Size{900, 300}, Size{600, 500}, false, 1000)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 600, Height: 200}, out)
}

func TestComputeOutputSizeLandscapeThumbnailClamp(t *testing.T) {
	// width candidate = 300*2.0 = 600; <= bound but > 250 with thumbnail set.
	out, err := ComputeOutputSize(Size{800, 400}, Size{300, 300}, true, 4096)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 250, Height: 125}, out)
}

func TestComputeOutputSizeSquareTakesLandscapeBranch(t *testing.T) {
	// Aspect 1.0: width candidate equals desired height.
	out, err := ComputeOutputSize(Size{500, 500}, Size{120, 80}, false, 4096)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 80, Height: 80}, out)
}

func TestComputeOutputSizeScreenBoundBeatsThumbnail(t *testing.T) {
	// Overflow check runs before the thumbnail clamp on the landscape branch.
	out, err := ComputeOutputSize(Size{800, 400}, Size{100, 300}, true, 500)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 100, Height: 50}, out)
}

func TestComputeOutputSizeInvalidInputs(t *testing.T) {
	_, err := ComputeOutputSize(Size{0, 100}, Size{50, 50}, false, 4096)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ComputeOutputSize(Size{100, 100}, Size{50, 0}, false, 4096)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestSizeString(t *testing.T) {
	assert.Equal(t, "640x480", Size{640, 480}.String())
}
