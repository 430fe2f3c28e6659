// Package testutil provides shared helpers for generating synthetic test
// images.
package testutil

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// NewGradientImage creates an RGBA image with a horizontal red and vertical
// blue gradient, handy for spotting orientation mistakes in resized output.
func NewGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(width-1, 1)),
				B: uint8(y * 255 / max(height-1, 1)),
				A: 255,
			})
		}
	}
	return img
}

// NewCheckerboard creates a grayscale checkerboard with the given cell size.
func NewCheckerboard(width, height, cell int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// WriteImage encodes img to path, creating parent directories. The format
// follows the file extension.
func WriteImage(t *testing.T, img image.Image, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, imaging.Save(img, path))
}

// WriteGradientPNG writes a gradient image to dir/name and returns its path.
func WriteGradientPNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	WriteImage(t, NewGradientImage(width, height), path)
	return path
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
