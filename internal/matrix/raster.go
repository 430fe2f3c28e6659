package matrix

import (
	"errors"
	"image"

	"github.com/photomat/photomat/internal/raster"
)

// ToRaster exposes the matrix as a grayscale float raster without copying:
// the raster shares the matrix buffer, with rows mapping to scanlines. The
// caller must keep the matrix retained for as long as the raster is in use.
func (m *Matrix) ToRaster() (*raster.Gray32, error) {
	if m.buf.data == nil {
		return nil, errors.New("matrix: matrix released")
	}
	return &raster.Gray32{
		Pix:    m.buf.data,
		Stride: m.cols,
		Rect:   image.Rect(0, 0, m.cols, m.rows),
	}, nil
}

// FromRaster builds a matrix from a grayscale float raster, copying the
// pixel data into a freshly owned buffer. Rows correspond to scanlines.
func FromRaster(g *raster.Gray32) (*Matrix, error) {
	if g == nil {
		return nil, errors.New("matrix: nil raster")
	}
	rows, cols := g.Rect.Dy(), g.Rect.Dx()
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for r := 0; r < rows; r++ {
		copy(m.buf.data[r*cols:(r+1)*cols], g.Pix[r*g.Stride:r*g.Stride+cols])
	}
	return m, nil
}
