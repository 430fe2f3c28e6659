package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZeroFilled(t *testing.T) {
	m, err := New(3, 5)
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 5, m.Cols())
	assert.Equal(t, 15, m.Len())
	for i := 0; i < m.Len(); i++ {
		if m.AtIndex(i) != 0 {
			t.Fatalf("element %d not zero", i)
		}
	}
}

func TestNewInvalidShape(t *testing.T) {
	cases := []struct{ rows, cols int }{
		{0, 3}, {3, 0}, {-1, 2}, {2, -5},
	}
	for _, c := range cases {
		_, err := New(c.rows, c.cols)
		assert.ErrorIs(t, err, ErrInvalidShape, "New(%d, %d)", c.rows, c.cols)
	}
}

func TestNewDiagonalSquare(t *testing.T) {
	m, err := NewDiagonal([]float32{1, 2, 3}, 3, 3)
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, float32(1), m.AtIndex(0))
	assert.Equal(t, float32(2), m.AtIndex(4))
	assert.Equal(t, float32(3), m.AtIndex(8))
	for _, i := range []int{1, 2, 3, 5, 6, 7} {
		assert.Zero(t, m.AtIndex(i), "offset %d", i)
	}
}

func TestNewDiagonalTruncates(t *testing.T) {
	// Diagonal length capped by min(rows, cols, len(diag)).
	m, err := NewDiagonal([]float32{9, 9, 9, 9}, 2, 5)
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, float32(9), m.At(0, 0))
	assert.Equal(t, float32(9), m.At(1, 1))
	assert.Zero(t, m.At(0, 2))

	short, err := NewDiagonal([]float32{7}, 3, 3)
	require.NoError(t, err)
	defer short.Release()
	assert.Equal(t, float32(7), short.At(0, 0))
	assert.Zero(t, short.At(1, 1))
}

func TestAtSetRowMajor(t *testing.T) {
	m, err := New(2, 3)
	require.NoError(t, err)
	defer m.Release()

	m.Set(1, 2, 42)
	assert.Equal(t, float32(42), m.At(1, 2))
	assert.Equal(t, float32(42), m.AtIndex(1*3+2))

	m.SetIndex(1, 7)
	assert.Equal(t, float32(7), m.At(0, 1))
}

func TestIndexOutOfRangePanics(t *testing.T) {
	m, err := New(2, 2)
	require.NoError(t, err)
	defer m.Release()

	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { m.At(0, -1) })
	assert.Panics(t, func() { m.Set(-1, 0, 1) })
	assert.Panics(t, func() { m.AtIndex(4) })
	assert.Panics(t, func() { m.SetIndex(-1, 1) })
}

func TestRetainRelease(t *testing.T) {
	m, err := New(2, 2)
	require.NoError(t, err)
	m.Set(0, 0, 5)

	h := m.Retain()
	assert.Equal(t, 2, m.Refs())
	assert.Equal(t, float32(5), h.At(0, 0))

	h.Set(1, 1, 6)
	assert.Equal(t, float32(6), m.At(1, 1), "handles share the buffer")

	m.Release()
	assert.Equal(t, float32(5), h.At(0, 0), "buffer survives until last release")

	h.Release()
	assert.Panics(t, func() { h.At(0, 0) }, "use after final release")
	assert.Panics(t, func() { h.Release() }, "double release")
}

func TestRetainAfterReleasePanics(t *testing.T) {
	m, err := New(1, 1)
	require.NoError(t, err)
	m.Release()
	assert.Panics(t, func() { m.Retain() })
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := NewDiagonal([]float32{1, 2}, 2, 2)
	require.NoError(t, err)
	defer m.Release()

	c := m.Clone()
	defer c.Release()

	c.Set(0, 0, 99)
	assert.Equal(t, float32(1), m.At(0, 0))
	assert.Equal(t, float32(99), c.At(0, 0))
	assert.Equal(t, 1, c.Refs())
}

func TestStringFormat(t *testing.T) {
	m, err := NewDiagonal([]float32{1, 2}, 2, 3)
	require.NoError(t, err)
	defer m.Release()

	want := "1.00 0.00 0.00\n0.00 2.00 0.00\n"
	assert.Equal(t, want, m.String())
}
