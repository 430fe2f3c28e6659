package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, rows, cols int, vals []float32) *Matrix {
	t.Helper()
	m, err := New(rows, cols)
	require.NoError(t, err)
	require.Len(t, vals, rows*cols)
	for i, v := range vals {
		m.SetIndex(i, v)
	}
	return m
}

func TestMultiplyNonSquare(t *testing.T) {
	// 2x3 * 3x2 -> 2x2
	a := fill(t, 2, 3, []float32{
		1, 0, 2,
		0, 1, 1,
	})
	defer a.Release()
	b := fill(t, 3, 2, []float32{
		1, 2,
		3, 4,
		5, 6,
	})
	defer b.Release()
	c, err := New(2, 2)
	require.NoError(t, err)
	defer c.Release()

	require.NoError(t, Multiply(a, b, c))
	assert.Equal(t, float32(11), c.At(0, 0)) // 1*1 + 0*3 + 2*5
	assert.Equal(t, float32(14), c.At(0, 1)) // 1*2 + 0*4 + 2*6
	assert.Equal(t, float32(8), c.At(1, 0))  // 0*1 + 1*3 + 1*5
	assert.Equal(t, float32(10), c.At(1, 1)) // 0*2 + 1*4 + 1*6
}

func TestMultiplyIdentity(t *testing.T) {
	eye, err := NewDiagonal([]float32{1, 1, 1}, 3, 3)
	require.NoError(t, err)
	defer eye.Release()

	b := fill(t, 3, 2, []float32{
		1, 2,
		3, 4,
		5, 6,
	})
	defer b.Release()
	c, err := New(3, 2)
	require.NoError(t, err)
	defer c.Release()

	require.NoError(t, Multiply(eye, b, c))
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, b.AtIndex(i), c.AtIndex(i))
	}
}

func TestMultiplyOverwritesOutput(t *testing.T) {
	a := fill(t, 1, 1, []float32{2})
	defer a.Release()
	b := fill(t, 1, 1, []float32{3})
	defer b.Release()
	c := fill(t, 1, 1, []float32{100}) // stale contents must not accumulate
	defer c.Release()

	require.NoError(t, Multiply(a, b, c))
	assert.Equal(t, float32(6), c.At(0, 0))
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	a, _ := New(2, 3)
	defer a.Release()
	b, _ := New(4, 2) // inner dimension 3 != 4
	defer b.Release()
	c, _ := New(2, 2)
	defer c.Release()

	err := Multiply(a, b, c)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMultiplyBadOutputShape(t *testing.T) {
	a, _ := New(2, 3)
	defer a.Release()
	b, _ := New(3, 2)
	defer b.Release()
	c, _ := New(3, 3)
	defer c.Release()

	err := Multiply(a, b, c)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMultiplyKSubBlock(t *testing.T) {
	// k=1 multiplies only the leading column of a with the leading row of b.
	a := fill(t, 2, 2, []float32{
		2, 9,
		3, 9,
	})
	defer a.Release()
	b := fill(t, 2, 2, []float32{
		4, 5,
		9, 9,
	})
	defer b.Release()
	c, err := New(2, 2)
	require.NoError(t, err)
	defer c.Release()

	require.NoError(t, MultiplyK(a, b, c, 1))
	assert.Equal(t, float32(8), c.At(0, 0))
	assert.Equal(t, float32(10), c.At(0, 1))
	assert.Equal(t, float32(12), c.At(1, 0))
	assert.Equal(t, float32(15), c.At(1, 1))
}

func TestMultiplyKInvalid(t *testing.T) {
	a, _ := New(2, 2)
	defer a.Release()
	b, _ := New(2, 2)
	defer b.Release()
	c, _ := New(2, 2)
	defer c.Release()

	assert.ErrorIs(t, MultiplyK(a, b, c, 0), ErrDimensionMismatch)
	assert.ErrorIs(t, MultiplyK(a, b, c, 3), ErrDimensionMismatch)
}
