// Package matrix implements a reference-counted float32 matrix whose
// multiply is delegated to a BLAS kernel. Storage is row-major throughout:
// element (r, c) lives at linear offset r*cols+c, and diagonals are placed
// at offsets i*cols+i.
package matrix

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/photomat/photomat/internal/mempool"
)

var (
	// ErrInvalidShape is returned by constructors given non-positive
	// dimensions.
	ErrInvalidShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch is returned by Multiply when operand shapes do
	// not describe a valid product.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)

// buffer is the shared, exclusively owned element store. The last handle to
// release it returns the memory to the pool.
type buffer struct {
	data []float32
	refs atomic.Int32
}

// Matrix is a handle onto a shared row-major float32 buffer. Copying the
// handle with Retain shares the buffer; Release drops a reference and frees
// the buffer once the count reaches zero. The zero value is not usable.
type Matrix struct {
	rows, cols int
	buf        *buffer
}

// New allocates a zero-filled rows x cols matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	b := &buffer{data: mempool.Get(rows * cols)}
	b.refs.Store(1)
	return &Matrix{rows: rows, cols: cols, buf: b}, nil
}

// NewDiagonal allocates a zero-filled rows x cols matrix and sets the first
// min(rows, cols, len(diag)) diagonal elements from diag.
func NewDiagonal(diag []float32, rows, cols int) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	n := min(rows, cols, len(diag))
	for i := 0; i < n; i++ {
		m.buf.data[i*cols+i] = diag[i]
	}
	return m, nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// Dims returns the dimensions of the matrix.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// Len returns the number of elements (rows*cols).
func (m *Matrix) Len() int { return m.rows * m.cols }

// At returns the element at (row, col). It panics if either coordinate is
// out of range.
func (m *Matrix) At(row, col int) float32 {
	m.check(row, col)
	return m.buf.data[row*m.cols+col]
}

// Set stores v at (row, col). It panics if either coordinate is out of range.
func (m *Matrix) Set(row, col int, v float32) {
	m.check(row, col)
	m.buf.data[row*m.cols+col] = v
}

// AtIndex returns the element at linear offset i. It panics if i is out of
// range.
func (m *Matrix) AtIndex(i int) float32 {
	m.checkIndex(i)
	return m.buf.data[i]
}

// SetIndex stores v at linear offset i. It panics if i is out of range.
func (m *Matrix) SetIndex(i int, v float32) {
	m.checkIndex(i)
	m.buf.data[i] = v
}

func (m *Matrix) check(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range for %dx%d", row, col, m.rows, m.cols))
	}
	if m.buf.data == nil {
		panic("matrix: use after release")
	}
}

func (m *Matrix) checkIndex(i int) {
	if i < 0 || i >= m.rows*m.cols {
		panic(fmt.Sprintf("matrix: linear index %d out of range for %dx%d", i, m.rows, m.cols))
	}
	if m.buf.data == nil {
		panic("matrix: use after release")
	}
}

// Retain returns a new handle sharing this matrix's buffer and increments
// the reference count. The returned handle must be released independently.
func (m *Matrix) Retain() *Matrix {
	if m.buf.refs.Add(1) <= 1 {
		panic("matrix: retain after release")
	}
	return &Matrix{rows: m.rows, cols: m.cols, buf: m.buf}
}

// Release drops this handle's reference. When the last reference is dropped
// the buffer is returned to the pool and any further element access panics.
func (m *Matrix) Release() {
	n := m.buf.refs.Add(-1)
	switch {
	case n == 0:
		mempool.Put(m.buf.data)
		m.buf.data = nil
	case n < 0:
		panic("matrix: release of released matrix")
	}
}

// Refs reports the current reference count, for diagnostics.
func (m *Matrix) Refs() int { return int(m.buf.refs.Load()) }

// Clone returns an independent deep copy with its own buffer.
func (m *Matrix) Clone() *Matrix {
	out, err := New(m.rows, m.cols)
	if err != nil {
		panic(err) // shape of an existing matrix is always valid
	}
	copy(out.buf.data, m.buf.data)
	return out
}

// String renders the matrix row by row with space-separated two-decimal
// values, each row terminated by a newline.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.2f", m.buf.data[r*m.cols+c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
