package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Multiply computes c = a * b through the BLAS sgemm kernel, using the full
// shared inner dimension (b's row count). c must be pre-allocated with
// a.Rows() x b.Cols(); its previous contents are overwritten.
func Multiply(a, b, c *Matrix) error {
	return MultiplyK(a, b, c, b.rows)
}

// MultiplyK is Multiply with an explicit inner dimension k, multiplying the
// leading a.Rows() x k block of a with the leading k x b.Cols() block of b.
// Shapes are validated before the kernel is invoked.
func MultiplyK(a, b, c *Matrix, k int) error {
	if k <= 0 || k > a.cols || k > b.rows {
		return fmt.Errorf("%w: inner dimension %d not shared by %dx%d and %dx%d",
			ErrDimensionMismatch, k, a.rows, a.cols, b.rows, b.cols)
	}
	if c.rows != a.rows || c.cols != b.cols {
		return fmt.Errorf("%w: product of %dx%d and %dx%d needs %dx%d output, got %dx%d",
			ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols, a.rows, b.cols, c.rows, c.cols)
	}
	if a.buf.data == nil || b.buf.data == nil || c.buf.data == nil {
		return fmt.Errorf("%w: operand released", ErrDimensionMismatch)
	}

	// alpha=1, beta=0: always overwrite c, never accumulate.
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: a.rows, Cols: k, Stride: a.cols, Data: a.buf.data},
		blas32.General{Rows: k, Cols: b.cols, Stride: b.cols, Data: b.buf.data},
		0,
		blas32.General{Rows: c.rows, Cols: c.cols, Stride: c.cols, Data: c.buf.data})
	return nil
}
