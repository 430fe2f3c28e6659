package mempool

import (
	"math/bits"
	"sync"
)

// Pooled float32 buffers, bucketed by power-of-two capacity. Matrix buffers
// and tensor staging both allocate through here so that release returns
// memory for reuse instead of churning the GC.

const minClassBits = 10 // smallest bucket holds 1024 elements

var pools [32]sync.Pool

// classFor returns the pool index whose buffers can hold at least n elements.
func classFor(n int) int {
	if n <= 1<<minClassBits {
		return minClassBits
	}
	c := bits.Len(uint(n - 1))
	return c
}

// Get returns a []float32 of length n, zero-filled. Capacity may exceed n.
func Get(n int) []float32 {
	if n <= 0 {
		return nil
	}
	c := classFor(n)
	if v := pools[c].Get(); v != nil {
		buf, ok := v.([]float32)
		if ok && cap(buf) >= n {
			buf = buf[:n]
			for i := range buf {
				buf[i] = 0
			}
			return buf
		}
	}
	return make([]float32, n, 1<<c)
}

// Put returns a buffer to its bucket. Nil and undersized slices are dropped.
func Put(buf []float32) {
	if cap(buf) < 1<<minClassBits {
		return
	}
	c := classFor(cap(buf))
	if cap(buf) < 1<<c {
		c--
	}
	pools[c].Put(buf[:cap(buf)]) //nolint:staticcheck
}
