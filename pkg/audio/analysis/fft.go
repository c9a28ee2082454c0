// ABOUTME: Radix-2 FFT for spectrum analysis
// ABOUTME: In-place iterative Cooley-Tukey transform over complex slices
package analysis

import (
	"math"
	"math/cmplx"
)

// fft computes an in-place forward FFT. len(x) must be a power of two.
func fft(x []complex128) {
	n := len(x)

	// Bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		step := -2 * math.Pi / float64(size)
		half := size / 2
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := cmplx.Rect(1, step*float64(k))
				a := x[start+k]
				b := x[start+k+half] * w
				x[start+k] = a + b
				x[start+k+half] = a - b
			}
		}
	}
}
