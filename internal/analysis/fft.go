// Package analysis provides frequency-domain tools for force traces,
// used to find tremor and oscillation components under periodic drive.
package analysis

import "math"

// FFT computes the discrete Fourier transform of the samples with an
// in-place radix-2 pass over a bit-reversed copy. The input length must
// be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n&(n-1) != 0 {
		panic("fft requires power of 2 length")
	}

	buf := make([]complex128, n)
	for i, v := range data {
		buf[i] = complex(v, 0)
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		angle := -2 * math.Pi / float64(size)
		step := complex(math.Cos(angle), math.Sin(angle))
		half := size / 2
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := start; k < start+half; k++ {
				u := buf[k]
				v := w * buf[k+half]
				buf[k] = u + v
				buf[k+half] = u - v
				w *= step
			}
		}
	}

	return buf
}

// PowerSpectrum returns the magnitude of each frequency bin up to the
// Nyquist limit.
func PowerSpectrum(data []float64) []float64 {
	bins := FFT(data)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = math.Hypot(real(bins[i]), imag(bins[i]))
	}
	return ps
}

// PadPow2 copies data into the next power-of-two length, zero filled.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}
