package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality
type FFT struct {
	// No state needed
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the full (two-sided) FFT of a real signal using mjibson/go-dsp
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes, including non-power-of-2
	return fft.FFTReal(x)
}

// ComputeComplex computes the FFT of a complex signal
func (f *FFT) ComputeComplex(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFT(x)
}

// ComputeInverse computes inverse FFT
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// ComputeInverseReal computes the inverse FFT of a real-valued spectrum
// (e.g. a filter response). The result is complex in general.
func (f *FFT) ComputeInverseReal(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFTReal(x)
}

// FFTFreq returns the sample frequencies of an n-point FFT with sample
// spacing d, in the standard layout: [0, 1, ..., ceil(n/2)-1, -floor(n/2), ..., -1] / (d*n).
func FFTFreq(n int, d float64) []float64 {
	if n <= 0 {
		return []float64{}
	}

	freqs := make([]float64, n)
	val := 1.0 / (float64(n) * d)
	positive := (n-1)/2 + 1

	for i := 0; i < positive; i++ {
		freqs[i] = float64(i) * val
	}
	for i := positive; i < n; i++ {
		freqs[i] = float64(i-n) * val
	}

	return freqs
}
