package spline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/knotspace/algorithms/spectral"
)

func TestSinc(t *testing.T) {
	assert.Equal(t, 1.0, Sinc(0))
	assert.InDelta(t, 0.0, Sinc(1), 1e-15)
	assert.InDelta(t, 0.0, Sinc(-2), 1e-15)
	assert.InDelta(t, 2/math.Pi, Sinc(0.5), 1e-15)
	assert.InDelta(t, 1.0, Sinc(1e-9), 1e-12)
}

func TestInterpFreqFuncContinuousAtZero(t *testing.T) {
	for _, dt := range []float64{0.01, 1, 3.5} {
		H := InterpFreqFunc([]float64{-1e-8, 0, 1e-8}, dt)
		for _, h := range H {
			require.False(t, math.IsNaN(h) || math.IsInf(h, 0))
		}
		// H(0) = dt * 3 / (2 + 1)
		assert.InDelta(t, dt, H[1], 1e-15)
		assert.InDelta(t, H[1], H[0], 1e-12)
		assert.InDelta(t, H[1], H[2], 1e-12)
	}
}

func TestInterpFreqFuncKnownValues(t *testing.T) {
	// At w = pi: sinc(1/2)^4 = 16/pi^4 and 2 + cos(pi) = 1
	H := InterpFreqFunc([]float64{math.Pi, 2 * math.Pi}, 1)
	assert.InDelta(t, 48/math.Pow(math.Pi, 4), H[0], 1e-12)
	assert.InDelta(t, 0.0, H[1], 1e-12)

	// Symmetric in w
	Hs := InterpFreqFunc([]float64{-0.7, 0.7}, 2)
	assert.Equal(t, Hs[0], Hs[1])
}

func TestInterpolationResponseDCIsOne(t *testing.T) {
	for _, n := range []int{1, 8, 101} {
		freqs := spectral.FFTFreq(n, 0.01)
		for _, dt := range []float64{0.01, 0.37, 2.5} {
			H := InterpolationResponse(freqs, dt)
			require.Len(t, H, n)
			assert.Equal(t, 1.0, H[0])
			for _, h := range H {
				assert.LessOrEqual(t, h, 1.0+1e-12)
			}
		}
	}
	assert.Empty(t, InterpolationResponse(nil, 1))
}

func TestInterpolationResponseDecaysWithSpacing(t *testing.T) {
	freqs := []float64{0, 1}
	fine := InterpolationResponse(freqs, 0.05)
	coarse := InterpolationResponse(freqs, 0.4)
	assert.Greater(t, fine[1], coarse[1])
}
