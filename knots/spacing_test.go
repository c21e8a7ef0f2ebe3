package knots

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/knotspace/algorithms/spectral"
)

const (
	testSampleRate = 100.0
	testSamples    = 1000
)

func sampleTimes(n int, sampleRate float64) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) / sampleRate
	}
	return times
}

// twoTones is sin(2pi*1t + phase) + 0.5*sin(2pi*3t + phase)
func twoTones(times []float64, phase, scale float64) []float64 {
	x := make([]float64, len(times))
	for i, t := range times {
		x[i] = scale * (math.Sin(2*math.Pi*t+phase) + 0.5*math.Sin(2*math.Pi*3*t+phase))
	}
	return x
}

func TestFindUniformKnotSpacingTwoTones(t *testing.T) {
	e := newTestEstimator(t, nil)
	times := sampleTimes(testSamples, testSampleRate)
	signal := spectral.ChannelsFromVector(twoTones(times, 0, 1))

	dt, err := e.FindUniformKnotSpacing(signal, times, 0.99)
	require.NoError(t, err)

	minDt := 1 / testSampleRate
	maxDt := (testSamples / 4) / testSampleRate
	assert.Greater(t, dt, minDt)
	assert.Less(t, dt, maxDt)

	// The 3 Hz tone drives the spacing: it needs roughly 0.08 < dt < 0.16
	assert.Greater(t, dt, 0.078)
	assert.Less(t, dt, 0.157)

	xhat, err := spectral.MakeReferenceSpectrum(signal)
	require.NoError(t, err)
	_, freqs, err := FrequencyGrid(times, len(times))
	require.NoError(t, err)

	qf, err := SpectrumQualityFunc(xhat, freqs, 0.99)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, qf(dt), 1e-6)

	removed, err := RemovedEnergy(xhat, freqs, dt)
	require.NoError(t, err)
	retained := 1 - removed/spectral.SignalEnergy(xhat)
	assert.GreaterOrEqual(t, retained, 0.99-1e-6)
}

func TestKnotSpacingAndVarianceRoundTrip(t *testing.T) {
	e := newTestEstimator(t, nil)
	times := sampleTimes(testSamples, testSampleRate)
	signal := [][]float64{
		twoTones(times, 0, 1),
		twoTones(times, 0.4, 0.8),
		twoTones(times, 1.3, 1.2),
	}

	result, err := e.KnotSpacingAndVariance(signal, times, 0.99)
	require.NoError(t, err)

	xhat, err := spectral.MakeReferenceSpectrum(signal)
	require.NoError(t, err)

	dt, err := e.FindUniformKnotSpacingSpectrum(xhat, times, 0.99)
	require.NoError(t, err)
	assert.Equal(t, dt, result.Dt)

	_, freqs, err := FrequencyGrid(times, len(xhat))
	require.NoError(t, err)
	removed, err := RemovedEnergy(xhat, freqs, dt)
	require.NoError(t, err)

	variance, err := DtToVarianceSpectrum(xhat, freqs, dt)
	require.NoError(t, err)
	assert.Equal(t, variance, result.Variance)
	assert.InDelta(t, removed/float64(len(xhat)), variance, 1e-12)

	// At the solved spacing the removed energy is exactly the 1% budget
	budget := spectral.SignalEnergy(xhat) * (1 - 0.99) / float64(len(xhat))
	assert.InDelta(t, budget, variance, budget*1e-6)
}

func TestFindUniformKnotSpacingExplicitBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDt = 0.02
	cfg.MaxDt = 0.05
	e := newTestEstimator(t, cfg)

	times := sampleTimes(testSamples, testSampleRate)
	dt, err := e.FindUniformKnotSpacing(spectral.ChannelsFromVector(twoTones(times, 0, 1)), times, 0.99)
	require.NoError(t, err)

	// Already good enough at the upper bound
	assert.Equal(t, 0.05, dt)
}

func TestFindUniformKnotSpacingErrors(t *testing.T) {
	e := newTestEstimator(t, nil)
	times := sampleTimes(8, 10)

	_, err := e.FindUniformKnotSpacingSpectrum(make([]float64, 4), times, 0.9)
	assert.True(t, errors.Is(err, spectral.ErrLengthMismatch))

	_, err = e.FindUniformKnotSpacingSpectrum(make([]float64, 1), []float64{0}, 0.9)
	assert.True(t, errors.Is(err, ErrInvalidTimes))

	_, err = e.FindUniformKnotSpacingSpectrum(make([]float64, 3), []float64{2, 1, 0}, 0.9)
	assert.True(t, errors.Is(err, ErrInvalidTimes))

	_, err = e.FindUniformKnotSpacingSpectrum(make([]float64, 8), times, 1.5)
	assert.True(t, errors.Is(err, ErrInvalidQuality))

	_, err = e.FindUniformKnotSpacing([][]float64{{1, 2}, {1}}, times, 0.9)
	assert.True(t, errors.Is(err, spectral.ErrSignalShape))
}

func TestFrequencyGrid(t *testing.T) {
	sampleRate, freqs, err := FrequencyGrid(sampleTimes(4, 8), 4)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, sampleRate, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 2, -4, -2}, freqs, 1e-12)
}
