package knots

import (
	"errors"
	"fmt"
	"math"

	"github.com/RyanBlaney/knotspace/algorithms/common"
	"github.com/RyanBlaney/knotspace/algorithms/spectral"
	"github.com/RyanBlaney/knotspace/algorithms/spline"
	"github.com/RyanBlaney/knotspace/logging"
)

// ErrInvalidQuality is returned for quality targets outside (0, 1]
var ErrInvalidQuality = errors.New("quality must be in (0, 1]")

// sampleRateOf derives the sample rate from timestamps
func sampleRateOf(times []float64) (float64, error) {
	if len(times) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTimes, len(times))
	}

	sampleRate := common.SampleRate(times)
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: mean step %g", ErrInvalidTimes, common.MeanStep(times))
	}

	return sampleRate, nil
}

// FrequencyGrid returns the sample rate implied by times and the FFT
// frequency grid for n samples at that rate
func FrequencyGrid(times []float64, n int) (float64, []float64, error) {
	sampleRate, err := sampleRateOf(times)
	if err != nil {
		return 0, nil, err
	}
	return sampleRate, spectral.FFTFreq(n, 1/sampleRate), nil
}

// residual applies the removed-energy filter (1 - H) to a magnitude spectrum
func residual(H, spectrum []float64) []float64 {
	out := make([]float64, len(spectrum))
	for i := range spectrum {
		out[i] = (1 - H[i]) * spectrum[i]
	}
	return out
}

// RemovedEnergy is the spectrum energy a spline with knot spacing dt fails
// to reproduce
func RemovedEnergy(spectrum, freqs []float64, dt float64) (float64, error) {
	if len(spectrum) != len(freqs) {
		return 0, fmt.Errorf("%w: spectrum %d, freqs %d", spectral.ErrLengthMismatch, len(spectrum), len(freqs))
	}

	H := spline.InterpolationResponse(freqs, dt)
	return spectral.SignalEnergy(residual(H, spectrum)), nil
}

// SpectrumQualityFunc builds the quality function used by the uniform
// spacing search: the allowed removed energy, energy(spectrum)*(1-quality),
// divided by the energy removed at dt. Values >= 1 meet the target.
func SpectrumQualityFunc(spectrum, freqs []float64, quality float64) (QualityFunc, error) {
	if len(spectrum) != len(freqs) {
		return nil, fmt.Errorf("%w: spectrum %d, freqs %d", spectral.ErrLengthMismatch, len(spectrum), len(freqs))
	}
	if !(quality > 0 && quality <= 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidQuality, quality)
	}

	maxRemove := spectral.SignalEnergy(spectrum) * (1 - quality)

	return func(dt float64) float64 {
		H := spline.InterpolationResponse(freqs, dt)
		removed := spectral.SignalEnergy(residual(H, spectrum))
		return maxRemove / removed
	}, nil
}

// bounds resolves the search interval, defaulting to one sample period and
// a quarter of the observation window
func (e *Estimator) bounds(n int, sampleRate float64) (float64, float64) {
	minDt := e.config.MinDt
	if minDt == 0 {
		minDt = 1 / sampleRate
	}

	maxDt := e.config.MaxDt
	if maxDt == 0 {
		maxDt = (float64(n) / 4) / sampleRate
	}

	return minDt, maxDt
}

// FindUniformKnotSpacingSpectrum finds the largest uniform knot spacing
// that keeps the given fraction of the energy in a precomputed reference
// spectrum. times must have one entry per spectrum bin.
func (e *Estimator) FindUniformKnotSpacingSpectrum(xhat, times []float64, quality float64) (float64, error) {
	sampleRate, freqs, err := FrequencyGrid(times, len(times))
	if err != nil {
		return 0, err
	}

	qualityFunc, err := SpectrumQualityFunc(xhat, freqs, quality)
	if err != nil {
		return 0, err
	}

	minDt, maxDt := e.bounds(len(times), sampleRate)
	e.trace("searching uniform knot spacing", logging.Fields{
		"sample_rate": sampleRate,
		"quality":     quality,
		"min_dt":      minDt,
		"max_dt":      maxDt,
	})

	return e.FindMaxQualityDt(qualityFunc, 1.0, minDt, maxDt)
}

// FindUniformKnotSpacing finds the largest uniform knot spacing that keeps
// the given fraction of a channel x time signal's energy
func (e *Estimator) FindUniformKnotSpacing(signal [][]float64, times []float64, quality float64) (float64, error) {
	xhat, err := spectral.MakeReferenceSpectrum(signal)
	if err != nil {
		return 0, err
	}
	return e.FindUniformKnotSpacingSpectrum(xhat, times, quality)
}
