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

// ErrNonPositiveVariance is returned when a weight is requested for a variance <= 0
var ErrNonPositiveVariance = errors.New("variance must be positive")

// SpacingResult is a chosen knot spacing and the per-sample squared error it implies
type SpacingResult struct {
	Dt       float64 `json:"dt"`
	Variance float64 `json:"variance"`
}

// FitVariance is the expected variance of a spline fit and its error signal
type FitVariance struct {
	Variance float64 `json:"variance"`

	// Components of Variance
	BiasVariance  float64 `json:"bias_variance"`
	NoiseVariance float64 `json:"noise_variance"`

	SamplesPerKnot float64 `json:"samples_per_knot"`

	// Time domain error of the filtered out spectral content
	ErrorSignal []complex128 `json:"-"`
}

// DtToVarianceSpectrum returns the expected per-sample squared error of a
// spline with knot spacing splineDt: the removed energy divided by N
func DtToVarianceSpectrum(spectrum, freqs []float64, splineDt float64) (float64, error) {
	removed, err := RemovedEnergy(spectrum, freqs, splineDt)
	if err != nil {
		return 0, err
	}
	return removed / float64(len(spectrum)), nil
}

// QualityToVarianceSpectrum converts a quality target directly into a
// variance, (1-q) * mean(spectrum^2) / N
func QualityToVarianceSpectrum(spectrum []float64, q float64) float64 {
	n := len(spectrum)
	if n == 0 {
		return 0.0
	}
	return (1 - q) * common.Mean(spectral.PowerSpectrum(spectrum)) / float64(n)
}

// MeasurementWeight converts a residual variance into the scalar weight of
// a measurement residual, 1/sqrt(variance)
func MeasurementWeight(variance float64) (float64, error) {
	if !(variance > 0) {
		return 0, fmt.Errorf("%w: got %g", ErrNonPositiveVariance, variance)
	}
	return 1 / math.Sqrt(variance), nil
}

// KnotSpacingAndVariance finds the knot spacing for a channel x time signal
// and the variance of the resulting fit
func (e *Estimator) KnotSpacingAndVariance(signal [][]float64, times []float64, quality float64) (*SpacingResult, error) {
	xhat, err := spectral.MakeReferenceSpectrum(signal)
	if err != nil {
		return nil, err
	}
	return e.knotSpacingAndVarianceSpectrum(xhat, times, quality)
}

func (e *Estimator) knotSpacingAndVarianceSpectrum(xhat, times []float64, quality float64) (*SpacingResult, error) {
	dt, err := e.FindUniformKnotSpacingSpectrum(xhat, times, quality)
	if err != nil {
		return nil, err
	}

	_, freqs, err := FrequencyGrid(times, len(xhat))
	if err != nil {
		return nil, err
	}

	variance, err := DtToVarianceSpectrum(xhat, freqs, dt)
	if err != nil {
		return nil, err
	}

	e.trace("knot spacing and variance", logging.Fields{"dt": dt, "variance": variance})

	return &SpacingResult{Dt: dt, Variance: variance}, nil
}

// EstimateVarianceOfFit estimates the time domain variance of fitting a
// spline with spacing splineDt to a signal corrupted by white noise of
// standard deviation noiseStd. It sums the variance of the filtered out
// content, ifft((1-H)*X), and of the noise passed by the spline,
// ifft(H*sqrt(N)*noiseStd). spectrum may be nil, in which case the FFT of
// signal is used.
func EstimateVarianceOfFit(signal []float64, sampleRate, splineDt, noiseStd float64, spectrum []complex128) (*FitVariance, error) {
	n := len(signal)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty signal", spectral.ErrSignalShape)
	}

	transform := spectral.NewFFT()

	xhat := spectrum
	if xhat == nil {
		xhat = transform.Compute(signal)
	}
	if len(xhat) != n {
		return nil, fmt.Errorf("%w: spectrum %d, signal %d", spectral.ErrLengthMismatch, len(xhat), n)
	}

	freqs := spectral.FFTFreq(n, 1/sampleRate)
	H := spline.InterpolationResponse(freqs, splineDt)

	E := make([]complex128, n)
	HN := make([]float64, n)
	noiseScale := math.Sqrt(float64(n)) * noiseStd
	for k := range H {
		E[k] = complex(1-H[k], 0) * xhat[k]
		HN[k] = H[k] * noiseScale
	}

	e := transform.ComputeInverse(E)
	hn := transform.ComputeInverseReal(HN)

	bias := common.ComplexPopVariance(e)
	noise := common.ComplexPopVariance(hn)

	return &FitVariance{
		Variance:       bias + noise,
		BiasVariance:   bias,
		NoiseVariance:  noise,
		SamplesPerKnot: sampleRate * splineDt,
		ErrorSignal:    e,
	}, nil
}
