package common

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical helpers shared by the spectral and knot packages, backed by gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopVariance calculates the population variance (divides by N, like numpy's var)
func PopVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.PopVariance(data, nil)
}

// ComplexPopVariance calculates the population variance of a complex series,
// i.e. mean(|x - mean(x)|^2). This is the square of numpy's std for complex input.
func ComplexPopVariance(data []complex128) float64 {
	if len(data) == 0 {
		return 0.0
	}

	re := make([]float64, len(data))
	im := make([]float64, len(data))
	for i, val := range data {
		re[i] = real(val)
		im[i] = imag(val)
	}

	return PopVariance(re) + PopVariance(im)
}

// Diff returns the consecutive differences data[i+1] - data[i]
func Diff(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}

	diff := make([]float64, len(data)-1)
	floats.SubTo(diff, data[1:], data[:len(data)-1])
	return diff
}

// MeanStep returns the mean spacing between consecutive samples
func MeanStep(data []float64) float64 {
	return Mean(Diff(data))
}

// SampleRate derives a sample rate from (nearly) uniformly spaced timestamps
// as the reciprocal of the mean step. Returns 0 when fewer than two
// timestamps are given.
func SampleRate(times []float64) float64 {
	if len(times) < 2 {
		return 0.0
	}
	return 1.0 / MeanStep(times)
}
