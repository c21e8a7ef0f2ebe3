package spectral

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSignalShape is returned for signals that are not a non-empty channel x time array
	ErrSignalShape = errors.New("signal must be a non-empty channel x time array")

	// ErrLengthMismatch is returned when a spectrum and its frequency grid differ in length
	ErrLengthMismatch = errors.New("spectrum and frequency grid lengths differ")
)

// ChannelsFromVector wraps a single-channel signal as a 1 x N channel array
func ChannelsFromVector(signal []float64) [][]float64 {
	return [][]float64{signal}
}

// ChannelsFromMatrix converts a channel x time matrix (one row per channel)
// into a channel array. Rows are copied.
func ChannelsFromMatrix(m mat.Matrix) [][]float64 {
	rows, _ := m.Dims()
	channels := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		channels[r] = mat.Row(nil, r, m)
	}
	return channels
}

// ValidateChannels checks that a signal has at least one channel, a non-empty
// time axis and equal length channels. It returns the time axis length.
func ValidateChannels(signal [][]float64) (int, error) {
	if len(signal) == 0 {
		return 0, fmt.Errorf("%w: no channels", ErrSignalShape)
	}

	n := len(signal[0])
	if n == 0 {
		return 0, fmt.Errorf("%w: empty time axis", ErrSignalShape)
	}

	for c, channel := range signal {
		if len(channel) != n {
			return 0, fmt.Errorf("%w: channel %d has %d samples, expected %d", ErrSignalShape, c, len(channel), n)
		}
	}

	return n, nil
}

// MakeReferenceSpectrum reduces a channel x time signal to one magnitude
// spectrum. Every channel is transformed along time, its DC bin is zeroed,
// and the channels are combined as sqrt(1/d) * ||S[:, k]|| for d channels.
// The output has the same length as the time axis.
func MakeReferenceSpectrum(signal [][]float64) ([]float64, error) {
	n, err := ValidateChannels(signal)
	if err != nil {
		return nil, err
	}

	d := len(signal)
	transform := NewFFT()

	// Accumulate |S[c, k]|^2 over channels
	sumSquares := make([]float64, n)
	for _, channel := range signal {
		S := transform.Compute(channel)
		S[0] = 0 // Remove DC component
		floats.Add(sumSquares, PowerSpectrumComplex(S))
	}

	scale := math.Sqrt(1.0 / float64(d))
	xhat := make([]float64, n)
	for k, ss := range sumSquares {
		xhat[k] = scale * math.Sqrt(ss)
	}

	return xhat, nil
}
