package spline

import (
	"math"
)

// Sinc is the normalized sinc function sin(pi*x)/(pi*x), with Sinc(0) = 1
func Sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// interpResponse is the cubic B-spline interpolation transfer function
// H(w) = 3*sinc(w/2pi)^4 / (2 + cos(w)) at unit knot spacing (Mihajlovic 1999)
func interpResponse(w float64) float64 {
	s := Sinc(w / (2 * math.Pi))
	a := 3 * s * s * s * s
	b := 2 + math.Cos(w)
	return a / b
}

// InterpFreqFunc evaluates the cubic B-spline interpolation frequency
// response for knot spacing dt at every angular frequency in w, scaled by dt:
// dt * H(w*dt).
func InterpFreqFunc(w []float64, dt float64) []float64 {
	H := make([]float64, len(w))
	for i, wi := range w {
		H[i] = dt * interpResponse(wi*dt)
	}
	return H
}

// InterpolationResponse evaluates the spline response on an FFT frequency grid
// (in Hz) for knot spacing dt, normalized by the first bin. For a grid that
// starts at the DC bin this makes H[0] exactly 1.
func InterpolationResponse(freqs []float64, dt float64) []float64 {
	if len(freqs) == 0 {
		return []float64{}
	}

	w := make([]float64, len(freqs))
	for i, f := range freqs {
		w[i] = 2 * math.Pi * f
	}

	H := InterpFreqFunc(w, dt)
	h0 := H[0]
	for i := range H {
		H[i] /= h0
	}

	return H
}
