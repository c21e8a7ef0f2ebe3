package spectral

import (
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum turns a magnitude spectrum into power per bin
func PowerSpectrum(magnitudeSpectrum []float64) []float64 {
	if len(magnitudeSpectrum) == 0 {
		return []float64{}
	}

	power := make([]float64, len(magnitudeSpectrum))
	floats.MulTo(power, magnitudeSpectrum, magnitudeSpectrum)
	return power
}

// PowerSpectrumComplex returns |X[k]|^2 for every bin
func PowerSpectrumComplex(spectrum []complex128) []float64 {
	if len(spectrum) == 0 {
		return []float64{}
	}

	power := make([]float64, len(spectrum))
	for i, val := range spectrum {
		re, im := real(val), imag(val)
		power[i] = re*re + im*im
	}

	return power
}

// SignalEnergy returns the mean squared magnitude of a real spectrum,
// sum(|X|^2) / N. An empty spectrum has zero energy.
func SignalEnergy(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}
	return floats.Dot(spectrum, spectrum) / float64(len(spectrum))
}

// SignalEnergyComplex is SignalEnergy for a complex spectrum
func SignalEnergyComplex(spectrum []complex128) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}
	return floats.Sum(PowerSpectrumComplex(spectrum)) / float64(len(spectrum))
}
