package knots

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/knotspace/algorithms/spectral"
	"github.com/RyanBlaney/knotspace/algorithms/spline"
	"github.com/RyanBlaney/knotspace/logging"
)

// JointResult holds the gyroscope and accelerometer knot spacings and
// residual variances
type JointResult struct {
	DtGyro  float64 `json:"dt_gyro"`
	VarGyro float64 `json:"var_gyro"`
	DtAcc   float64 `json:"dt_acc"`
	VarAcc  float64 `json:"var_acc"`
}

// JointKnotSpacingVariance picks the gyroscope knot spacing for quality
// qGyro, sets the accelerometer spacing to AccFactor times that, and
// estimates the accelerometer residual variance.
//
// Gyroscope noise integrates into orientation error, which leaks gravity
// into the specific force, so the accelerometer residual energy is
// EE = EA - EG - EHA + EHG with
//
//	EG  = var_gyro * N * 2g^2/3
//	EA  = energy(Xa)
//	EHA = energy(H * Xa)
//	EHG = energy(sqrt(EG)/N * H)
//
// and var_acc = EE / N. var_acc is not clamped and can come out negative.
func (e *Estimator) JointKnotSpacingVariance(xAcc, xGyro [][]float64, times []float64, qGyro float64) (*JointResult, error) {
	_, freqs, err := FrequencyGrid(times, len(times))
	if err != nil {
		return nil, err
	}

	Xa, err := spectral.MakeReferenceSpectrum(xAcc)
	if err != nil {
		return nil, fmt.Errorf("accelerometer: %w", err)
	}
	Xg, err := spectral.MakeReferenceSpectrum(xGyro)
	if err != nil {
		return nil, fmt.Errorf("gyroscope: %w", err)
	}

	gyro, err := e.knotSpacingAndVarianceSpectrum(Xg, times, qGyro)
	if err != nil {
		return nil, fmt.Errorf("gyroscope: %w", err)
	}

	dtAcc := e.config.AccFactor * gyro.Dt

	H := spline.InterpolationResponse(freqs, dtAcc)
	if len(H) != len(Xa) {
		return nil, fmt.Errorf("accelerometer: %w: spectrum %d, freqs %d", spectral.ErrLengthMismatch, len(Xa), len(H))
	}

	gravity := e.config.Gravity
	EG := gyro.Variance * float64(len(Xg)) * (2 * gravity * gravity / 3)
	EA := spectral.SignalEnergy(Xa)

	HA := make([]float64, len(H))
	HG := make([]float64, len(H))
	gyroLevel := math.Sqrt(EG) / float64(len(H))
	for k := range H {
		HA[k] = H[k] * Xa[k]
		HG[k] = gyroLevel * H[k]
	}
	EHA := spectral.SignalEnergy(HA)
	EHG := spectral.SignalEnergy(HG)

	EE := EA - EG - EHA + EHG
	varAcc := EE / float64(len(Xa))

	e.trace("joint knot spacing", logging.Fields{
		"dt_gyro":  gyro.Dt,
		"var_gyro": gyro.Variance,
		"dt_acc":   dtAcc,
		"var_acc":  varAcc,
	})

	return &JointResult{
		DtGyro:  gyro.Dt,
		VarGyro: gyro.Variance,
		DtAcc:   dtAcc,
		VarAcc:  varAcc,
	}, nil
}
