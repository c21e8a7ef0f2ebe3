package common

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoBracket is returned when f(a) and f(b) have the same sign
	ErrNoBracket = errors.New("root not bracketed: f(a) and f(b) must have different signs")

	// ErrNoConvergence is returned when the solver runs out of iterations
	ErrNoConvergence = errors.New("root solver failed to converge")
)

// Default tolerances for BrentRoot, matching the usual brentq defaults
const (
	DefaultRootXTol    = 2e-12
	DefaultRootRTol    = 4 * 2.220446049250313e-16
	DefaultRootMaxIter = 100
)

// RootOptions controls the termination of BrentRoot
type RootOptions struct {
	XTol    float64
	RTol    float64
	MaxIter int
}

// DefaultRootOptions returns the default solver tolerances
func DefaultRootOptions() RootOptions {
	return RootOptions{
		XTol:    DefaultRootXTol,
		RTol:    DefaultRootRTol,
		MaxIter: DefaultRootMaxIter,
	}
}

// BrentRoot finds a zero of f in the bracket [a, b] using Brent's method
// (inverse quadratic interpolation and secant steps guarded by bisection).
// f(a) and f(b) must have opposite signs, otherwise ErrNoBracket is returned.
// The returned root x satisfies |x - x*| <= XTol + RTol*|x|.
func BrentRoot(f func(float64) float64, a, b float64, opts RootOptions) (float64, error) {
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultRootMaxIter
	}

	xpre, xcur := a, b
	fpre, fcur := f(xpre), f(xcur)

	if fpre*fcur > 0 {
		return 0, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrNoBracket, a, fpre, b, fcur)
	}
	if fpre == 0 {
		return xpre, nil
	}
	if fcur == 0 {
		return xcur, nil
	}

	var xblk, fblk, spre, scur float64

	for i := 0; i < opts.MaxIter; i++ {
		if fpre != 0 && fcur != 0 && math.Signbit(fpre) != math.Signbit(fcur) {
			xblk = xpre
			fblk = fpre
			spre = xcur - xpre
			scur = spre
		}
		if math.Abs(fblk) < math.Abs(fcur) {
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta := (opts.XTol + opts.RTol*math.Abs(xcur)) / 2
		sbis := (xblk - xcur) / 2
		if fcur == 0 || math.Abs(sbis) < delta {
			return xcur, nil
		}

		if math.Abs(spre) > delta && math.Abs(fcur) < math.Abs(fpre) {
			var stry float64
			if xpre == xblk {
				// secant
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				// inverse quadratic
				dpre := (fpre - fcur) / (xpre - xcur)
				dblk := (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}

			if 2*math.Abs(stry) < math.Min(math.Abs(spre), 3*math.Abs(sbis)-delta) {
				spre = scur
				scur = stry
			} else {
				spre = sbis
				scur = sbis
			}
		} else {
			spre = sbis
			scur = sbis
		}

		xpre = xcur
		fpre = fcur
		if math.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}

		fcur = f(xcur)
	}

	return xcur, fmt.Errorf("%w after %d iterations (x=%g)", ErrNoConvergence, opts.MaxIter, xcur)
}
