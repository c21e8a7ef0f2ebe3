package knots

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/knotspace/algorithms/common"
	"github.com/RyanBlaney/knotspace/logging"
)

// QualityFunc maps a knot spacing to a quality score. Larger is better and
// the score is expected to fall as the spacing grows.
type QualityFunc func(dt float64) float64

// Estimator chooses uniform knot spacings and the fit variance they imply
type Estimator struct {
	config *Config
	logger logging.Logger
}

// NewEstimator creates an estimator. A nil config uses DefaultConfig.
func NewEstimator(config *Config) (*Estimator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := logging.WithFields(logging.Fields{
		"component": "knot_spacing",
	})

	return &Estimator{
		config: config,
		logger: logger,
	}, nil
}

// WithLogger replaces the estimator's logger
func (e *Estimator) WithLogger(logger logging.Logger) *Estimator {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Estimator{config: e.config, logger: logger}
}

// Config returns the estimator configuration
func (e *Estimator) Config() *Config {
	return e.config
}

// trace logs a search step; verbose runs promote it to info
func (e *Estimator) trace(msg string, fields logging.Fields) {
	if e.config.Verbose {
		e.logger.Info(msg, fields)
	} else {
		e.logger.Debug(msg, fields)
	}
}

// FindMaxQualityDt returns the largest dt in [minDt, maxDt] with
// qualityFunc(dt) >= minQ.
//
// maxDt is tried first and returned if it already meets minQ. Otherwise dt
// backtracks from maxDt by a step that starts at maxDt/2 and halves every
// iteration, clamped at minDt. The first iterate whose quality strictly
// exceeds minQ brackets the crossing together with maxDt, and the crossing
// is refined with Brent's method. A bracket that turns out not to change
// sign is returned as an error wrapping common.ErrNoBracket.
//
// If minDt is reached without exceeding minQ, the best spacing seen while
// backtracking is returned without error even though it misses the target.
// ErrNoFeasibleSpacing is only returned when no backtracked iterate had
// positive quality.
func (e *Estimator) FindMaxQualityDt(qualityFunc QualityFunc, minQ, minDt, maxDt float64) (float64, error) {
	if !(minDt > 0) || !(maxDt >= minDt) || math.IsInf(maxDt, 0) {
		return 0, fmt.Errorf("%w: need 0 < min_dt <= max_dt, got min_dt=%g max_dt=%g",
			ErrInvalidConfig, minDt, maxDt)
	}

	// Endpoint check
	dt := maxDt
	q := qualityFunc(dt)
	if q >= minQ {
		e.trace("found at endpoint", logging.Fields{"dt": dt, "q": q})
		return dt, nil
	}

	e.trace("endpoint below target", logging.Fields{"q": q, "min_q": minQ})

	// Backtrack
	step := maxDt * 0.5
	maxQuality := 0.0
	maxQualityDt := 0.0
	found := false

	for {
		dt -= step
		if dt < minDt {
			dt = minDt
		}

		q = qualityFunc(dt)
		e.trace("trying", logging.Fields{"dt": dt, "q": q})

		if q > minQ {
			rootFunc := func(x float64) float64 {
				return qualityFunc(x) - minQ
			}

			e.trace("switching to brent", logging.Fields{
				"lower": dt,
				"upper": maxDt,
			})

			brentDt, err := common.BrentRoot(rootFunc, dt, maxDt, e.config.rootOptions())
			if err != nil {
				return 0, fmt.Errorf("refining knot spacing in [%g, %g]: %w", dt, maxDt, err)
			}

			e.trace("found", logging.Fields{"dt": brentDt})
			return brentDt, nil
		}

		step *= 0.5
		if q > maxQuality {
			maxQuality = q
			maxQualityDt = dt
			found = true
		}

		if dt <= minDt {
			if !found {
				return 0, ErrNoFeasibleSpacing
			}
			e.trace("dt too small, no dt satisfies condition, returning best", logging.Fields{
				"dt": maxQualityDt,
				"q":  maxQuality,
			})
			return maxQualityDt, nil
		}
	}
}
