package knots

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/knotspace/algorithms/common"
)

// StandardGravity is the gravity magnitude (m/s^2) used to map gyroscope
// noise to accelerometer energy
const StandardGravity = 9.8065

var (
	// ErrInvalidConfig is returned by Config.Validate
	ErrInvalidConfig = errors.New("invalid knot spacing config")

	// ErrInvalidTimes is returned when a sample rate cannot be derived from the timestamps
	ErrInvalidTimes = errors.New("timestamps must contain at least two increasing samples")

	// ErrNoFeasibleSpacing is returned by the search when no tried spacing had positive quality
	ErrNoFeasibleSpacing = errors.New("no knot spacing with positive quality found")
)

// Config holds the knot spacing search settings
type Config struct {
	// Search bounds in seconds. Zero derives the defaults from the timestamps:
	// one sample period and a quarter of the observation window.
	MinDt float64 `json:"min_dt,omitempty"`
	MaxDt float64 `json:"max_dt,omitempty"`

	// Verbose logs every search step at info level instead of debug
	Verbose bool `json:"verbose"`

	// Accelerometer knot spacing as a multiple of the gyroscope spacing
	AccFactor float64 `json:"acc_factor"`
	Gravity   float64 `json:"gravity"`

	// Root solver termination
	RootXTol    float64 `json:"root_xtol"`
	RootRTol    float64 `json:"root_rtol"`
	RootMaxIter int     `json:"root_max_iter"`
}

// DefaultConfig returns the default search configuration
func DefaultConfig() *Config {
	return &Config{
		AccFactor:   2.0,
		Gravity:     StandardGravity,
		RootXTol:    common.DefaultRootXTol,
		RootRTol:    common.DefaultRootRTol,
		RootMaxIter: common.DefaultRootMaxIter,
	}
}

// Validate checks the config for values the search cannot work with
func (c *Config) Validate() error {
	if c.MinDt < 0 || c.MaxDt < 0 {
		return fmt.Errorf("%w: negative dt bound (min_dt=%g, max_dt=%g)", ErrInvalidConfig, c.MinDt, c.MaxDt)
	}
	if c.MinDt > 0 && c.MaxDt > 0 && c.MinDt > c.MaxDt {
		return fmt.Errorf("%w: min_dt %g exceeds max_dt %g", ErrInvalidConfig, c.MinDt, c.MaxDt)
	}
	if c.AccFactor <= 0 {
		return fmt.Errorf("%w: acc_factor must be positive, got %g", ErrInvalidConfig, c.AccFactor)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidConfig, c.Gravity)
	}
	if c.RootXTol < 0 || c.RootRTol < 0 || c.RootMaxIter <= 0 {
		return fmt.Errorf("%w: bad root solver tolerances", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) rootOptions() common.RootOptions {
	return common.RootOptions{
		XTol:    c.RootXTol,
		RTol:    c.RootRTol,
		MaxIter: c.RootMaxIter,
	}
}
