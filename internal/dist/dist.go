// Package dist defines the sampling distributions bundle parameters
// are drawn from.
//
// A Distribution is a pure function of a random source.  Uniform draws
// directly over a closed range.  Gaussian draws from a normal
// distribution truncated to a valid interval by rejection: draws
// outside the interval are discarded and retried, never clipped, so an
// accepted value always lies inside the interval.  Constant stands in
// for parameters with no variability.
package dist

import (
	"errors"
	"fmt"

	xrand "golang.org/x/exp/rand"
)

var (
	// ErrNoConverge is returned when a truncated Gaussian fails to
	// produce an in-interval draw within its draw budget.
	ErrNoConverge = errors.New("dist: rejection sampling did not converge")

	// ErrBadInterval is returned by Validate for an empty or inverted
	// valid interval.
	ErrBadInterval = errors.New("dist: invalid interval")
)

// DefaultMaxDraws bounds the rejection loop of a Gaussian that does
// not set its own budget.  The reference behavior has no bound and
// can spin forever when the interval excludes most of the probability
// mass; a budget this size is unreachable for any sane configuration
// (the default canopy distributions keep well over half the mass
// in-interval) while still turning a pathological one into an error.
const DefaultMaxDraws = 100000

// Distribution is one parameter's sampling rule.
type Distribution interface {
	// Sample draws one value from rnd.
	Sample(rnd *xrand.Rand) (float64, error)

	// Validate reports a configuration error before any sampling
	// starts.
	Validate() error
}

// Uniform draws uniformly over the closed range [Lo, Hi].  The range
// itself defines validity, so no rejection is involved.
type Uniform struct {
	Lo, Hi float64
}

func (u Uniform) Sample(rnd *xrand.Rand) (float64, error) {
	return u.Lo + rnd.Float64()*(u.Hi-u.Lo), nil
}

func (u Uniform) Validate() error {
	if u.Hi < u.Lo {
		return fmt.Errorf("%w: uniform [%g,%g]", ErrBadInterval, u.Lo, u.Hi)
	}
	return nil
}

// Gaussian draws from a normal distribution with the given moments,
// truncated to the closed interval [Lo, Hi] by rejection.  MaxDraws
// bounds the rejection loop; zero means DefaultMaxDraws.
type Gaussian struct {
	Mean, StdDev float64
	Lo, Hi       float64
	MaxDraws     int
}

func (g Gaussian) Sample(rnd *xrand.Rand) (float64, error) {
	max := g.MaxDraws
	if max <= 0 {
		max = DefaultMaxDraws
	}
	for n := 0; n < max; n++ {
		v := g.Mean + rnd.NormFloat64()*g.StdDev
		if v >= g.Lo && v <= g.Hi {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: N(%g,%g) truncated to [%g,%g], %d draws",
		ErrNoConverge, g.Mean, g.StdDev, g.Lo, g.Hi, max)
}

func (g Gaussian) Validate() error {
	if g.Hi < g.Lo {
		return fmt.Errorf("%w: gaussian interval [%g,%g]", ErrBadInterval, g.Lo, g.Hi)
	}
	if g.StdDev < 0 {
		return fmt.Errorf("%w: negative stddev %g", ErrBadInterval, g.StdDev)
	}
	return nil
}

// Constant is a degenerate distribution returning a fixed value, used
// for parameters held fixed across a run (brown pigment, nadir view
// geometry).
type Constant struct {
	Value float64
}

func (c Constant) Sample(rnd *xrand.Rand) (float64, error) {
	return c.Value, nil
}

func (c Constant) Validate() error { return nil }
