package canopy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"bundlesim/internal/canopy"
	"bundlesim/internal/dist"
)

func newRand(seed uint64) *xrand.Rand {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(seed)
	return rnd
}

// TestSample_Intervals checks every sampled bundle against the
// declared valid intervals of the default spec.
func TestSample_Intervals(t *testing.T) {
	spec := canopy.DefaultSpec()
	for seed := uint64(1); seed <= 5; seed++ {
		ps, err := spec.Sample(500, newRand(seed))
		require.NoError(t, err)
		require.Len(t, ps, 500)
		for i, p := range ps {
			assert.True(t, p.N >= 1.3 && p.N <= 2.5, "bundle %d N=%g", i, p.N)
			assert.True(t, p.Chlorophyll >= 5 && p.Chlorophyll <= 75, "bundle %d chloro=%g", i, p.Chlorophyll)
			assert.True(t, p.Carotenoids >= 1.5 && p.Carotenoids <= 15, "bundle %d caroten=%g", i, p.Carotenoids)
			assert.Zero(t, p.Brown)
			assert.True(t, p.EWT >= 0.002 && p.EWT <= 0.05, "bundle %d ewt=%g", i, p.EWT)
			assert.True(t, p.LMA >= 0.0022 && p.LMA <= 0.0365, "bundle %d lma=%g", i, p.LMA)
			assert.True(t, p.SoilReflectance >= 0 && p.SoilReflectance <= 1)
			assert.True(t, p.LAI >= 0.1 && p.LAI <= 18, "bundle %d lai=%g", i, p.LAI)
			assert.True(t, p.HotSpot >= 0.05 && p.HotSpot <= 0.5)
			assert.True(t, p.LIDFInclination >= -0.4 && p.LIDFInclination <= 0.4)
			assert.True(t, p.LIDFBimodality >= -0.1 && p.LIDFBimodality <= 0.2)
			assert.InDelta(t, 20, p.SolarZenith.Deg(), 1e-12)
			assert.True(t, p.SolarAzimuth.Deg() >= 0 && p.SolarAzimuth.Deg() <= 360)
			assert.Zero(t, p.ViewZenith)
			assert.Zero(t, p.ViewAzimuth)
		}
	}
}

// TestSample_Deterministic: same seed, same parameter sequence.
func TestSample_Deterministic(t *testing.T) {
	spec := canopy.DefaultSpec()
	a, err := spec.Sample(50, newRand(3))
	require.NoError(t, err)
	b, err := spec.Sample(50, newRand(3))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSample_ConvergenceError(t *testing.T) {
	spec := canopy.DefaultSpec()
	spec.LAI = dist.Gaussian{Mean: 3, StdDev: 0.001, Lo: 17, Hi: 18, MaxDraws: 10}
	_, err := spec.Sample(3, newRand(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, dist.ErrNoConverge)
	assert.Contains(t, err.Error(), "lai", "error names the parameter")
	assert.Contains(t, err.Error(), "bundle 0", "error names the bundle index")
}

func TestValidate(t *testing.T) {
	spec := canopy.DefaultSpec()
	require.NoError(t, spec.Validate())

	spec.EWT = dist.Uniform{Lo: 0.05, Hi: 0.002}
	err := spec.Validate()
	assert.ErrorIs(t, err, dist.ErrBadInterval)
	assert.Contains(t, err.Error(), "ewt")

	spec = canopy.DefaultSpec()
	spec.HotSpot = nil
	assert.Error(t, spec.Validate())
}
