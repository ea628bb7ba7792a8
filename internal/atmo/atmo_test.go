package atmo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"bundlesim/internal/atmo"
	"bundlesim/internal/dist"
)

func newRand(seed uint64) *xrand.Rand {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(seed)
	return rnd
}

// TestSample_Intervals checks the default spec's declared intervals,
// including the view-azimuth wrap onto [0,360).
func TestSample_Intervals(t *testing.T) {
	spec := atmo.DefaultSpec()
	ps, err := spec.Sample(1000, newRand(11))
	require.NoError(t, err)
	for i, p := range ps {
		assert.Equal(t, atmo.AtmosTropical, p.Atmosphere)
		ok := p.Aerosol == atmo.AeroContinental || p.Aerosol == atmo.AeroBiomassBurning
		assert.True(t, ok, "atmosphere %d aerosol %s", i, p.Aerosol)
		assert.True(t, p.AOT550 >= 0.3 && p.AOT550 <= 0.7, "atmosphere %d aot=%g", i, p.AOT550)
		assert.True(t, p.SolarZenith.Deg() >= 10 && p.SolarZenith.Deg() <= 45)
		assert.True(t, p.SolarAzimuth.Deg() >= 0 && p.SolarAzimuth.Deg() <= 359)
		va := p.ViewAzimuth.Deg()
		wrapped := (va >= 0 && va <= 2.5) || (va >= 357.5 && va < 360)
		assert.True(t, wrapped, "atmosphere %d view azimuth %g not wrapped", i, va)
		assert.True(t, p.ViewZenith.Deg() >= 0 && p.ViewZenith.Deg() <= 1)
	}
}

func TestSample_Deterministic(t *testing.T) {
	spec := atmo.DefaultSpec()
	a, err := spec.Sample(20, newRand(5))
	require.NoError(t, err)
	b, err := spec.Sample(20, newRand(5))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestValidate(t *testing.T) {
	spec := atmo.DefaultSpec()
	require.NoError(t, spec.Validate())

	spec.Aerosols = nil
	assert.Error(t, spec.Validate())

	spec = atmo.DefaultSpec()
	spec.AOT550 = dist.Uniform{Lo: 0.7, Hi: 0.3}
	assert.ErrorIs(t, spec.Validate(), dist.ErrBadInterval)
}

// TestWriteInputFile verifies the provenance record carries every
// model input.
func TestWriteInputFile(t *testing.T) {
	spec := atmo.DefaultSpec()
	ps, err := spec.Sample(1, newRand(2))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test_atm_01.sixs")
	require.NoError(t, ps[0].WriteInputFile(path, "privcali"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, "6S atmospheric inputs\n"))
	assert.Contains(t, s, "aerosol profile "+string(ps[0].Aerosol))
	assert.Contains(t, s, "atmospheric profile Tropical")
	assert.Contains(t, s, "aot550 ")
	assert.Contains(t, s, "solar zenith ")
	assert.Contains(t, s, "ground reflectance HomogeneousLambertian privcali")
	assert.Contains(t, s, "output apparent_reflectance")
}
