// Package atmo defines the atmospheric state sampled per atmosphere
// iteration of the soil-bundle pipeline, and the provenance record
// written for each one.
package atmo

import (
	"fmt"

	"github.com/soniakeys/unit"
	xrand "golang.org/x/exp/rand"

	"bundlesim/internal/dist"
)

// AerosolProfile names a predefined aerosol type of the atmospheric
// model.
type AerosolProfile string

const (
	AeroBiomassBurning AerosolProfile = "BiomassBurning"
	AeroContinental    AerosolProfile = "Continental"
	AeroDesert         AerosolProfile = "Desert"
	AeroMaritime       AerosolProfile = "Maritime"
	AeroNone           AerosolProfile = "NoAerosols"
	AeroUrban          AerosolProfile = "Urban"
)

// AtmosProfile names a predefined atmospheric profile.
type AtmosProfile string

const (
	AtmosTropical        AtmosProfile = "Tropical"
	AtmosMidlatWinter    AtmosProfile = "MidlatitudeWinter"
	AtmosMidlatSummer    AtmosProfile = "MidlatitudeSummer"
	AtmosSubarcticWinter AtmosProfile = "SubarcticWinter"
	AtmosSubarcticSummer AtmosProfile = "SubarcticSummer"
	AtmosUSStandard62    AtmosProfile = "USStandard1962"
	AtmosNoGasAbsorption AtmosProfile = "NoGaseousAbsorption"
)

// GroundHomogeneousLambertian is the ground reflectance mode used for
// soil bundles: the measured curve is applied as a homogeneous
// Lambertian boundary.
const GroundHomogeneousLambertian = "HomogeneousLambertian"

// Params is one atmosphere iteration's inputs.  The sensor flies at
// satellite altitude and the target sits at sea level for every
// iteration.
type Params struct {
	Aerosol    AerosolProfile
	Atmosphere AtmosProfile
	AOT550     float64 // aerosol optical thickness at 550 nm

	SolarAzimuth unit.Angle
	SolarZenith  unit.Angle
	ViewAzimuth  unit.Angle
	ViewZenith   unit.Angle
}

// Spec declares the candidate profiles and the distributions the
// atmospheric state is drawn from.  Profiles are drawn uniformly from
// their candidate lists.  Angle distributions are in degrees; a view
// azimuth drawn negative is wrapped onto [0,360).
type Spec struct {
	Aerosols    []AerosolProfile
	Atmospheres []AtmosProfile

	AOT550       dist.Distribution
	SolarAzimuth dist.Distribution
	SolarZenith  dist.Distribution
	ViewAzimuth  dist.Distribution
	ViewZenith   dist.Distribution
}

// DefaultSpec matches the tropical Landsat configuration: continental
// or biomass-burning aerosols over a tropical profile, moderate
// optical thickness, near-nadir viewing with the sun free in azimuth.
func DefaultSpec() Spec {
	return Spec{
		Aerosols:     []AerosolProfile{AeroContinental, AeroBiomassBurning},
		Atmospheres:  []AtmosProfile{AtmosTropical},
		AOT550:       dist.Uniform{Lo: 0.3, Hi: 0.7},
		SolarAzimuth: dist.Uniform{Lo: 0, Hi: 359},
		SolarZenith:  dist.Uniform{Lo: 10, Hi: 45},
		ViewAzimuth:  dist.Uniform{Lo: -2.5, Hi: 2.5},
		ViewZenith:   dist.Uniform{Lo: 0, Hi: 1},
	}
}

// Validate checks candidate lists and distributions before sampling.
func (s *Spec) Validate() error {
	if len(s.Aerosols) == 0 {
		return fmt.Errorf("atmo: no aerosol profile candidates")
	}
	if len(s.Atmospheres) == 0 {
		return fmt.Errorf("atmo: no atmospheric profile candidates")
	}
	for _, f := range []struct {
		name string
		d    dist.Distribution
	}{
		{"aot550", s.AOT550},
		{"solar_azimuth", s.SolarAzimuth},
		{"solar_zenith", s.SolarZenith},
		{"view_azimuth", s.ViewAzimuth},
		{"view_zenith", s.ViewZenith},
	} {
		if f.d == nil {
			return fmt.Errorf("atmo: no distribution for %s", f.name)
		}
		if err := f.d.Validate(); err != nil {
			return fmt.Errorf("atmo: %s: %w", f.name, err)
		}
	}
	return nil
}

// Sample draws n independent atmospheric states.
func (s *Spec) Sample(n int, rnd *xrand.Rand) ([]Params, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ps := make([]Params, n)
	for i := range ps {
		draw := func(name string, d dist.Distribution) (float64, error) {
			v, err := d.Sample(rnd)
			if err != nil {
				return 0, fmt.Errorf("atmo: atmosphere %d, %s: %w", i, name, err)
			}
			return v, nil
		}
		p := &ps[i]
		p.Aerosol = s.Aerosols[rnd.Intn(len(s.Aerosols))]
		p.Atmosphere = s.Atmospheres[rnd.Intn(len(s.Atmospheres))]
		var v float64
		var err error
		if p.AOT550, err = draw("aot550", s.AOT550); err != nil {
			return nil, err
		}
		if v, err = draw("solar_azimuth", s.SolarAzimuth); err != nil {
			return nil, err
		}
		p.SolarAzimuth = unit.AngleFromDeg(v)
		if v, err = draw("solar_zenith", s.SolarZenith); err != nil {
			return nil, err
		}
		p.SolarZenith = unit.AngleFromDeg(v)
		if v, err = draw("view_azimuth", s.ViewAzimuth); err != nil {
			return nil, err
		}
		if v < 0 { // wrap onto the 0-360 scale
			v += 360
		}
		p.ViewAzimuth = unit.AngleFromDeg(v)
		if v, err = draw("view_zenith", s.ViewZenith); err != nil {
			return nil, err
		}
		p.ViewZenith = unit.AngleFromDeg(v)
	}
	return ps, nil
}
