// Package canopy defines the leaf/canopy parameter bundle and its
// sampler.
//
// The default distributions carry published ranges: structure
// coefficient, water thickness and hot spot from Rivera et al. 2013,
// carotenoids and leaf mass per area from Asner et al. 2011, LAI from
// Asner, Scurlock and Hicke 2003.  View geometry is held at nadir and
// the solar azimuth left free, solar zenith fixed at 20 degrees.
package canopy

import (
	"fmt"

	"github.com/soniakeys/unit"
	xrand "golang.org/x/exp/rand"

	"bundlesim/internal/dist"
)

// Params is one bundle's leaf, canopy and geometry inputs.  Immutable
// once sampled; every field lies inside its declared valid interval.
type Params struct {
	N               float64 // leaf structure coefficient
	Chlorophyll     float64 // total chlorophyll, ug/cm^2
	Carotenoids     float64 // total carotenoids, ug/cm^2
	Brown           float64 // brown pigment, arbitrary units
	EWT             float64 // equivalent water thickness, cm
	LMA             float64 // leaf mass per area, g/cm^2
	SoilReflectance float64 // wet soil 0 .. dry soil 1
	LAI             float64 // leaf area index
	HotSpot         float64
	LIDFInclination float64 // leaf inclination distribution parameter
	LIDFBimodality  float64

	SolarZenith  unit.Angle
	SolarAzimuth unit.Angle
	ViewZenith   unit.Angle
	ViewAzimuth  unit.Angle
}

// Spec declares the distribution for each parameter.  Angle
// distributions are in degrees.
type Spec struct {
	N               dist.Distribution
	Chlorophyll     dist.Distribution
	Carotenoids     dist.Distribution
	Brown           dist.Distribution
	EWT             dist.Distribution
	LMA             dist.Distribution
	SoilReflectance dist.Distribution
	LAI             dist.Distribution
	HotSpot         dist.Distribution
	LIDFInclination dist.Distribution
	LIDFBimodality  dist.Distribution
	SolarZenith     dist.Distribution
	SolarAzimuth    dist.Distribution
	ViewZenith      dist.Distribution
	ViewAzimuth     dist.Distribution
}

// DefaultSpec returns the published-literature distributions.
func DefaultSpec() Spec {
	return Spec{
		N:               dist.Uniform{Lo: 1.3, Hi: 2.5},
		Chlorophyll:     dist.Gaussian{Mean: 35, StdDev: 30, Lo: 5, Hi: 75},
		Carotenoids:     dist.Gaussian{Mean: 7.5, StdDev: 6.5, Lo: 1.5, Hi: 15},
		Brown:           dist.Constant{Value: 0}, // no published range
		EWT:             dist.Uniform{Lo: 0.002, Hi: 0.05},
		LMA:             dist.Gaussian{Mean: 0.012, StdDev: 0.005, Lo: 0.0022, Hi: 0.0365},
		SoilReflectance: dist.Uniform{Lo: 0, Hi: 1},
		LAI:             dist.Gaussian{Mean: 3, StdDev: 2, Lo: 0.1, Hi: 18},
		HotSpot:         dist.Uniform{Lo: 0.05, Hi: 0.5},
		LIDFInclination: dist.Uniform{Lo: -0.4, Hi: 0.4},
		LIDFBimodality:  dist.Uniform{Lo: -0.1, Hi: 0.2},
		SolarZenith:     dist.Constant{Value: 20},
		SolarAzimuth:    dist.Uniform{Lo: 0, Hi: 360},
		ViewZenith:      dist.Constant{Value: 0}, // nadir viewing
		ViewAzimuth:     dist.Constant{Value: 0},
	}
}

// fields pairs each parameter with its name for validation and error
// reporting.
func (s *Spec) fields() []struct {
	name string
	d    dist.Distribution
} {
	return []struct {
		name string
		d    dist.Distribution
	}{
		{"n", s.N},
		{"chlorophyll", s.Chlorophyll},
		{"carotenoids", s.Carotenoids},
		{"brown", s.Brown},
		{"ewt", s.EWT},
		{"lma", s.LMA},
		{"soil_reflectance", s.SoilReflectance},
		{"lai", s.LAI},
		{"hot_spot", s.HotSpot},
		{"lidf_inclination", s.LIDFInclination},
		{"lidf_bimodality", s.LIDFBimodality},
		{"solar_zenith", s.SolarZenith},
		{"solar_azimuth", s.SolarAzimuth},
		{"view_zenith", s.ViewZenith},
		{"view_azimuth", s.ViewAzimuth},
	}
}

// Validate checks every declared distribution before sampling starts.
func (s *Spec) Validate() error {
	for _, f := range s.fields() {
		if f.d == nil {
			return fmt.Errorf("canopy: no distribution for %s", f.name)
		}
		if err := f.d.Validate(); err != nil {
			return fmt.Errorf("canopy: %s: %w", f.name, err)
		}
	}
	return nil
}

// Sample draws n independent parameter bundles.  Bundle i of the
// returned slice always corresponds to output column i downstream.
// A convergence failure names the bundle index and parameter.
func (s *Spec) Sample(n int, rnd *xrand.Rand) ([]Params, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ps := make([]Params, n)
	for i := range ps {
		draw := func(name string, d dist.Distribution) (float64, error) {
			v, err := d.Sample(rnd)
			if err != nil {
				return 0, fmt.Errorf("canopy: bundle %d, %s: %w", i, name, err)
			}
			return v, nil
		}
		var err error
		p := &ps[i]
		if p.N, err = draw("n", s.N); err != nil {
			return nil, err
		}
		if p.Chlorophyll, err = draw("chlorophyll", s.Chlorophyll); err != nil {
			return nil, err
		}
		if p.Carotenoids, err = draw("carotenoids", s.Carotenoids); err != nil {
			return nil, err
		}
		if p.Brown, err = draw("brown", s.Brown); err != nil {
			return nil, err
		}
		if p.EWT, err = draw("ewt", s.EWT); err != nil {
			return nil, err
		}
		if p.LMA, err = draw("lma", s.LMA); err != nil {
			return nil, err
		}
		if p.SoilReflectance, err = draw("soil_reflectance", s.SoilReflectance); err != nil {
			return nil, err
		}
		if p.LAI, err = draw("lai", s.LAI); err != nil {
			return nil, err
		}
		if p.HotSpot, err = draw("hot_spot", s.HotSpot); err != nil {
			return nil, err
		}
		if p.LIDFInclination, err = draw("lidf_inclination", s.LIDFInclination); err != nil {
			return nil, err
		}
		if p.LIDFBimodality, err = draw("lidf_bimodality", s.LIDFBimodality); err != nil {
			return nil, err
		}
		var deg float64
		if deg, err = draw("solar_zenith", s.SolarZenith); err != nil {
			return nil, err
		}
		p.SolarZenith = unit.AngleFromDeg(deg)
		if deg, err = draw("solar_azimuth", s.SolarAzimuth); err != nil {
			return nil, err
		}
		p.SolarAzimuth = unit.AngleFromDeg(deg)
		if deg, err = draw("view_zenith", s.ViewZenith); err != nil {
			return nil, err
		}
		p.ViewZenith = unit.AngleFromDeg(deg)
		if deg, err = draw("view_azimuth", s.ViewAzimuth); err != nil {
			return nil, err
		}
		p.ViewAzimuth = unit.AngleFromDeg(deg)
	}
	return ps, nil
}
