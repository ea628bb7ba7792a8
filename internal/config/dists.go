package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"bundlesim/internal/atmo"
	"bundlesim/internal/canopy"
	"bundlesim/internal/dist"
)

// DistSpec is one parameter's distribution in the YAML override
// file.  Exactly one form applies: value alone is a constant, min
// and max alone a uniform range, mean and stddev a truncated
// Gaussian (min/max then bound the valid interval, either side
// optional).
type DistSpec struct {
	Value  *float64 `yaml:"value"`
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`
	Mean   *float64 `yaml:"mean"`
	StdDev *float64 `yaml:"stddev"`
}

// Distribution builds the declared distribution.
func (d DistSpec) Distribution() (dist.Distribution, error) {
	switch {
	case d.Value != nil:
		if d.Min != nil || d.Max != nil || d.Mean != nil || d.StdDev != nil {
			return nil, fmt.Errorf("constant value excludes other fields")
		}
		return dist.Constant{Value: *d.Value}, nil
	case d.Mean != nil && d.StdDev != nil:
		lo, hi := math.Inf(-1), math.Inf(1)
		if d.Min != nil {
			lo = *d.Min
		}
		if d.Max != nil {
			hi = *d.Max
		}
		return dist.Gaussian{Mean: *d.Mean, StdDev: *d.StdDev, Lo: lo, Hi: hi}, nil
	case d.Min != nil && d.Max != nil:
		return dist.Uniform{Lo: *d.Min, Hi: *d.Max}, nil
	}
	return nil, fmt.Errorf("need value, min+max, or mean+stddev")
}

// DistFile is the YAML distribution override file: per-parameter
// distributions keyed by the sampler's parameter names, plus
// candidate profile lists for the atmosphere.
type DistFile struct {
	Canopy     map[string]DistSpec `yaml:"canopy"`
	Atmosphere map[string]DistSpec `yaml:"atmosphere"`
	Aerosols   []string            `yaml:"aerosols"`
	Profiles   []string            `yaml:"profiles"`
}

// LoadDistributions reads and parses the override file.
func LoadDistributions(path string) (*DistFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read distributions file: %w", err)
	}
	var df DistFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		return nil, fmt.Errorf("parse distributions file: %w", err)
	}
	return &df, nil
}

// ApplyCanopy overrides fields of a canopy spec by parameter name.
func (df *DistFile) ApplyCanopy(s *canopy.Spec) error {
	for name, ds := range df.Canopy {
		d, err := ds.Distribution()
		if err != nil {
			return fmt.Errorf("canopy %s: %w", name, err)
		}
		switch name {
		case "n":
			s.N = d
		case "chlorophyll":
			s.Chlorophyll = d
		case "carotenoids":
			s.Carotenoids = d
		case "brown":
			s.Brown = d
		case "ewt":
			s.EWT = d
		case "lma":
			s.LMA = d
		case "soil_reflectance":
			s.SoilReflectance = d
		case "lai":
			s.LAI = d
		case "hot_spot":
			s.HotSpot = d
		case "lidf_inclination":
			s.LIDFInclination = d
		case "lidf_bimodality":
			s.LIDFBimodality = d
		case "solar_zenith":
			s.SolarZenith = d
		case "solar_azimuth":
			s.SolarAzimuth = d
		case "view_zenith":
			s.ViewZenith = d
		case "view_azimuth":
			s.ViewAzimuth = d
		default:
			return fmt.Errorf("canopy: unknown parameter %q", name)
		}
	}
	return nil
}

// ApplyAtmosphere overrides fields of an atmosphere spec.
func (df *DistFile) ApplyAtmosphere(s *atmo.Spec) error {
	for name, ds := range df.Atmosphere {
		d, err := ds.Distribution()
		if err != nil {
			return fmt.Errorf("atmosphere %s: %w", name, err)
		}
		switch name {
		case "aot550":
			s.AOT550 = d
		case "solar_azimuth":
			s.SolarAzimuth = d
		case "solar_zenith":
			s.SolarZenith = d
		case "view_azimuth":
			s.ViewAzimuth = d
		case "view_zenith":
			s.ViewZenith = d
		default:
			return fmt.Errorf("atmosphere: unknown parameter %q", name)
		}
	}
	if len(df.Aerosols) > 0 {
		s.Aerosols = s.Aerosols[:0]
		for _, a := range df.Aerosols {
			s.Aerosols = append(s.Aerosols, atmo.AerosolProfile(a))
		}
	}
	if len(df.Profiles) > 0 {
		s.Atmospheres = s.Atmospheres[:0]
		for _, p := range df.Profiles {
			s.Atmospheres = append(s.Atmospheres, atmo.AtmosProfile(p))
		}
	}
	return nil
}
