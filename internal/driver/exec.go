package driver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"bundlesim/internal/atmo"
	"bundlesim/internal/canopy"
	"bundlesim/internal/soil"
)

// Exec drives an external radiative transfer program: parameters go
// to its stdin as one JSON document, the spectrum comes back on its
// stdout as one "wavelength,reflectance" pair per line.  This is the
// integration point for the real models; the sampling and assembly
// core never depends on it.
type Exec struct {
	Command string
	Args    []string
}

func (e Exec) run(ctx context.Context, payload any) (Spectrum, error) {
	in, err := json.Marshal(payload)
	if err != nil {
		return Spectrum{}, err
	}
	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Stdin = bytes.NewReader(in)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if s := strings.TrimSpace(stderr.String()); s != "" {
			return Spectrum{}, fmt.Errorf("%s: %w: %s", e.Command, err, s)
		}
		return Spectrum{}, fmt.Errorf("%s: %w", e.Command, err)
	}
	return ParseSpectrum(bytes.NewReader(out))
}

// ParseSpectrum reads simulator output: one wavelength,reflectance
// pair per line, comma or whitespace delimited, # comments ignored.
func ParseSpectrum(r io.Reader) (Spectrum, error) {
	var s Spectrum
	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		flds := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(flds) != 2 {
			return Spectrum{}, fmt.Errorf("driver: simulator output line %d: %d fields", ln, len(flds))
		}
		wl, err := strconv.ParseFloat(flds[0], 64)
		if err != nil {
			return Spectrum{}, fmt.Errorf("driver: simulator output line %d: %w", ln, err)
		}
		v, err := strconv.ParseFloat(flds[1], 64)
		if err != nil {
			return Spectrum{}, fmt.Errorf("driver: simulator output line %d: %w", ln, err)
		}
		s.Wavelengths = append(s.Wavelengths, wl)
		s.Values = append(s.Values, v)
	}
	if err := sc.Err(); err != nil {
		return Spectrum{}, err
	}
	return s, nil
}

// ExecCanopy adapts Exec to the canopy model.
type ExecCanopy struct {
	Exec
}

func (e ExecCanopy) Simulate(ctx context.Context, p canopy.Params) (Spectrum, error) {
	return e.run(ctx, canopyPayload(p))
}

// ExecAtmosphere adapts Exec to the atmospheric model.
type ExecAtmosphere struct {
	Exec
}

func (e ExecAtmosphere) Simulate(ctx context.Context, a atmo.Params, ground soil.Curve) (Spectrum, error) {
	return e.run(ctx, atmospherePayload(a, ground))
}

// Angles cross the process boundary in degrees.

func canopyPayload(p canopy.Params) any {
	return struct {
		N               float64 `json:"n"`
		Chlorophyll     float64 `json:"chlorophyll"`
		Carotenoids     float64 `json:"carotenoids"`
		Brown           float64 `json:"brown"`
		EWT             float64 `json:"ewt"`
		LMA             float64 `json:"lma"`
		SoilReflectance float64 `json:"soil_reflectance"`
		LAI             float64 `json:"lai"`
		HotSpot         float64 `json:"hot_spot"`
		LIDFInclination float64 `json:"lidf_inclination"`
		LIDFBimodality  float64 `json:"lidf_bimodality"`
		SolarZenith     float64 `json:"solar_zenith_deg"`
		SolarAzimuth    float64 `json:"solar_azimuth_deg"`
		ViewZenith      float64 `json:"view_zenith_deg"`
		ViewAzimuth     float64 `json:"view_azimuth_deg"`
	}{
		p.N, p.Chlorophyll, p.Carotenoids, p.Brown, p.EWT, p.LMA,
		p.SoilReflectance, p.LAI, p.HotSpot,
		p.LIDFInclination, p.LIDFBimodality,
		p.SolarZenith.Deg(), p.SolarAzimuth.Deg(),
		p.ViewZenith.Deg(), p.ViewAzimuth.Deg(),
	}
}

func atmospherePayload(a atmo.Params, ground soil.Curve) any {
	return struct {
		Aerosol      string    `json:"aerosol_profile"`
		Atmosphere   string    `json:"atmos_profile"`
		AOT550       float64   `json:"aot550"`
		SolarAzimuth float64   `json:"solar_azimuth_deg"`
		SolarZenith  float64   `json:"solar_zenith_deg"`
		ViewAzimuth  float64   `json:"view_azimuth_deg"`
		ViewZenith   float64   `json:"view_zenith_deg"`
		GroundMode   string    `json:"ground_mode"`
		GroundName   string    `json:"ground_name"`
		GroundWl     []float64 `json:"ground_wavelengths_um"`
		GroundRefl   []float64 `json:"ground_reflectance"`
		Output       string    `json:"output"`
	}{
		string(a.Aerosol), string(a.Atmosphere), a.AOT550,
		a.SolarAzimuth.Deg(), a.SolarZenith.Deg(),
		a.ViewAzimuth.Deg(), a.ViewZenith.Deg(),
		atmo.GroundHomogeneousLambertian, ground.Name,
		ground.Wavelengths, ground.Reflectance,
		atmo.OutputApparentReflectance,
	}
}
