// Package sensor holds the fixed table of supported sensor
// configurations: native band count, retained "good" band subset, and
// where the sensor defines one, the wavelength axis itself.
package sensor

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnsupported is returned by Lookup for a sensor name not in the
// table.  It aborts a run before any simulation starts.
var ErrUnsupported = errors.New("sensor: unsupported sensor configuration")

// Config describes one sensor's band layout.
type Config struct {
	Name string

	// Bands is the native band count of the model output.
	Bands int

	// Good lists the retained band indexes, in output order.  Bands
	// not listed (noise, water absorption) are discarded from the
	// final product.
	Good []int

	// Wavelengths, when non-nil, is the sensor-defined wavelength
	// axis in micrometers, one entry per native band.  Sensors
	// without a fixed axis take it from the simulator output.
	Wavelengths []float64
}

// NBands is the retained band count, the row count of the output
// library.
func (c Config) NBands() int { return len(c.Good) }

// seq returns n indexes starting at from.
func seq(from, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = from + i
	}
	return s
}

// prosailAxis is 400-2500 nm at 1 nm, in micrometers.
func prosailAxis() []float64 {
	wl := make([]float64, 2101)
	for i := range wl {
		wl[i] = 0.4 + float64(i)*0.001
	}
	return wl
}

// table maps sensor name to band layout.  landsat_oli keeps only the
// 6 traditional optical bands; whole_range keeps only 400-2500 nm.
var table = map[string]Config{
	"ali":               {Name: "ali", Bands: 7, Good: seq(0, 7)},
	"aster":             {Name: "aster", Bands: 9, Good: seq(0, 9)},
	"er2_mas":           {Name: "er2_mas", Bands: 7, Good: seq(0, 7)},
	"gli":               {Name: "gli", Bands: 30, Good: seq(0, 30)},
	"landsat_etm":       {Name: "landsat_etm", Bands: 6, Good: seq(0, 6)},
	"landsat_mss":       {Name: "landsat_mss", Bands: 4, Good: seq(0, 4)},
	"landsat_oli":       {Name: "landsat_oli", Bands: 10, Good: seq(1, 6)},
	"landsat_tm":        {Name: "landsat_tm", Bands: 6, Good: seq(0, 6)},
	"meris":             {Name: "meris", Bands: 16, Good: seq(0, 16)},
	"modis":             {Name: "modis", Bands: 8, Good: seq(0, 8)},
	"polder":            {Name: "polder", Bands: 8, Good: seq(0, 8)},
	"spot_hrv":          {Name: "spot_hrv", Bands: 4, Good: seq(0, 4)},
	"spot_vgt":          {Name: "spot_vgt", Bands: 4, Good: seq(0, 4)},
	"vnir":              {Name: "vnir", Bands: 200, Good: seq(0, 200)},
	"whole_range":       {Name: "whole_range", Bands: 380, Good: seq(20, 210)},
	"prosail_fullrange": {Name: "prosail_fullrange", Bands: 2101, Good: seq(0, 2101), Wavelengths: prosailAxis()},
}

// Lookup returns the configuration for a named sensor.
func Lookup(name string) (Config, error) {
	c, ok := table[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	return c, nil
}

// Custom builds a configuration for a user-defined wavelength grid
// [start, end) stepped by interval, in micrometers.  All bands are
// retained.
func Custom(start, end, interval float64) (Config, error) {
	if interval <= 0 || end <= start {
		return Config{}, fmt.Errorf("%w: custom grid [%g,%g) step %g",
			ErrUnsupported, start, end, interval)
	}
	// the band count is fixed up front and each wavelength derived
	// from start, so accumulated float error cannot add a band at end
	n := int(math.Ceil((end-start)/interval - 1e-9))
	wl := make([]float64, n)
	for i := range wl {
		wl[i] = start + float64(i)*interval
	}
	return Config{
		Name:        "custom",
		Bands:       len(wl),
		Good:        seq(0, len(wl)),
		Wavelengths: wl,
	}, nil
}

// Names lists the supported sensor names, sorted, for usage messages.
func Names() []string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
