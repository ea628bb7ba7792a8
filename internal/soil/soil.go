// Package soil reads measured soil reflectance curves and normalizes
// them into the units and band set the atmospheric model expects.
package soil

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	xrand "golang.org/x/exp/rand"
)

// ErrFormat is returned for a file that cannot be parsed into matched
// wavelength/reflectance columns or carries an unrecognized
// wavelength unit tag.
var ErrFormat = errors.New("soil: unrecognized spectrum format")

// Curve is an ordered measured reflectance curve, wavelengths in
// micrometers, water absorption bands already removed.
type Curve struct {
	Name        string
	Wavelengths []float64
	Reflectance []float64
}

// waterBands are the atmospheric water absorption windows dropped
// from every curve, in micrometers.
var waterBands = [...][2]float64{
	{1.35, 1.46},
	{1.79, 1.96},
}

func inWaterBand(wl float64) bool {
	for _, b := range waterBands {
		if wl >= b[0] && wl <= b[1] {
			return true
		}
	}
	return false
}

// ReadCurve parses one delimited reflectance file.
//
// Leading lines of the form "key: value" are header fields; the
// "wavelength units" field is required and must read Nanometers or
// Micrometers (nanometer axes are converted by dividing by 1000).
// Data lines hold wavelength and reflectance, optionally followed by
// a good-band flag where 0 marks a band to drop.  Lines starting
// with # are ignored.
func ReadCurve(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, err
	}
	defer f.Close()

	c := Curve{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	var unitDiv float64 // wavelength divisor to micrometers
	ln := 0
	badLine := func(msg string) error {
		return fmt.Errorf("%w: %s line %d: %s", ErrFormat, path, ln, msg)
	}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if k, v, ok := strings.Cut(line, ":"); ok {
			if strings.EqualFold(strings.TrimSpace(k), "wavelength units") {
				switch strings.ToLower(strings.TrimSpace(v)) {
				case "nanometers":
					unitDiv = 1000
				case "micrometers":
					unitDiv = 1
				default:
					return Curve{}, badLine("wavelength unit tag " + strings.TrimSpace(v))
				}
			}
			continue // other header fields ignored
		}
		if unitDiv == 0 {
			return Curve{}, badLine("data before wavelength units tag")
		}
		flds := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(flds) < 2 || len(flds) > 3 {
			return Curve{}, badLine(fmt.Sprintf("%d fields", len(flds)))
		}
		wl, err := strconv.ParseFloat(flds[0], 64)
		if err != nil {
			return Curve{}, badLine(err.Error())
		}
		refl, err := strconv.ParseFloat(flds[1], 64)
		if err != nil {
			return Curve{}, badLine(err.Error())
		}
		if len(flds) == 3 {
			good, err := strconv.ParseInt(flds[2], 10, 64)
			if err != nil {
				return Curve{}, badLine(err.Error())
			}
			if good == 0 {
				continue // flagged bad band
			}
		}
		wl /= unitDiv
		if inWaterBand(wl) {
			continue
		}
		c.Wavelengths = append(c.Wavelengths, wl)
		c.Reflectance = append(c.Reflectance, refl)
	}
	if err := sc.Err(); err != nil {
		return Curve{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if unitDiv == 0 {
		return Curve{}, fmt.Errorf("%w: %s: no wavelength units tag", ErrFormat, path)
	}
	if len(c.Wavelengths) == 0 {
		return Curve{}, fmt.Errorf("%w: %s: no usable bands", ErrFormat, path)
	}
	return c, nil
}

// SampleFiles draws n paths from the pool without replacement.
func SampleFiles(paths []string, n int, rnd *xrand.Rand) ([]string, error) {
	if n > len(paths) {
		return nil, fmt.Errorf("soil: %d samples requested from %d files", n, len(paths))
	}
	picked := make([]string, n)
	for i, j := range rnd.Perm(len(paths))[:n] {
		picked[i] = paths[j]
	}
	return picked, nil
}

// ReadCurves reads every path in order.
func ReadCurves(paths []string) ([]Curve, error) {
	cs := make([]Curve, len(paths))
	for i, p := range paths {
		c, err := ReadCurve(p)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return cs, nil
}
