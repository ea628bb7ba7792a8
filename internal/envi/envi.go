// Package envi assembles simulated spectra into a spectral library
// and serializes it: delimited text, raw binary library (.sli), and
// the ENVI header (.hdr) describing the binary layout.  A reader for
// the .sli/.hdr pair is provided so a written library can be verified
// by round trip.
package envi

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var (
	// ErrShape is returned when library columns disagree on length.
	ErrShape = errors.New("envi: inconsistent library shape")

	// ErrHeader is returned for a header that cannot be parsed or
	// describes a layout this package does not write.
	ErrHeader = errors.New("envi: bad library header")
)

// ENVI data type code for 64-bit floating point, the width every
// library here is written with.
const dataTypeFloat64 = 5

const (
	csvSuffix = "_speclib.csv"
	sliSuffix = "_speclib.sli"
	hdrSuffix = "_speclib.hdr"
)

// FullPrecision selects %g formatting for the text artifact in place
// of fixed decimals.
const FullPrecision = -1

// Library is the aggregate output of one run: spectra sharing one
// wavelength axis, with per-spectrum names recording which bundle
// each column came from.  Never mutated after assembly.
type Library struct {
	SensorType      string
	WavelengthUnits string   // normally "micrometers"
	Wavelengths     []float64
	Names           []string // one per spectrum
	Spectra         [][]float64
}

// Validate checks the shape invariants: one name per spectrum, every
// spectrum as long as the wavelength axis.
func (l *Library) Validate() error {
	if len(l.Names) != len(l.Spectra) {
		return fmt.Errorf("%w: %d names, %d spectra", ErrShape, len(l.Names), len(l.Spectra))
	}
	for i, s := range l.Spectra {
		if len(s) != len(l.Wavelengths) {
			return fmt.Errorf("%w: spectrum %d has %d bands, axis has %d",
				ErrShape, i, len(s), len(l.Wavelengths))
		}
	}
	return nil
}

// Write serializes the library as base_speclib.csv, base_speclib.sli
// and base_speclib.hdr.  Precision applies to the text artifact: a
// non-negative value selects fixed decimals, FullPrecision selects
// %g.  The in-memory library is untouched on failure, so a caller
// can re-attempt the write without resimulating.
func (l *Library) Write(base string, precision int) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := writeTo(base+csvSuffix, func(w io.Writer) error {
		return l.WriteCSV(w, precision)
	}); err != nil {
		return err
	}
	if err := writeTo(base+sliSuffix, l.WriteSLI); err != nil {
		return err
	}
	return writeTo(base+hdrSuffix, l.WriteHeader)
}

func writeTo(path string, f func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	if err := f(bw); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}

// WriteCSV writes the delimited text form: one row per wavelength in
// axis order, column 0 the wavelength, then one column per spectrum
// in generation order.
func (l *Library) WriteCSV(w io.Writer, precision int) error {
	format := func(v float64) string {
		if precision < 0 {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	for b, wl := range l.Wavelengths {
		if _, err := io.WriteString(w, format(wl)); err != nil {
			return err
		}
		for _, s := range l.Spectra {
			if _, err := io.WriteString(w, ","+format(s[b])); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteSLI writes the raw binary library: each spectrum's bands
// contiguous, spectrum after spectrum in generation order, native
// little-endian float64.  With the header's lines = spectra and
// samples = bands this is the ENVI spectral library layout (one
// logical BSQ band group).
func (l *Library) WriteSLI(w io.Writer) error {
	for _, s := range l.Spectra {
		if err := binary.Write(w, binary.LittleEndian, s); err != nil {
			return err
		}
	}
	return nil
}

// WriteHeader writes the ENVI header describing the .sli file.
func (l *Library) WriteHeader(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "ENVI"); err != nil {
		return err // catch error on first write
	}
	fmt.Fprintln(w, "description = {bundlesim spectral library}")
	fmt.Fprintf(w, "samples = %d\n", len(l.Wavelengths))
	fmt.Fprintf(w, "lines = %d\n", len(l.Spectra))
	fmt.Fprintln(w, "bands = 1")
	fmt.Fprintln(w, "header offset = 0")
	fmt.Fprintln(w, "file type = ENVI Spectral Library")
	fmt.Fprintf(w, "data type = %d\n", dataTypeFloat64)
	fmt.Fprintln(w, "interleave = bsq")
	fmt.Fprintf(w, "sensor type = %s\n", l.SensorType)
	fmt.Fprintln(w, "byte order = 0")
	fmt.Fprintf(w, "wavelength units = %s\n", l.WavelengthUnits)
	writeList(w, "spectra names", l.Names, func(s string) string { return s })
	_, err := fmt.Fprintln(w)
	if err != nil {
		return err
	}
	writeList(w, "wavelength", l.Wavelengths, func(v float64) string {
		return strconv.FormatFloat(v, 'f', 6, 64)
	})
	_, err = fmt.Fprintln(w) // and on last
	return err
}

func writeList[T any](w io.Writer, key string, vals []T, format func(T) string) {
	fmt.Fprintf(w, "%s = {", key)
	for i, v := range vals {
		if i > 0 {
			io.WriteString(w, ",")
		}
		io.WriteString(w, "\n "+format(v))
	}
	io.WriteString(w, "}")
}
