package envi

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Read loads the .hdr/.sli pair written under base and reassembles
// the library.  Only the layout this package writes is accepted: one
// BSQ band group of little-endian float64 spectra.
func Read(base string) (*Library, error) {
	fields, err := readHeader(base + hdrSuffix)
	if err != nil {
		return nil, err
	}

	need := func(key string) (string, error) {
		v, ok := fields[key]
		if !ok {
			return "", fmt.Errorf("%w: missing %q", ErrHeader, key)
		}
		return v, nil
	}
	needInt := func(key string) (int, error) {
		s, err := need(key)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %s = %q", ErrHeader, key, s)
		}
		return n, nil
	}

	samples, err := needInt("samples")
	if err != nil {
		return nil, err
	}
	lines, err := needInt("lines")
	if err != nil {
		return nil, err
	}
	for key, want := range map[string]string{
		"bands":         "1",
		"header offset": "0",
		"data type":     strconv.Itoa(dataTypeFloat64),
		"interleave":    "bsq",
		"byte order":    "0",
	} {
		got, err := need(key)
		if err != nil {
			return nil, err
		}
		if got != want {
			return nil, fmt.Errorf("%w: %s = %q, want %q", ErrHeader, key, got, want)
		}
	}

	l := &Library{
		SensorType:      fields["sensor type"],
		WavelengthUnits: fields["wavelength units"],
	}
	if names, ok := fields["spectra names"]; ok {
		l.Names = splitList(names)
	}
	if len(l.Names) != lines {
		return nil, fmt.Errorf("%w: %d spectra names for %d lines", ErrHeader, len(l.Names), lines)
	}
	wls, err := need("wavelength")
	if err != nil {
		return nil, err
	}
	for _, s := range splitList(wls) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: wavelength %q", ErrHeader, s)
		}
		l.Wavelengths = append(l.Wavelengths, v)
	}
	if len(l.Wavelengths) != samples {
		return nil, fmt.Errorf("%w: %d wavelengths for %d samples", ErrHeader, len(l.Wavelengths), samples)
	}

	f, err := os.Open(base + sliSuffix)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l.Spectra = make([][]float64, lines)
	for i := range l.Spectra {
		s := make([]float64, samples)
		if err := binary.Read(f, binary.LittleEndian, s); err != nil {
			return nil, fmt.Errorf("reading spectrum %d: %w", i, err)
		}
		l.Spectra[i] = s
	}
	return l, nil
}

// readHeader parses the "key = value" fields of an ENVI header,
// joining multi-line { } lists.
func readHeader(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(b), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "ENVI" {
		return nil, fmt.Errorf("%w: %s: missing ENVI magic", ErrHeader, path)
	}
	fields := make(map[string]string)
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %s: line %d", ErrHeader, path, i+1)
		}
		val = strings.TrimSpace(val)
		if strings.HasPrefix(val, "{") {
			for !strings.HasSuffix(val, "}") {
				i++
				if i == len(lines) {
					return nil, fmt.Errorf("%w: %s: unterminated list", ErrHeader, path)
				}
				val += "\n" + strings.TrimSpace(lines[i])
			}
			val = strings.TrimSuffix(strings.TrimPrefix(val, "{"), "}")
		}
		fields[strings.TrimSpace(key)] = val
	}
	return fields, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
