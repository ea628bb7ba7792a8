package envi_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlesim/internal/envi"
)

func sample() *envi.Library {
	return &envi.Library{
		SensorType:      "landsat_oli",
		WavelengthUnits: "micrometers",
		Wavelengths:     []float64{0.443, 0.482, 0.561, 0.655, 0.865},
		Names:           []string{"Soil bundle 001", "Soil bundle 002", "Soil bundle 003"},
		Spectra: [][]float64{
			{0.101, 0.102, 0.103, 0.104, 0.105},
			{0.201, 0.202, 0.203, 0.204, 0.205},
			{0.301, 0.302, 0.303, 0.304, 0.305},
		},
	}
}

// TestRoundTrip writes a 3-spectrum, 5-band library and reads the
// .hdr/.sli pair back.
func TestRoundTrip(t *testing.T) {
	l := sample()
	base := filepath.Join(t.TempDir(), "rt")
	require.NoError(t, l.Write(base, envi.FullPrecision))

	got, err := envi.Read(base)
	require.NoError(t, err)
	assert.Equal(t, l.SensorType, got.SensorType)
	assert.Equal(t, l.WavelengthUnits, got.WavelengthUnits)
	assert.Equal(t, l.Names, got.Names)
	require.Len(t, got.Spectra, 3)
	require.Len(t, got.Wavelengths, 5)
	for b := range l.Wavelengths {
		assert.InDelta(t, l.Wavelengths[b], got.Wavelengths[b], 1e-6)
	}
	// the binary carries full float64 values
	assert.Equal(t, l.Spectra, got.Spectra)
}

// TestWriteCSV_Shape checks the concrete scenario: 5 bands, 3
// spectra means 5 data rows of 4 columns with no separate header
// row.
func TestWriteCSV_Shape(t *testing.T) {
	l := sample()
	var sb strings.Builder
	require.NoError(t, l.WriteCSV(&sb, 3))

	rows := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Len(t, strings.Split(r, ","), 4)
	}
	assert.Equal(t, "0.443,0.101,0.201,0.301", rows[0])
}

func TestWriteCSV_FullPrecision(t *testing.T) {
	l := &envi.Library{
		Wavelengths: []float64{0.4},
		Names:       []string{"s1"},
		Spectra:     [][]float64{{0.123456789123}},
	}
	var sb strings.Builder
	require.NoError(t, l.WriteCSV(&sb, envi.FullPrecision))
	assert.Equal(t, "0.4,0.123456789123\n", sb.String())
}

func TestHeaderContents(t *testing.T) {
	l := sample()
	var sb strings.Builder
	require.NoError(t, l.WriteHeader(&sb))
	h := sb.String()
	assert.True(t, strings.HasPrefix(h, "ENVI\n"))
	assert.Contains(t, h, "samples = 5")
	assert.Contains(t, h, "lines = 3")
	assert.Contains(t, h, "bands = 1")
	assert.Contains(t, h, "data type = 5")
	assert.Contains(t, h, "interleave = bsq")
	assert.Contains(t, h, "byte order = 0")
	assert.Contains(t, h, "sensor type = landsat_oli")
	assert.Contains(t, h, "wavelength units = micrometers")
	assert.Contains(t, h, "Soil bundle 002")
}

// TestSLI_Layout: spectra are stored one after another, bands
// contiguous within each spectrum.
func TestSLI_Layout(t *testing.T) {
	l := sample()
	base := filepath.Join(t.TempDir(), "layout")
	require.NoError(t, l.Write(base, 3))

	b, err := os.ReadFile(base + "_speclib.sli")
	require.NoError(t, err)
	require.Len(t, b, 3*5*8, "3 spectra x 5 bands x 8 bytes")
}

func TestValidate(t *testing.T) {
	l := sample()
	require.NoError(t, l.Validate())

	l.Spectra[1] = l.Spectra[1][:4]
	assert.ErrorIs(t, l.Validate(), envi.ErrShape)

	l = sample()
	l.Names = l.Names[:2]
	assert.ErrorIs(t, l.Validate(), envi.ErrShape)
	assert.ErrorIs(t, l.Write(filepath.Join(t.TempDir(), "x"), 3), envi.ErrShape)
}

func TestRead_BadHeader(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(base+"_speclib.hdr", []byte("not a header\n"), 0644))
	_, err := envi.Read(base)
	assert.ErrorIs(t, err, envi.ErrHeader)
}
