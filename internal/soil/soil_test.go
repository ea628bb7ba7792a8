package soil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"bundlesim/internal/soil"
)

func writeSpectrum(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCurve_Nanometers(t *testing.T) {
	path := writeSpectrum(t, "privcali.txt", `# joint fire science program soil spectrum
wavelength units: Nanometers
400.0 0.121
500.0 0.154
1400.0 0.201
2100.0 0.243
`)
	c, err := soil.ReadCurve(path)
	require.NoError(t, err)
	assert.Equal(t, "privcali", c.Name)
	// 1400 nm falls in the 1.35-1.46 um water band
	require.Equal(t, []float64{0.4, 0.5, 2.1}, c.Wavelengths, "nm axis converted and water band dropped")
	assert.Equal(t, []float64{0.121, 0.154, 0.243}, c.Reflectance)
}

func TestReadCurve_MicrometersAndFlags(t *testing.T) {
	path := writeSpectrum(t, "bigrocks.txt", `wavelength units: Micrometers
0.40,0.10,1
0.50,0.99,0
0.60,0.12,1
`)
	c, err := soil.ReadCurve(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.40, 0.60}, c.Wavelengths, "flagged band dropped")
	assert.Equal(t, []float64{0.10, 0.12}, c.Reflectance)
}

func TestReadCurve_BadUnits(t *testing.T) {
	path := writeSpectrum(t, "bad.txt", "wavelength units: Angstroms\n4000 0.1\n")
	_, err := soil.ReadCurve(path)
	assert.ErrorIs(t, err, soil.ErrFormat)
}

func TestReadCurve_MissingUnits(t *testing.T) {
	path := writeSpectrum(t, "bad.txt", "400 0.1\n500 0.2\n")
	_, err := soil.ReadCurve(path)
	assert.ErrorIs(t, err, soil.ErrFormat)
}

func TestReadCurve_RaggedColumns(t *testing.T) {
	path := writeSpectrum(t, "bad.txt", "wavelength units: Nanometers\n400 0.1 1 7\n")
	_, err := soil.ReadCurve(path)
	assert.ErrorIs(t, err, soil.ErrFormat)
}

func TestSampleFiles(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(9)
	picked, err := soil.SampleFiles(paths, 3, rnd)
	require.NoError(t, err)
	require.Len(t, picked, 3)
	seen := map[string]bool{}
	for _, p := range picked {
		assert.Contains(t, paths, p)
		assert.False(t, seen[p], "drawn without replacement")
		seen[p] = true
	}

	_, err = soil.SampleFiles(paths, 6, rnd)
	assert.Error(t, err, "cannot draw more samples than files")
}
