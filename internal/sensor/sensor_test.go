package sensor_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlesim/internal/sensor"
)

func TestLookup_LandsatOLI(t *testing.T) {
	c, err := sensor.Lookup("landsat_oli")
	require.NoError(t, err)
	assert.Equal(t, 10, c.Bands, "OLI has 10 native bands")
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, c.Good, "only the 6 optical bands are kept")
	assert.Equal(t, 6, c.NBands())
}

func TestLookup_WholeRange(t *testing.T) {
	c, err := sensor.Lookup("whole_range")
	require.NoError(t, err)
	assert.Equal(t, 380, c.Bands)
	assert.Equal(t, 210, c.NBands())
	assert.Equal(t, 20, c.Good[0], "400 nm cutoff starts at band 20")
	assert.Equal(t, 229, c.Good[209])
}

func TestLookup_Prosail(t *testing.T) {
	c, err := sensor.Lookup("prosail_fullrange")
	require.NoError(t, err)
	require.Len(t, c.Wavelengths, 2101)
	assert.InDelta(t, 0.4, c.Wavelengths[0], 1e-12)
	assert.InDelta(t, 2.5, c.Wavelengths[2100], 1e-9)
	assert.Equal(t, 2101, c.NBands())
}

func TestLookup_Unsupported(t *testing.T) {
	_, err := sensor.Lookup("sentinel_2")
	assert.ErrorIs(t, err, sensor.ErrUnsupported)
}

func TestCustom(t *testing.T) {
	c, err := sensor.Custom(0.4, 2.5, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 210, c.Bands, "[0.4, 2.5) at 0.01 is 210 bands")
	require.Len(t, c.Wavelengths, 210, "float drift must not add a 211th band")
	assert.Equal(t, c.Bands, c.NBands())
	assert.InDelta(t, 0.4, c.Wavelengths[0], 1e-12)
	assert.InDelta(t, 2.49, c.Wavelengths[209], 1e-9)

	_, err = sensor.Custom(2.5, 0.4, 0.01)
	assert.ErrorIs(t, err, sensor.ErrUnsupported)
	_, err = sensor.Custom(0.4, 2.5, 0)
	assert.ErrorIs(t, err, sensor.ErrUnsupported)
}

func TestNames(t *testing.T) {
	names := sensor.Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "landsat_oli")
	assert.Contains(t, names, "prosail_fullrange")
	assert.Len(t, names, 16)
}
