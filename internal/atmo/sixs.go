package atmo

import (
	"fmt"
	"io"
	"os"
)

// OutputApparentReflectance is the radiative transfer output quantity
// simulated for soil bundles.
const OutputApparentReflectance = "apparent_reflectance"

// WriteInput records the exact atmospheric model inputs of one
// iteration as labelled text, for provenance.  Ground names the
// reflectance curve applied as the boundary condition.
func (p Params) WriteInput(w io.Writer, ground string) error {
	if _, err := fmt.Fprintln(w, "6S atmospheric inputs"); err != nil {
		return err // catch error on first write
	}
	fmt.Fprintf(w, "aerosol profile %s\n", p.Aerosol)
	fmt.Fprintf(w, "atmospheric profile %s\n", p.Atmosphere)
	fmt.Fprintf(w, "aot550 %g\n", p.AOT550) // ignore errors in the middle
	fmt.Fprintf(w, "solar azimuth %.6f deg\n", p.SolarAzimuth.Deg())
	fmt.Fprintf(w, "solar zenith %.6f deg\n", p.SolarZenith.Deg())
	fmt.Fprintf(w, "view azimuth %.6f deg\n", p.ViewAzimuth.Deg())
	fmt.Fprintf(w, "view zenith %.6f deg\n", p.ViewZenith.Deg())
	fmt.Fprintf(w, "ground reflectance %s %s\n", GroundHomogeneousLambertian, ground)
	fmt.Fprintln(w, "sensor altitude satellite")
	fmt.Fprintln(w, "target altitude sea level")
	_, err := fmt.Fprintf(w, "output %s\n", OutputApparentReflectance)
	return err // and on last
}

// WriteInputFile writes the provenance record to path.
func (p Params) WriteInputFile(path, ground string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.WriteInput(f, ground); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
