/*
Command soilbundles models at-sensor reflectance for soil endmembers
under random atmospheres, for use in unmixing models.

Measured soil reflectance curves are drawn without replacement from a
configured pool, normalized (wavelength axis converted to
micrometers, water absorption bands removed), and applied as the
ground boundary condition of an external atmospheric radiative
transfer model.  A random atmosphere combines an aerosol profile, an
atmospheric profile, an aerosol optical thickness and the solar and
view geometry.  For each atmosphere the model is run once per soil
bundle, and the resulting
spectra are assembled in atmosphere-major order into one spectral
library for the configured sensor, keeping only that sensor's good
bands.

Usage:

   soilbundles
   soilbundles -v

Configuration is read from BUNDLE_ environment variables; see the
usage message for the full list.  The default sensor is landsat_oli,
which keeps the 6 traditional optical bands of the instrument's 10.

Output is written under BUNDLE_OUTPUT_BASE as _speclib.csv (full
precision text), _speclib.sli, _speclib.hdr, and one _atm_NN.sixs
provenance file per atmosphere recording the exact model inputs used
for that iteration.
*/
package main
