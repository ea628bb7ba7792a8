/*
Bundlesim builds reproducible spectral libraries from Monte Carlo
"bundles", random draws of biophysical or atmospheric parameters.
Each bundle is fed through an external radiative transfer model to
produce one reflectance spectrum.

Contents

  Program overview
  Commands
  Configuration
  Output files

Program overview

A run samples a batch of parameter sets from declared statistical
distributions, invokes a spectral simulator once per bundle (or once
per atmosphere and bundle pair), and assembles the resulting spectra
into a spectral library sharing one wavelength axis.  Sampling is
rejection based: a draw from a truncated Gaussian is repeated until it
falls inside the declared valid interval, so every parameter passed to
the simulator is physically valid.  Given a fixed seed, two runs
produce identical parameter sequences.

The simulator itself is an integration point, not part of this module.
Both commands drive an external program through the adapter in
internal/driver; test fakes stand in for it elsewhere.

Commands

Two commands are provided.  Vegbundles samples leaf and canopy
parameters (structure coefficient, pigments, water content, mass per
area, LAI, leaf angle distribution, geometry) and produces a canopy
reflectance library over the full 400-2500 nm range.  Soilbundles
samples atmospheric states (aerosol and atmospheric profiles, optical
thickness, geometry), pairs each with a measured soil reflectance
curve, and produces an at-sensor reflectance library for a chosen
sensor configuration.

Configuration

Both commands are configured through BUNDLE_ environment variables:
output base path, bundle count, sensor name, random seed, worker
count and per-invocation timeout, and for soilbundles the atmosphere
count and soil spectra file list.  An optional YAML file overrides the
built-in parameter distributions.

Output files

All artifacts derive from one output base path.  <base>_speclib.csv
holds the library as delimited text, one row per wavelength, columns
wavelength then one per spectrum.  <base>_speclib.sli is the raw
binary library, one float64 spectrum after another, described by the
ENVI header <base>_speclib.hdr.  Soilbundles additionally writes one
<base>_atm_NN.sixs text file per atmosphere recording the exact
atmospheric inputs used, for provenance.
*/
package bundlesim
