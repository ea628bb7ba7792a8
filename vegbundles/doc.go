/*
Command vegbundles models canopy reflectance for a suite of random
vegetation bundles, for use in unmixing models and canopy reflectance
inversions.

Each bundle is an independent draw of leaf and canopy parameters:
structure coefficient, chlorophyll and carotenoid content, brown
pigment, equivalent water thickness, leaf mass per area, background
soil reflectance, leaf area index, hot spot parameter, leaf angle
distribution, and solar/view geometry.  Draws come from published
literature ranges; truncated Gaussian parameters are rejection
sampled so every value passed to the canopy model is physically
valid.  An external canopy reflectance model is invoked once per
bundle and the resulting spectra are assembled into a spectral
library over the full 400-2500 nm range.

Usage:

   vegbundles
   vegbundles -v

Configuration is read from BUNDLE_ environment variables; see the
usage message for the full list.  BUNDLE_SEED fixes the random
source, making the sampled batch exactly reproducible.  A bundle
whose model invocation fails is logged and skipped; its column is
simply absent from the library, which records the surviving
bundle numbers in its spectra names.

Output is written under BUNDLE_OUTPUT_BASE as _speclib.csv (text,
3 decimals), _speclib.sli (raw binary library) and _speclib.hdr
(ENVI header).
*/
package main
