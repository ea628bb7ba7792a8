// Public domain.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/soniakeys/exit"

	"bundlesim/internal/atmo"
	"bundlesim/internal/config"
	"bundlesim/internal/driver"
	"bundlesim/internal/envi"
	"bundlesim/internal/sensor"
	"bundlesim/internal/soil"
)

const versionString = "soilbundles version 0.3"

func main() {
	defer exit.Handler()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
   soilbundles
   soilbundles -v

Configuration is read from BUNDLE_ environment variables:
   BUNDLE_OUTPUT_BASE     artifact path prefix (required)
   BUNDLE_SIMULATOR       atmospheric model command (required)
   BUNDLE_SIMULATOR_ARGS  extra arguments for the model command
   BUNDLE_SOIL_FILES      soil spectra paths, colon separated (required)
   BUNDLE_N_BUNDLES       soil bundles to draw (default 25)
   BUNDLE_N_ATMOSPHERES   atmospheres to simulate (default 5)
   BUNDLE_SENSOR          sensor configuration (default landsat_oli)
   BUNDLE_WL_START        custom sensor grid start, micrometers (default 0.4)
   BUNDLE_WL_END          custom sensor grid end, micrometers (default 2.5)
   BUNDLE_WL_INTERVAL     custom sensor grid step, micrometers (default 0.01)
   BUNDLE_SEED            random seed, 0 seeds from the clock
   BUNDLE_WORKERS         simulation pool size (default 1)
   BUNDLE_TIMEOUT         per-invocation timeout (default none)
   BUNDLE_DISTRIBUTIONS   YAML distribution override file
   BUNDLE_LOG_LEVEL       debug, info, warn or error

Supported sensors, besides custom:
   %s

For full documentation:
   go doc bundlesim/soilbundles
`, strings.Join(sensor.Names(), "\n   "))
	}
	vers := flag.Bool("v", false, "display version")
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		os.Exit(0)
	}
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load("landsat_oli", 25)
	if err != nil {
		exit.Log(err)
	}
	log := cfg.Logger()

	sens, err := cfg.SensorConfig()
	if err != nil {
		exit.Log(err)
	}
	if len(cfg.SoilFiles) == 0 {
		exit.Log("BUNDLE_SOIL_FILES is required")
	}

	spec := atmo.DefaultSpec()
	if cfg.Distributions != "" {
		df, err := config.LoadDistributions(cfg.Distributions)
		if err != nil {
			exit.Log(err)
		}
		if err = df.ApplyAtmosphere(&spec); err != nil {
			exit.Log(err)
		}
	}

	// one random source covers atmosphere and soil draws, fully
	// consumed before simulation starts
	rnd := cfg.Rand()
	atms, err := spec.Sample(cfg.Atmospheres, rnd)
	if err != nil {
		exit.Log(err)
	}
	picked, err := soil.SampleFiles(cfg.SoilFiles, cfg.Bundles, rnd)
	if err != nil {
		exit.Log(err)
	}
	curves, err := soil.ReadCurves(picked)
	if err != nil {
		exit.Log(err)
	}
	names := make([]string, len(curves))
	for i, c := range curves {
		names[i] = c.Name
	}
	log.Info("sampled soil bundles", "bundles", len(curves),
		"atmospheres", len(atms), "sensor", sens.Name)

	sim := driver.ExecAtmosphere{Exec: driver.Exec{Command: cfg.Simulator, Args: cfg.SimulatorArgs}}
	lib, err := driver.RunAtmosphere(context.Background(), sim, atms, curves, driver.Options{
		Sensor:  sens,
		Workers: cfg.Workers,
		Timeout: cfg.Timeout,
		Logger:  log,
		Name: func(a, b int) string {
			return fmt.Sprintf("Soil bundle %03d atm %02d", b+1, a+1)
		},
	})
	if err != nil {
		exit.Log(err)
	}

	// provenance: the exact atmospheric inputs of each iteration
	ground := strings.Join(names, ", ")
	for i, a := range atms {
		path := fmt.Sprintf("%s_atm_%02d.sixs", cfg.OutputBase, i+1)
		if err = a.WriteInputFile(path, ground); err != nil {
			exit.Log(err)
		}
	}

	if err = lib.Write(cfg.OutputBase, envi.FullPrecision); err != nil {
		exit.Log(err)
	}
	log.Info("spectral library written", "base", cfg.OutputBase,
		"spectra", len(lib.Spectra), "bands", len(lib.Wavelengths))
}
