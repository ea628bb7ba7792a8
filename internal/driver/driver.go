// Package driver runs the bundle simulation loop: one external model
// invocation per bundle (or per atmosphere and bundle pair), results
// assembled into a spectral library in invocation order.
//
// The external model is opaque behind the Simulator interfaces, so
// the loop is testable against fakes.  Invocations are pure given
// their parameters, which allows an optional worker pool; output
// columns are assigned by index, not completion order, so the library
// is identical however many workers run.  A failed invocation is
// logged with its indexes and parameters and its column skipped, the
// final library carrying the surviving column-to-bundle mapping in
// its spectra names.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bundlesim/internal/atmo"
	"bundlesim/internal/canopy"
	"bundlesim/internal/envi"
	"bundlesim/internal/sensor"
	"bundlesim/internal/soil"
)

var (
	// ErrNoSpectra is returned when every invocation of a run failed.
	ErrNoSpectra = errors.New("driver: no spectra simulated")

	// ErrBandMismatch reports a simulator result whose band count does
	// not match the sensor configuration.
	ErrBandMismatch = errors.New("driver: band count mismatch")
)

// Spectrum is one model invocation's output: reflectance per native
// sensor band, wavelengths in micrometers.  Wavelengths may be nil
// when the sensor configuration fixes the axis.
type Spectrum struct {
	Wavelengths []float64
	Values      []float64
}

// CanopySimulator is the opaque canopy reflectance model.
type CanopySimulator interface {
	Simulate(ctx context.Context, p canopy.Params) (Spectrum, error)
}

// AtmosphereSimulator is the opaque atmospheric model, run with a
// measured ground reflectance boundary.
type AtmosphereSimulator interface {
	Simulate(ctx context.Context, a atmo.Params, ground soil.Curve) (Spectrum, error)
}

// Options configures a run.
type Options struct {
	Sensor sensor.Config

	// Workers sets the simulation pool size; values below 2 run the
	// loop sequentially.  Sampling has already happened by the time
	// the driver runs, so parallelism cannot perturb a seeded run.
	Workers int

	// Timeout bounds each model invocation; zero means none.
	Timeout time.Duration

	Logger *slog.Logger

	// Name builds the spectra name for an (atmosphere, bundle) pair.
	// The atmosphere index is -1 for the no-atmosphere variant.
	Name func(atm, bundle int) string
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Options) name(atm, bundle int) string {
	if o.Name != nil {
		return o.Name(atm, bundle)
	}
	if atm < 0 {
		return fmt.Sprintf("bundle %d", bundle+1)
	}
	return fmt.Sprintf("bundle %d atm %d", bundle+1, atm+1)
}

// job is one pending invocation.  params is carried only for failure
// logging.
type job struct {
	atm, bundle int
	params      any
	run         func(ctx context.Context) (Spectrum, error)
}

// RunCanopy simulates one spectrum per parameter bundle.
func RunCanopy(ctx context.Context, sim CanopySimulator, params []canopy.Params, opt Options) (*envi.Library, error) {
	jobs := make([]job, len(params))
	for i := range params {
		p := params[i]
		jobs[i] = job{
			atm:    -1,
			bundle: i,
			params: p,
			run: func(ctx context.Context) (Spectrum, error) {
				return sim.Simulate(ctx, p)
			},
		}
	}
	return run(ctx, jobs, opt)
}

// RunAtmosphere simulates one spectrum per (atmosphere, bundle) pair
// in row-major order: atmosphere outer, bundle inner.  Ground curve i
// is the boundary condition for bundle i under every atmosphere.
func RunAtmosphere(ctx context.Context, sim AtmosphereSimulator, atms []atmo.Params, grounds []soil.Curve, opt Options) (*envi.Library, error) {
	jobs := make([]job, 0, len(atms)*len(grounds))
	for a := range atms {
		for b := range grounds {
			ap, g := atms[a], grounds[b]
			jobs = append(jobs, job{
				atm:    a,
				bundle: b,
				params: ap,
				run: func(ctx context.Context) (Spectrum, error) {
					return sim.Simulate(ctx, ap, g)
				},
			})
		}
	}
	return run(ctx, jobs, opt)
}

// run executes the jobs and assembles the library.
func run(ctx context.Context, jobs []job, opt Options) (*envi.Library, error) {
	specs := make([]Spectrum, len(jobs))
	errs := make([]error, len(jobs))

	invoke := func(i int) {
		jctx := ctx
		if opt.Timeout > 0 {
			var cancel context.CancelFunc
			jctx, cancel = context.WithTimeout(ctx, opt.Timeout)
			defer cancel()
		}
		specs[i], errs[i] = jobs[i].run(jctx)
	}

	if opt.Workers > 1 {
		// every worker writes only its own job indexes, so the result
		// slices need no locking
		jobCh := make(chan int)
		var wg sync.WaitGroup
		for n := 0; n < opt.Workers; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobCh {
					invoke(i)
				}
			}()
		}
		for i := range jobs {
			jobCh <- i
		}
		close(jobCh)
		wg.Wait()
	} else {
		for i := range jobs {
			invoke(i)
		}
	}

	return assemble(jobs, specs, errs, opt)
}

// assemble builds the library from completed jobs, skipping failures.
func assemble(jobs []job, specs []Spectrum, errs []error, opt Options) (*envi.Library, error) {
	log := opt.logger()
	nb := opt.Sensor.Bands

	l := &envi.Library{
		SensorType:      opt.Sensor.Name,
		WavelengthUnits: "micrometers",
	}
	axis := opt.Sensor.Wavelengths
	for i, j := range jobs {
		if errs[i] == nil && len(specs[i].Values) != nb {
			errs[i] = fmt.Errorf("%w: got %d bands, sensor has %d",
				ErrBandMismatch, len(specs[i].Values), nb)
		}
		if errs[i] != nil {
			if j.atm < 0 {
				log.Error("simulation failed, column skipped",
					"bundle", j.bundle, "params", j.params, "error", errs[i])
			} else {
				log.Error("simulation failed, column skipped",
					"atmosphere", j.atm, "bundle", j.bundle,
					"params", j.params, "error", errs[i])
			}
			continue
		}
		if axis == nil {
			axis = specs[i].Wavelengths
			if len(axis) != nb {
				return nil, fmt.Errorf("%w: %d wavelengths for %d bands",
					ErrBandMismatch, len(axis), nb)
			}
		}
		l.Names = append(l.Names, opt.name(j.atm, j.bundle))
		l.Spectra = append(l.Spectra, subset(specs[i].Values, opt.Sensor.Good))
	}
	if len(l.Spectra) == 0 {
		return nil, fmt.Errorf("%w: all %d invocations failed", ErrNoSpectra, len(jobs))
	}
	l.Wavelengths = subset(axis, opt.Sensor.Good)
	if skipped := len(jobs) - len(l.Spectra); skipped > 0 {
		log.Warn("library assembled with skipped columns",
			"columns", len(l.Spectra), "skipped", skipped)
	}
	return l, nil
}

// subset keeps the good bands, in order.
func subset(v []float64, good []int) []float64 {
	out := make([]float64, len(good))
	for i, g := range good {
		out[i] = v[g]
	}
	return out
}
