package simulate

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"goresample/domain/core"
	"goresample/domain/resample"
	"goresample/ports"
)

// TrialFunc performs one draw and applies the statistic, returning one
// statistic value. The closure owns its sampling rule (Sampler, Randomizer)
// and its random stream.
type TrialFunc func() (float64, error)

// VectorTrialFunc returns a fixed-arity statistic vector per trial
type VectorTrialFunc func() ([]float64, error)

// SeededTrialFunc is the parallel form: the driver hands each trial its own
// deterministic random stream so parallel execution reproduces the sequential
// empirical distribution.
type SeededTrialFunc func(trial int, rng *rand.Rand) (float64, error)

// Simulate executes fn exactly trials times, collecting results in call order
// into an empirical distribution. A failure on any trial aborts the whole
// simulation and surfaces the original error; a partially populated
// distribution would silently bias downstream standard-error and CI estimates.
func Simulate(trials int, fn TrialFunc) (resample.Distribution, error) {
	if trials < 1 {
		return nil, core.NewInvalidTrialCountError(trials)
	}

	dist := make(resample.Distribution, trials)
	for t := 0; t < trials; t++ {
		v, err := fn()
		if err != nil {
			return nil, core.NewStatisticError(t, err)
		}
		dist[t] = v
	}
	return dist, nil
}

// SimulateVector is Simulate for fixed-arity vector statistics. The arity is
// fixed by the first trial; a trial returning a different length is rejected
// rather than coerced.
func SimulateVector(trials int, fn VectorTrialFunc) (resample.VectorDistribution, error) {
	if trials < 1 {
		return nil, core.NewInvalidTrialCountError(trials)
	}

	dist := make(resample.VectorDistribution, trials)
	arity := -1
	for t := 0; t < trials; t++ {
		v, err := fn()
		if err != nil {
			return nil, core.NewStatisticError(t, err)
		}
		if arity < 0 {
			arity = len(v)
		}
		if len(v) != arity {
			return nil, core.NewStatisticError(t, core.NewValidationError("statistic", "trial output arity changed mid-simulation"))
		}
		dist[t] = v
	}
	return dist, nil
}

// ParallelDriver runs Monte Carlo trials on a bounded worker pool. Each trial
// draws from its own RNG sub-stream keyed by (name, seed, trial index), and
// results land at their trial index, so the distribution matches what the
// same seeded trials would produce sequentially.
type ParallelDriver struct {
	rngPort ports.RNGPort
	workers int
}

// NewParallelDriver creates a parallel driver. workers <= 0 selects GOMAXPROCS.
func NewParallelDriver(rngPort ports.RNGPort, workers int) *ParallelDriver {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ParallelDriver{rngPort: rngPort, workers: workers}
}

// Simulate executes fn for each trial index on the worker pool
func (d *ParallelDriver) Simulate(ctx context.Context, name string, seed int64, trials int, fn SeededTrialFunc) (resample.Distribution, error) {
	if trials < 1 {
		return nil, core.NewInvalidTrialCountError(trials)
	}

	dist := make(resample.Distribution, trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for t := 0; t < trials; t++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rng, err := d.rngPort.TrialStream(ctx, name, seed, t)
			if err != nil {
				return err
			}
			v, err := fn(t, rng)
			if err != nil {
				return core.NewStatisticError(t, err)
			}
			dist[t] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dist, nil
}
