package bootstrap

import (
	"math/rand"

	"goresample/domain/core"
	"goresample/domain/resample"
	"goresample/internal/sampler"
	"goresample/internal/simulate"
	"goresample/internal/summary"
)

// Result summarizes a scalar bootstrap: the full bootstrap distribution,
// a normal-form CI built from the bootstrap standard error with a t critical
// value at df = n-1, and the direct percentile CI.
type Result struct {
	Distribution resample.Distribution `json:"-"`
	Observed     float64               `json:"observed"`
	Mean         float64               `json:"mean"`
	StdErr       float64               `json:"std_err"`
	NormalCI     resample.Interval     `json:"normal_ci"`
	PercentileCI resample.Interval     `json:"percentile_ci"`
}

// IndexStatistic maps a set of resampled row indices to a fixed-length
// statistic vector. The closure resolves which columns it reads and which
// model it refits at the call site, so the driver stays generic.
type IndexStatistic func(idx []int) ([]float64, error)

// VectorResult is the index-based bootstrap outcome, one entry per
// statistic component (e.g. one per regression coefficient).
type VectorResult struct {
	Distribution resample.VectorDistribution `json:"-"`
	Components   []Result                    `json:"components"`
}

// Estimate bootstraps statisticFn on sample: trials resamples of size
// len(sample) drawn with replacement, each fed through statisticFn, the
// resulting empirical distribution summarized into normal and percentile CIs.
func Estimate(rng *rand.Rand, sample resample.Sample, statisticFn resample.Statistic, trials int, confidenceLevel float64) (Result, error) {
	if sample.Len() < 2 {
		return Result{}, core.NewInsufficientSampleSizeError(sample.Len(), 2)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return Result{}, core.NewInvalidConfidenceLevelError(confidenceLevel)
	}

	observed, err := statisticFn(sample)
	if err != nil {
		return Result{}, core.NewStatisticError(0, err)
	}

	dist, err := simulate.Simulate(trials, func() (float64, error) {
		boot, err := sampler.WithReplacement(rng, sample, sample.Len())
		if err != nil {
			return 0, err
		}
		return statisticFn(boot)
	})
	if err != nil {
		return Result{}, err
	}

	return summarize(dist, observed, sample.Len(), confidenceLevel)
}

// EstimateIndexed bootstraps an index-based statistic over a dataset of
// populationSize rows: each trial draws populationSize row indices with
// replacement and hands them to statisticFn, which typically refits a model
// on the indexed subset. Component CIs are built per vector position.
func EstimateIndexed(rng *rand.Rand, populationSize int, statisticFn IndexStatistic, trials int, confidenceLevel float64) (VectorResult, error) {
	if populationSize < 2 {
		return VectorResult{}, core.NewInsufficientSampleSizeError(populationSize, 2)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return VectorResult{}, core.NewInvalidConfidenceLevelError(confidenceLevel)
	}

	// Observed statistic on the identity index set
	identity := make([]int, populationSize)
	for i := range identity {
		identity[i] = i
	}
	observed, err := statisticFn(identity)
	if err != nil {
		return VectorResult{}, core.NewStatisticError(0, err)
	}

	dist, err := simulate.SimulateVector(trials, func() ([]float64, error) {
		idx, err := sampler.Indices(rng, populationSize, populationSize)
		if err != nil {
			return nil, err
		}
		return statisticFn(idx)
	})
	if err != nil {
		return VectorResult{}, err
	}

	// The observed vector must line up with the trial arity; a statistic
	// whose output length varies is rejected, not truncated.
	if len(observed) != dist.Arity() {
		return VectorResult{}, core.NewStatisticError(0,
			core.NewValidationError("statistic", "observed output arity differs from trial output arity"))
	}

	components := make([]Result, dist.Arity())
	for i := range components {
		res, err := summarize(dist.Component(i), observed[i], populationSize, confidenceLevel)
		if err != nil {
			return VectorResult{}, err
		}
		components[i] = res
	}

	return VectorResult{Distribution: dist, Components: components}, nil
}

func summarize(dist resample.Distribution, observed float64, n int, confidenceLevel float64) (Result, error) {
	basic, err := summary.Describe(dist)
	if err != nil {
		return Result{}, err
	}

	normalCI, err := summary.NormalCI(observed, basic.StdErr, confidenceLevel, resample.CriticalT, n-1)
	if err != nil {
		return Result{}, err
	}
	percentileCI, err := summary.PercentileCI(dist, confidenceLevel)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Distribution: dist,
		Observed:     observed,
		Mean:         basic.Mean,
		StdErr:       basic.StdErr,
		NormalCI:     normalCI,
		PercentileCI: percentileCI,
	}, nil
}
