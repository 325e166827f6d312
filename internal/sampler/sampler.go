package sampler

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"goresample/domain/core"
	"goresample/domain/resample"
)

// Draw produces n independent draws from the parametric population described
// by spec. The caller passes the random stream explicitly; seeding that stream
// makes the output exactly reproducible.
func Draw(rng *rand.Rand, spec resample.PopulationSpec, n int) (resample.Sample, error) {
	if n < 1 {
		return nil, core.NewInvalidSampleSizeError(n, 0)
	}

	gen, err := generator(rng, spec)
	if err != nil {
		return nil, err
	}

	out := make(resample.Sample, n)
	for i := range out {
		out[i] = gen.Rand()
	}
	return out, nil
}

// generator binds a distuv distribution to the caller's stream.
// *math/rand.Rand satisfies the rand/v2 Source contract via Uint64,
// so distuv draws advance the caller's stream directly.
func generator(rng *rand.Rand, spec resample.PopulationSpec) (distuv.Rander, error) {
	switch spec.Family {
	case resample.FamilyNormal:
		if spec.StdDev <= 0 {
			return nil, core.NewValidationError("stddev", "must be positive for a normal population")
		}
		return distuv.Normal{Mu: spec.Mean, Sigma: spec.StdDev, Src: rng}, nil
	case resample.FamilyPoisson:
		if spec.Lambda <= 0 {
			return nil, core.NewValidationError("lambda", "must be positive for a Poisson population")
		}
		return distuv.Poisson{Lambda: spec.Lambda, Src: rng}, nil
	case resample.FamilyExponential:
		if spec.Rate <= 0 {
			return nil, core.NewValidationError("rate", "must be positive for an exponential population")
		}
		return distuv.Exponential{Rate: spec.Rate, Src: rng}, nil
	case resample.FamilyUniform:
		if spec.Max <= spec.Min {
			return nil, core.NewValidationError("max", "must exceed min for a uniform population")
		}
		return distuv.Uniform{Min: spec.Min, Max: spec.Max, Src: rng}, nil
	default:
		return nil, core.NewValidationError("family", fmt.Sprintf("unknown distribution family %q", spec.Family))
	}
}

// WithoutReplacement draws a simple random sample of n distinct elements
// from source. Every subset of size n is equally likely. Requires n <= len(source).
func WithoutReplacement(rng *rand.Rand, source resample.Sample, n int) (resample.Sample, error) {
	if n < 1 || n > len(source) {
		return nil, core.NewInvalidSampleSizeError(n, len(source))
	}

	perm := rng.Perm(len(source))
	out := make(resample.Sample, n)
	for i := 0; i < n; i++ {
		out[i] = source[perm[i]]
	}
	return out, nil
}

// WithReplacement draws n elements uniformly and independently from source,
// duplicates allowed. This is the bootstrap draw; n is unconstrained relative
// to len(source) and is commonly equal to it.
func WithReplacement(rng *rand.Rand, source resample.Sample, n int) (resample.Sample, error) {
	if n < 1 {
		return nil, core.NewInvalidSampleSizeError(n, 0)
	}
	if len(source) == 0 {
		return nil, core.ErrEmptyDataset
	}

	out := make(resample.Sample, n)
	for i := range out {
		out[i] = source[rng.Intn(len(source))]
	}
	return out, nil
}

// Indices draws n row indices uniformly with replacement from [0, populationSize).
// Index-based bootstrap statistics use this to refit models on the indexed
// subset without materializing a resampled table.
func Indices(rng *rand.Rand, populationSize, n int) ([]int, error) {
	if populationSize < 1 {
		return nil, core.ErrEmptyDataset
	}
	if n < 1 {
		return nil, core.NewInvalidSampleSizeError(n, 0)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(populationSize)
	}
	return idx, nil
}
