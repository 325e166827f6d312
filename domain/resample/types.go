package resample

import (
	"goresample/domain/core"
)

// Sample is an ordered, finite sequence of numeric observations.
// Downstream consumers must not mutate it once drawn.
type Sample []float64

// Len returns the number of observations
func (s Sample) Len() int {
	return len(s)
}

// Clone returns an independent copy of the sample
func (s Sample) Clone() Sample {
	out := make(Sample, len(s))
	copy(out, s)
	return out
}

// Without returns a copy of the sample with observation i removed.
// Used by the jackknife for leave-one-out recomputation.
func (s Sample) Without(i int) Sample {
	out := make(Sample, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

// Statistic maps a sample to a scalar statistic value.
// Implementations must be pure and deterministic given their input.
type Statistic func(Sample) (float64, error)

// TwoSampleStatistic maps two group samples to a scalar test statistic,
// e.g. a difference of means for a randomization test.
type TwoSampleStatistic func(group1, group2 Sample) (float64, error)

// Distribution is the empirical sampling distribution of a scalar
// statistic: one value per Monte Carlo trial, in call order. Not
// mutated after the trial loop completes.
type Distribution []float64

// Values returns the raw trial values
func (d Distribution) Values() []float64 {
	return []float64(d)
}

// Trials returns the number of trials that produced the distribution
func (d Distribution) Trials() int {
	return len(d)
}

// VectorDistribution holds one fixed-arity statistic vector per trial.
// The arity is fixed by the first trial; the driver rejects mismatched
// trial outputs rather than coercing them.
type VectorDistribution [][]float64

// Trials returns the number of trials
func (d VectorDistribution) Trials() int {
	return len(d)
}

// Arity returns the statistic vector length, or 0 for an empty distribution
func (d VectorDistribution) Arity() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0])
}

// Component extracts the distribution of a single vector component
func (d VectorDistribution) Component(i int) Distribution {
	out := make(Distribution, len(d))
	for t, v := range d {
		out[t] = v[i]
	}
	return out
}

// Family identifies a parametric distribution family
type Family string

const (
	FamilyNormal      Family = "normal"
	FamilyPoisson     Family = "poisson"
	FamilyExponential Family = "exponential"
	FamilyUniform     Family = "uniform"
)

// PopulationSpec describes a parametric population to sample from
type PopulationSpec struct {
	Family Family  `json:"family"`
	Mean   float64 `json:"mean,omitempty"`   // normal
	StdDev float64 `json:"stddev,omitempty"` // normal
	Lambda float64 `json:"lambda,omitempty"` // poisson
	Rate   float64 `json:"rate,omitempty"`   // exponential
	Min    float64 `json:"min,omitempty"`    // uniform
	Max    float64 `json:"max,omitempty"`    // uniform
}

// Interval is a two-sided confidence interval with its nominal coverage level
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Width returns the interval width
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Contains reports whether v lies inside the interval (bounds inclusive)
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Lower && v <= iv.Upper
}

// CriticalValueDist selects the reference distribution for normal-form
// confidence intervals. The choice is a caller-visible configuration,
// not a hidden default: jackknife-style small-sample estimates want a
// Student's t critical value, large Monte Carlo summaries a z value.
type CriticalValueDist string

const (
	CriticalT CriticalValueDist = "t"
	CriticalZ CriticalValueDist = "z"
)

// FitCoefficient is one named coefficient from an external model fit
type FitCoefficient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FitResult is the explicit result of an external model-fitting routine,
// consumed by bootstrap statistics via field access.
type FitResult struct {
	Coefficients []FitCoefficient `json:"coefficients"`
	Converged    bool             `json:"converged"`
}

// Values returns the coefficient values in declaration order
func (fr FitResult) Values() []float64 {
	out := make([]float64, len(fr.Coefficients))
	for i, c := range fr.Coefficients {
		out[i] = c.Value
	}
	return out
}

// StudyKind labels the resampling procedure a study artifact came from
type StudyKind string

const (
	StudySamplingDistribution StudyKind = "sampling_distribution"
	StudyRandomizationTest    StudyKind = "randomization_test"
	StudyJackknife            StudyKind = "jackknife"
	StudyBootstrap            StudyKind = "bootstrap"
	StudyCoverage             StudyKind = "coverage"
)

// StudyArtifact captures the persisted outcome of one resampling study
type StudyArtifact struct {
	ID        core.StudyID   `json:"id"`
	Kind      StudyKind      `json:"kind"`
	Seed      int64          `json:"seed"`
	Trials    int            `json:"trials"`
	Payload   map[string]any `json:"payload"`
	CreatedAt core.Timestamp `json:"created_at"`
}
