package statistic

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"goresample/domain/core"
	"goresample/domain/resample"
)

// Ready-made statistic functions for the resampling estimators. Each one is
// pure, validates its own minimum sample size, and fails rather than
// returning NaN on degenerate input.

// Mean is the arithmetic mean
func Mean(s resample.Sample) (float64, error) {
	if s.Len() < 1 {
		return 0, core.NewInsufficientSampleSizeError(s.Len(), 1)
	}
	return stat.Mean(s, nil), nil
}

// Variance is the sample variance (divisor n-1)
func Variance(s resample.Sample) (float64, error) {
	if s.Len() < 2 {
		return 0, core.NewInsufficientSampleSizeError(s.Len(), 2)
	}
	return stat.Variance(s, nil), nil
}

// StdDev is the sample standard deviation (divisor n-1)
func StdDev(s resample.Sample) (float64, error) {
	v, err := Variance(s)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Median is the 50th percentile
func Median(s resample.Sample) (float64, error) {
	if s.Len() < 1 {
		return 0, core.NewInsufficientSampleSizeError(s.Len(), 1)
	}
	return mstats.Median(mstats.Float64Data(s))
}

// Skewness is the adjusted Fisher-Pearson sample skewness. Nonlinear in the
// observations, so jackknife bias correction actually moves the estimate.
func Skewness(s resample.Sample) (float64, error) {
	if s.Len() < 3 {
		return 0, core.NewInsufficientSampleSizeError(s.Len(), 3)
	}
	sk := stat.Skew(s, nil)
	if math.IsNaN(sk) {
		return 0, core.NewValidationError("sample", "skewness undefined for zero-variance sample")
	}
	return sk, nil
}

// LogVariance is log of the sample variance, the conventional normalizing
// transform when jackknifing variance-like statistics.
func LogVariance(s resample.Sample) (float64, error) {
	v, err := Variance(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, core.NewValidationError("sample", "log variance undefined for zero-variance sample")
	}
	return math.Log(v), nil
}

// DiffOfMeans is the two-sample test statistic mean(g1) - mean(g2)
func DiffOfMeans(group1, group2 resample.Sample) (float64, error) {
	m1, err := Mean(group1)
	if err != nil {
		return 0, err
	}
	m2, err := Mean(group2)
	if err != nil {
		return 0, err
	}
	return m1 - m2, nil
}

// RatioOfVariances is the two-sample test statistic var(g1) / var(g2)
func RatioOfVariances(group1, group2 resample.Sample) (float64, error) {
	v1, err := Variance(group1)
	if err != nil {
		return 0, err
	}
	v2, err := Variance(group2)
	if err != nil {
		return 0, err
	}
	if v2 == 0 {
		return 0, core.NewValidationError("group2", "variance ratio undefined for zero-variance denominator")
	}
	return v1 / v2, nil
}
