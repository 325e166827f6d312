package statistic

import (
	"fmt"

	"goresample/domain/resample"
)

// ByName resolves a statistic by its request-surface name. Column and
// statistic selection happen here, at the boundary; the drivers only ever
// see typed closures. The empty name is a deliberate alias for "mean" so
// callers may omit the field; unknown non-empty names are rejected.
func ByName(name string) (resample.Statistic, error) {
	switch name {
	case "", "mean":
		return Mean, nil
	case "median":
		return Median, nil
	case "variance":
		return Variance, nil
	case "stddev":
		return StdDev, nil
	case "skewness":
		return Skewness, nil
	case "log_variance":
		return LogVariance, nil
	default:
		return nil, fmt.Errorf("unknown statistic %q", name)
	}
}

// TwoSampleByName resolves a two-group test statistic by name
func TwoSampleByName(name string) (resample.TwoSampleStatistic, error) {
	switch name {
	case "", "diff_of_means":
		return DiffOfMeans, nil
	case "ratio_of_variances":
		return RatioOfVariances, nil
	default:
		return nil, fmt.Errorf("unknown two-sample statistic %q", name)
	}
}
