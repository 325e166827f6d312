package summary

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"goresample/domain/core"
	"goresample/domain/resample"
)

// Stats summarizes an empirical sampling distribution. StdErr is the sample
// standard deviation of the distribution (divisor n-1), which is by
// definition the Monte Carlo estimate of the statistic's standard error.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdErr float64 `json:"std_err"`
	Trials int     `json:"trials"`
}

// Detail extends Stats with shape descriptors for study reports
type Detail struct {
	Stats
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes the mean and standard error of a distribution
func Describe(dist resample.Distribution) (Stats, error) {
	if dist.Trials() == 0 {
		return Stats{}, core.NewInvalidTrialCountError(0)
	}

	mean, sd := stat.MeanStdDev(dist.Values(), nil)
	if dist.Trials() == 1 {
		sd = 0
	}
	return Stats{Mean: mean, StdErr: sd, Trials: dist.Trials()}, nil
}

// DescribeDetail computes the full shape summary used in rendered reports
func DescribeDetail(dist resample.Distribution) (Detail, error) {
	basic, err := Describe(dist)
	if err != nil {
		return Detail{}, err
	}

	data := stats.Float64Data(dist.Values())
	median, err := data.Median()
	if err != nil {
		return Detail{}, err
	}
	quartiles, err := stats.Quartile(data)
	if err != nil {
		return Detail{}, err
	}
	min, err := data.Min()
	if err != nil {
		return Detail{}, err
	}
	max, err := data.Max()
	if err != nil {
		return Detail{}, err
	}

	return Detail{
		Stats:  basic,
		Median: median,
		Q1:     quartiles.Q1,
		Q3:     quartiles.Q3,
		Min:    min,
		Max:    max,
	}, nil
}

// PercentileCI returns the [(1-level)/2, 1-(1-level)/2] empirical quantiles
// of the distribution, using linear interpolation between order statistics.
func PercentileCI(dist resample.Distribution, level float64) (resample.Interval, error) {
	if level <= 0 || level >= 1 {
		return resample.Interval{}, core.NewInvalidConfidenceLevelError(level)
	}
	if dist.Trials() == 0 {
		return resample.Interval{}, core.NewInvalidTrialCountError(0)
	}

	sorted := make([]float64, dist.Trials())
	copy(sorted, dist.Values())
	sort.Float64s(sorted)

	tail := (1 - level) / 2
	return resample.Interval{
		Lower: stat.Quantile(tail, stat.LinInterp, sorted, nil),
		Upper: stat.Quantile(1-tail, stat.LinInterp, sorted, nil),
		Level: level,
	}, nil
}

// NormalCI builds center +/- critical * stderr. The critical-value
// distribution is an explicit configuration: Student's t with df degrees of
// freedom when the center comes from a small reference sample, z for
// large-sample Monte Carlo summaries.
func NormalCI(center, stderr, level float64, dist resample.CriticalValueDist, df int) (resample.Interval, error) {
	crit, err := CriticalValue(level, dist, df)
	if err != nil {
		return resample.Interval{}, err
	}

	margin := crit * stderr
	return resample.Interval{
		Lower: center - margin,
		Upper: center + margin,
		Level: level,
	}, nil
}

// CriticalValue returns the two-sided critical value at the given coverage level
func CriticalValue(level float64, dist resample.CriticalValueDist, df int) (float64, error) {
	if level <= 0 || level >= 1 {
		return 0, core.NewInvalidConfidenceLevelError(level)
	}

	p := 1 - (1-level)/2
	switch dist {
	case resample.CriticalT:
		if df < 1 {
			return 0, core.NewInsufficientSampleSizeError(df+1, 2)
		}
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}.Quantile(p), nil
	case resample.CriticalZ:
		return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(p), nil
	default:
		return 0, core.NewValidationError("critical_value_dist", "must be t or z")
	}
}
