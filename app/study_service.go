package app

import (
	"context"
	"math"
	"math/rand"

	"goresample/domain/core"
	"goresample/domain/dataset"
	"goresample/domain/resample"
	"goresample/internal"
	"goresample/internal/bootstrap"
	"goresample/internal/jackknife"
	"goresample/internal/sampler"
	"goresample/internal/simulate"
	"goresample/internal/statistic"
	"goresample/internal/summary"
	"goresample/ports"
)

// StudyService runs resampling studies end to end: it owns the RNG streams,
// feeds the Monte Carlo driver, summarizes the resulting distributions, and
// persists study artifacts when a repository is configured.
type StudyService struct {
	rngPort ports.RNGPort
	fitter  ports.ModelFitterPort
	repo    ports.StudyRepositoryPort // optional
	logger  *internal.Logger
	workers int
}

// NewStudyService creates a study service. repo may be nil to skip persistence.
func NewStudyService(rngPort ports.RNGPort, fitter ports.ModelFitterPort, repo ports.StudyRepositoryPort, logger *internal.Logger) *StudyService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StudyService{rngPort: rngPort, fitter: fitter, repo: repo, logger: logger}
}

// UseParallel runs trial loops on a bounded worker pool with per-trial RNG
// sub-streams. Results are deterministic for a given seed regardless of the
// worker count. workers <= 0 keeps sequential execution.
func (s *StudyService) UseParallel(workers int) {
	s.workers = workers
}

// SamplingDistributionRequest describes a sampling-distribution study:
// draw Trials samples of SampleSize from Population, apply Statistic to each.
type SamplingDistributionRequest struct {
	Population resample.PopulationSpec
	SampleSize int
	Trials     int
	Seed       int64
	Statistic  resample.Statistic // nil = sample mean
	Level      float64            // nominal CI coverage
}

// SamplingDistributionResult summarizes the simulated sampling distribution
type SamplingDistributionResult struct {
	StudyID      core.StudyID          `json:"study_id"`
	Summary      summary.Detail        `json:"summary"`
	PercentileCI resample.Interval     `json:"percentile_ci"`
	NormalCI     resample.Interval     `json:"normal_ci"`
	Distribution resample.Distribution `json:"-"`
}

// RunSamplingDistribution simulates the sampling distribution of a statistic
func (s *StudyService) RunSamplingDistribution(ctx context.Context, req SamplingDistributionRequest) (*SamplingDistributionResult, error) {
	statFn := req.Statistic
	if statFn == nil {
		statFn = statistic.Mean
	}

	trial := func(rng *rand.Rand) (float64, error) {
		draw, err := sampler.Draw(rng, req.Population, req.SampleSize)
		if err != nil {
			return 0, err
		}
		return statFn(draw)
	}

	var dist resample.Distribution
	if s.workers > 0 {
		driver := simulate.NewParallelDriver(s.rngPort, s.workers)
		var err error
		dist, err = driver.Simulate(ctx, "sampling_distribution", req.Seed, req.Trials, func(_ int, rng *rand.Rand) (float64, error) {
			return trial(rng)
		})
		if err != nil {
			return nil, err
		}
	} else {
		rng, err := s.rngPort.SeededStream(ctx, "sampling_distribution", req.Seed)
		if err != nil {
			return nil, err
		}
		dist, err = simulate.Simulate(req.Trials, func() (float64, error) {
			return trial(rng)
		})
		if err != nil {
			return nil, err
		}
	}

	detail, err := summary.DescribeDetail(dist)
	if err != nil {
		return nil, err
	}
	percentileCI, err := summary.PercentileCI(dist, req.Level)
	if err != nil {
		return nil, err
	}
	// Large-sample Monte Carlo summary, so a z critical value applies
	normalCI, err := summary.NormalCI(detail.Mean, detail.StdErr, req.Level, resample.CriticalZ, 0)
	if err != nil {
		return nil, err
	}

	result := &SamplingDistributionResult{
		Summary:      detail,
		PercentileCI: percentileCI,
		NormalCI:     normalCI,
		Distribution: dist,
	}
	result.StudyID = s.persist(ctx, resample.StudySamplingDistribution, req.Seed, req.Trials, map[string]any{
		"population":    req.Population,
		"sample_size":   req.SampleSize,
		"mean":          detail.Mean,
		"std_err":       detail.StdErr,
		"percentile_ci": percentileCI,
		"normal_ci":     normalCI,
	})

	s.logger.Info("sampling distribution study: %d trials, mean=%.4f, se=%.4f", req.Trials, detail.Mean, detail.StdErr)
	return result, nil
}

// RandomizationTestRequest describes a two-group randomization test
type RandomizationTestRequest struct {
	Group1    resample.Sample
	Group2    resample.Sample
	Trials    int
	Seed      int64
	Statistic resample.TwoSampleStatistic // nil = difference of means
}

// RandomizationTestResult reports the observed statistic against the null
// distribution built by relabeling the pooled values.
type RandomizationTestResult struct {
	StudyID     core.StudyID          `json:"study_id"`
	Observed    float64               `json:"observed"`
	PValue      float64               `json:"p_value"`
	NullSummary summary.Stats         `json:"null_summary"`
	Null        resample.Distribution `json:"-"`
}

// RunRandomizationTest builds the null sampling distribution of the test
// statistic by random relabeling and reports the two-sided empirical
// p-value: the proportion of null values at least as extreme as observed.
func (s *StudyService) RunRandomizationTest(ctx context.Context, req RandomizationTestRequest) (*RandomizationTestResult, error) {
	statFn := req.Statistic
	if statFn == nil {
		statFn = statistic.DiffOfMeans
	}

	observed, err := statFn(req.Group1, req.Group2)
	if err != nil {
		return nil, core.NewStatisticError(0, err)
	}

	pool := make(resample.Sample, 0, len(req.Group1)+len(req.Group2))
	pool = append(pool, req.Group1...)
	pool = append(pool, req.Group2...)
	n1, n2 := len(req.Group1), len(req.Group2)

	relabel := func(rng *rand.Rand) (float64, error) {
		g1, g2, err := sampler.RandomizeTwoGroups(rng, pool, n1, n2)
		if err != nil {
			return 0, err
		}
		return statFn(g1, g2)
	}

	var null resample.Distribution
	if s.workers > 0 {
		driver := simulate.NewParallelDriver(s.rngPort, s.workers)
		null, err = driver.Simulate(ctx, "randomization_test", req.Seed, req.Trials, func(_ int, rng *rand.Rand) (float64, error) {
			return relabel(rng)
		})
		if err != nil {
			return nil, err
		}
	} else {
		rng, err := s.rngPort.SeededStream(ctx, "randomization_test", req.Seed)
		if err != nil {
			return nil, err
		}
		null, err = simulate.Simulate(req.Trials, func() (float64, error) {
			return relabel(rng)
		})
		if err != nil {
			return nil, err
		}
	}

	extreme := 0
	for _, v := range null {
		if math.Abs(v) >= math.Abs(observed) {
			extreme++
		}
	}
	pValue := float64(extreme) / float64(null.Trials())

	nullSummary, err := summary.Describe(null)
	if err != nil {
		return nil, err
	}

	result := &RandomizationTestResult{
		Observed:    observed,
		PValue:      pValue,
		NullSummary: nullSummary,
		Null:        null,
	}
	result.StudyID = s.persist(ctx, resample.StudyRandomizationTest, req.Seed, req.Trials, map[string]any{
		"observed":     observed,
		"p_value":      pValue,
		"null_mean":    nullSummary.Mean,
		"null_std_err": nullSummary.StdErr,
		"n1":           n1,
		"n2":           n2,
	})

	s.logger.Info("randomization test: observed=%.4f, p=%.4f (%d relabelings)", observed, pValue, req.Trials)
	return result, nil
}

// JackknifeRequest describes a jackknife estimation run
type JackknifeRequest struct {
	Sample    resample.Sample
	Statistic resample.Statistic
	Level     float64
	Seed      int64 // recorded in the artifact; the jackknife itself is deterministic
}

// RunJackknife runs the leave-one-out jackknife and records the artifact
func (s *StudyService) RunJackknife(ctx context.Context, req JackknifeRequest) (*jackknife.Result, core.StudyID, error) {
	res, err := jackknife.Estimate(req.Sample, req.Statistic, req.Level)
	if err != nil {
		return nil, "", err
	}

	studyID := s.persist(ctx, resample.StudyJackknife, req.Seed, req.Sample.Len(), map[string]any{
		"estimate": res.Estimate,
		"std_err":  res.StdErr,
		"ci":       res.CI,
		"n":        req.Sample.Len(),
	})
	return &res, studyID, nil
}

// BootstrapRequest describes a scalar bootstrap run
type BootstrapRequest struct {
	Sample    resample.Sample
	Statistic resample.Statistic
	Trials    int
	Seed      int64
	Level     float64
}

// RunBootstrap bootstraps a scalar statistic and records the artifact
func (s *StudyService) RunBootstrap(ctx context.Context, req BootstrapRequest) (*bootstrap.Result, core.StudyID, error) {
	rng, err := s.rngPort.SeededStream(ctx, "bootstrap", req.Seed)
	if err != nil {
		return nil, "", err
	}

	res, err := bootstrap.Estimate(rng, req.Sample, req.Statistic, req.Trials, req.Level)
	if err != nil {
		return nil, "", err
	}

	studyID := s.persist(ctx, resample.StudyBootstrap, req.Seed, req.Trials, map[string]any{
		"observed":      res.Observed,
		"mean":          res.Mean,
		"std_err":       res.StdErr,
		"normal_ci":     res.NormalCI,
		"percentile_ci": res.PercentileCI,
		"n":             req.Sample.Len(),
	})
	return &res, studyID, nil
}

// BootstrapRegressionRequest bootstraps OLS coefficients by resampling rows
type BootstrapRegressionRequest struct {
	Dataset    *dataset.Dataset
	Response   core.ColumnKey
	Predictors []core.ColumnKey
	Trials     int
	Seed       int64
	Level      float64
}

// CoefficientCI pairs a coefficient name with its bootstrap summary
type CoefficientCI struct {
	Name   string           `json:"name"`
	Result bootstrap.Result `json:"result"`
}

// RunBootstrapRegression refits the regression on each set of resampled row
// indices via the model-fitter port and builds per-coefficient CIs.
func (s *StudyService) RunBootstrapRegression(ctx context.Context, req BootstrapRegressionRequest) ([]CoefficientCI, core.StudyID, error) {
	rng, err := s.rngPort.SeededStream(ctx, "bootstrap_regression", req.Seed)
	if err != nil {
		return nil, "", err
	}

	names := make([]string, 0, len(req.Predictors)+1)
	statFn := func(idx []int) ([]float64, error) {
		fitRes, err := s.fitter.Fit(ctx, req.Dataset, req.Response, req.Predictors, idx)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			for _, c := range fitRes.Coefficients {
				names = append(names, c.Name)
			}
		}
		return fitRes.Values(), nil
	}

	res, err := bootstrap.EstimateIndexed(rng, req.Dataset.Rows(), statFn, req.Trials, req.Level)
	if err != nil {
		return nil, "", err
	}

	out := make([]CoefficientCI, len(res.Components))
	payload := map[string]any{"response": req.Response, "trials": req.Trials}
	for i, comp := range res.Components {
		out[i] = CoefficientCI{Name: names[i], Result: comp}
		payload[names[i]] = comp
	}

	studyID := s.persist(ctx, resample.StudyBootstrap, req.Seed, req.Trials, payload)
	return out, studyID, nil
}

// CoverageRequest describes a CI coverage experiment: repeatedly sample from
// a known population, build a jackknife CI each time, and count how often the
// interval contains the true parameter value.
type CoverageRequest struct {
	Population resample.PopulationSpec
	SampleSize int
	Repeats    int
	Seed       int64
	Statistic  resample.Statistic // nil = sample mean
	TrueValue  float64
	Level      float64
}

// CoverageResult reports the achieved coverage rate
type CoverageResult struct {
	StudyID   core.StudyID `json:"study_id"`
	Contained int          `json:"contained"`
	Repeats   int          `json:"repeats"`
	Coverage  float64      `json:"coverage"`
}

// RunCoverageExperiment measures achieved CI coverage against the nominal
// level. For non-normal statistics the achieved rate is expected to fall
// short of nominal at small n; the experiment reports, it does not correct.
func (s *StudyService) RunCoverageExperiment(ctx context.Context, req CoverageRequest) (*CoverageResult, error) {
	if req.Repeats < 1 {
		return nil, core.NewInvalidTrialCountError(req.Repeats)
	}
	statFn := req.Statistic
	if statFn == nil {
		statFn = statistic.Mean
	}

	rng, err := s.rngPort.SeededStream(ctx, "coverage_experiment", req.Seed)
	if err != nil {
		return nil, err
	}

	contained := 0
	for i := 0; i < req.Repeats; i++ {
		draw, err := sampler.Draw(rng, req.Population, req.SampleSize)
		if err != nil {
			return nil, err
		}
		jk, err := jackknife.Estimate(draw, statFn, req.Level)
		if err != nil {
			return nil, err
		}
		if jk.CI.Contains(req.TrueValue) {
			contained++
		}
	}

	result := &CoverageResult{
		Contained: contained,
		Repeats:   req.Repeats,
		Coverage:  float64(contained) / float64(req.Repeats),
	}
	result.StudyID = s.persist(ctx, resample.StudyCoverage, req.Seed, req.Repeats, map[string]any{
		"population":  req.Population,
		"sample_size": req.SampleSize,
		"level":       req.Level,
		"coverage":    result.Coverage,
	})

	s.logger.Info("coverage experiment: %d/%d intervals contained %.4f (%.1f%% vs %.1f%% nominal)",
		contained, req.Repeats, req.TrueValue, result.Coverage*100, req.Level*100)
	return result, nil
}

// persist stores a study artifact when a repository is configured.
// Persistence failures are logged, not surfaced: the computed result is
// already correct and the store is an auxiliary audit trail.
func (s *StudyService) persist(ctx context.Context, kind resample.StudyKind, seed int64, trials int, payload map[string]any) core.StudyID {
	id := core.StudyID(core.NewID())
	if s.repo == nil {
		return id
	}

	artifact := &resample.StudyArtifact{
		ID:        id,
		Kind:      kind,
		Seed:      seed,
		Trials:    trials,
		Payload:   payload,
		CreatedAt: core.Now(),
	}
	if err := s.repo.Save(ctx, artifact); err != nil {
		s.logger.Warn("failed to persist %s study %s: %v", kind, id, err)
	}
	return id
}
