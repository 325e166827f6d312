package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goresample/adapters/excel"
	"goresample/adapters/fit"
	"goresample/adapters/rng"
	"goresample/app"
	"goresample/domain/core"
	"goresample/domain/dataset"
	"goresample/domain/resample"
	"goresample/internal"
	"goresample/internal/config"
	"goresample/internal/statistic"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "goresample",
		Short: "Monte Carlo resampling studies: sampling distributions, randomization tests, jackknife and bootstrap",
	}

	rootCmd.AddCommand(
		newSamplingDistCmd(),
		newRandomizeCmd(),
		newJackknifeCmd(),
		newBootstrapCmd(),
		newRegressCmd(),
		newCoverageCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() (*app.StudyService, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := internal.NewDefaultLogger()
	svc := app.NewStudyService(rng.New(), fit.NewOLSFitter(), nil, logger)
	svc.UseParallel(cfg.Simulation.Workers)
	return svc, cfg, nil
}

// resolveSeed prefers an explicit --seed flag over the SEED env default
func resolveSeed(cmd *cobra.Command, flagValue int64, cfg *config.Config) int64 {
	if cmd.Flags().Changed("seed") {
		return flagValue
	}
	return cfg.Simulation.Seed
}

func newSamplingDistCmd() *cobra.Command {
	var (
		family     string
		mean       float64
		stddev     float64
		lambda     float64
		rate       float64
		sampleSize int
		trials     int
		seed       int64
		statName   string
	)

	cmd := &cobra.Command{
		Use:   "sampling-dist",
		Short: "Simulate the sampling distribution of a statistic",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}

			statFn, err := statistic.ByName(statName)
			if err != nil {
				return err
			}

			result, err := svc.RunSamplingDistribution(context.Background(), app.SamplingDistributionRequest{
				Population: resample.PopulationSpec{
					Family: resample.Family(family),
					Mean:   mean, StdDev: stddev, Lambda: lambda, Rate: rate,
				},
				SampleSize: sampleSize,
				Trials:     orDefault(trials, cfg.Simulation.TrialCount),
				Seed:       resolveSeed(cmd, seed, cfg),
				Statistic:  statFn,
				Level:      cfg.Simulation.ConfidenceLevel,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&family, "family", "normal", "Population family: normal, poisson, exponential, uniform")
	cmd.Flags().Float64Var(&mean, "mean", 0, "Normal mean")
	cmd.Flags().Float64Var(&stddev, "stddev", 1, "Normal standard deviation")
	cmd.Flags().Float64Var(&lambda, "lambda", 0, "Poisson rate")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Exponential rate")
	cmd.Flags().IntVar(&sampleSize, "n", 30, "Sample size per trial")
	cmd.Flags().IntVar(&trials, "trials", 0, "Monte Carlo trials (default from TRIAL_COUNT)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed (default from SEED)")
	cmd.Flags().StringVar(&statName, "stat", "mean", "Statistic to simulate")

	return cmd
}

func newRandomizeCmd() *cobra.Command {
	var (
		group1Arg string
		group2Arg string
		dataFile  string
		col1      string
		col2      string
		trials    int
		seed      int64
		statName  string
	)

	cmd := &cobra.Command{
		Use:   "randomize",
		Short: "Run a two-group randomization (permutation) test",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}

			group1, group2, err := loadTwoGroups(dataFile, col1, col2, group1Arg, group2Arg)
			if err != nil {
				return err
			}

			statFn, err := statistic.TwoSampleByName(statName)
			if err != nil {
				return err
			}

			result, err := svc.RunRandomizationTest(context.Background(), app.RandomizationTestRequest{
				Group1:    group1,
				Group2:    group2,
				Trials:    orDefault(trials, cfg.Simulation.TrialCount),
				Seed:      resolveSeed(cmd, seed, cfg),
				Statistic: statFn,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&group1Arg, "group1", "", "Comma-separated group 1 values")
	cmd.Flags().StringVar(&group2Arg, "group2", "", "Comma-separated group 2 values")
	cmd.Flags().StringVar(&dataFile, "data", "", "Excel/CSV file with group columns")
	cmd.Flags().StringVar(&col1, "col1", "", "Group 1 column name")
	cmd.Flags().StringVar(&col2, "col2", "", "Group 2 column name")
	cmd.Flags().IntVar(&trials, "trials", 0, "Relabelings (default from TRIAL_COUNT)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed (default from SEED)")
	cmd.Flags().StringVar(&statName, "stat", "diff_of_means", "Two-sample statistic")

	return cmd
}

func newJackknifeCmd() *cobra.Command {
	var (
		valuesArg string
		dataFile  string
		column    string
		statName  string
		level     float64
	)

	cmd := &cobra.Command{
		Use:   "jackknife",
		Short: "Leave-one-out jackknife estimate with t-based CI",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}

			sample, err := loadSample(dataFile, column, valuesArg)
			if err != nil {
				return err
			}
			statFn, err := statistic.ByName(statName)
			if err != nil {
				return err
			}

			result, _, err := svc.RunJackknife(context.Background(), app.JackknifeRequest{
				Sample:    sample,
				Statistic: statFn,
				Level:     orDefaultFloat(level, cfg.Simulation.ConfidenceLevel),
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&valuesArg, "values", "", "Comma-separated sample values")
	cmd.Flags().StringVar(&dataFile, "data", "", "Excel/CSV file to read the sample from")
	cmd.Flags().StringVar(&column, "column", "", "Column name in the data file")
	cmd.Flags().StringVar(&statName, "stat", "mean", "Statistic to jackknife")
	cmd.Flags().Float64Var(&level, "level", 0, "Confidence level (default from CONFIDENCE_LEVEL)")

	return cmd
}

func newBootstrapCmd() *cobra.Command {
	var (
		valuesArg string
		dataFile  string
		column    string
		statName  string
		trials    int
		seed      int64
		level     float64
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Bootstrap a statistic with normal and percentile CIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}

			sample, err := loadSample(dataFile, column, valuesArg)
			if err != nil {
				return err
			}
			statFn, err := statistic.ByName(statName)
			if err != nil {
				return err
			}

			result, _, err := svc.RunBootstrap(context.Background(), app.BootstrapRequest{
				Sample:    sample,
				Statistic: statFn,
				Trials:    orDefault(trials, cfg.Simulation.TrialCount),
				Seed:      resolveSeed(cmd, seed, cfg),
				Level:     orDefaultFloat(level, cfg.Simulation.ConfidenceLevel),
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&valuesArg, "values", "", "Comma-separated sample values")
	cmd.Flags().StringVar(&dataFile, "data", "", "Excel/CSV file to read the sample from")
	cmd.Flags().StringVar(&column, "column", "", "Column name in the data file")
	cmd.Flags().StringVar(&statName, "stat", "mean", "Statistic to bootstrap")
	cmd.Flags().IntVar(&trials, "trials", 0, "Bootstrap resamples (default from TRIAL_COUNT)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed (default from SEED)")
	cmd.Flags().Float64Var(&level, "level", 0, "Confidence level")

	return cmd
}

func newRegressCmd() *cobra.Command {
	var (
		dataFile   string
		response   string
		predictors string
		trials     int
		seed       int64
		level      float64
	)

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Bootstrap OLS coefficients by resampling rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}

			if dataFile == "" || response == "" || predictors == "" {
				return fmt.Errorf("--data, --response and --predictors are required")
			}
			ds, err := excel.NewDataReader(dataFile).ReadDataset()
			if err != nil {
				return err
			}

			keys := make([]core.ColumnKey, 0)
			for _, p := range strings.Split(predictors, ",") {
				keys = append(keys, core.ColumnKey(strings.TrimSpace(p)))
			}

			result, _, err := svc.RunBootstrapRegression(context.Background(), app.BootstrapRegressionRequest{
				Dataset:    ds,
				Response:   core.ColumnKey(response),
				Predictors: keys,
				Trials:     orDefault(trials, cfg.Simulation.TrialCount),
				Seed:       resolveSeed(cmd, seed, cfg),
				Level:      orDefaultFloat(level, cfg.Simulation.ConfidenceLevel),
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Excel/CSV file with the regression data")
	cmd.Flags().StringVar(&response, "response", "", "Response column name")
	cmd.Flags().StringVar(&predictors, "predictors", "", "Comma-separated predictor column names")
	cmd.Flags().IntVar(&trials, "trials", 0, "Bootstrap resamples")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed (default from SEED)")
	cmd.Flags().Float64Var(&level, "level", 0, "Confidence level")

	return cmd
}

func newCoverageCmd() *cobra.Command {
	var (
		family     string
		mean       float64
		stddev     float64
		lambda     float64
		rate       float64
		trueValue  float64
		sampleSize int
		repeats    int
		seed       int64
		statName   string
		level      float64
	)

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Measure achieved jackknife CI coverage against a known population",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}

			statFn, err := statistic.ByName(statName)
			if err != nil {
				return err
			}

			result, err := svc.RunCoverageExperiment(context.Background(), app.CoverageRequest{
				Population: resample.PopulationSpec{
					Family: resample.Family(family),
					Mean:   mean, StdDev: stddev, Lambda: lambda, Rate: rate,
				},
				SampleSize: sampleSize,
				Repeats:    repeats,
				Seed:       resolveSeed(cmd, seed, cfg),
				Statistic:  statFn,
				TrueValue:  trueValue,
				Level:      orDefaultFloat(level, cfg.Simulation.ConfidenceLevel),
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&family, "family", "poisson", "Population family")
	cmd.Flags().Float64Var(&mean, "mean", 0, "Normal mean")
	cmd.Flags().Float64Var(&stddev, "stddev", 1, "Normal standard deviation")
	cmd.Flags().Float64Var(&lambda, "lambda", 4, "Poisson rate")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Exponential rate")
	cmd.Flags().Float64Var(&trueValue, "true-value", 4, "True parameter value the CI should contain")
	cmd.Flags().IntVar(&sampleSize, "n", 25, "Sample size per repeat")
	cmd.Flags().IntVar(&repeats, "repeats", 500, "Number of repeated samples")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed (default from SEED)")
	cmd.Flags().StringVar(&statName, "stat", "mean", "Statistic to jackknife")
	cmd.Flags().Float64Var(&level, "level", 0, "Nominal confidence level")

	return cmd
}

// loadSample reads a sample from a data file column or inline values
func loadSample(dataFile, column, valuesArg string) (resample.Sample, error) {
	if dataFile != "" {
		ds, err := excel.NewDataReader(dataFile).ReadDataset()
		if err != nil {
			return nil, err
		}
		return datasetColumn(ds, column)
	}
	if valuesArg != "" {
		return parseValues(valuesArg)
	}
	return nil, fmt.Errorf("either --data/--column or --values is required")
}

func loadTwoGroups(dataFile, col1, col2, group1Arg, group2Arg string) (resample.Sample, resample.Sample, error) {
	if dataFile != "" {
		ds, err := excel.NewDataReader(dataFile).ReadDataset()
		if err != nil {
			return nil, nil, err
		}
		g1, err := datasetColumn(ds, col1)
		if err != nil {
			return nil, nil, err
		}
		g2, err := datasetColumn(ds, col2)
		if err != nil {
			return nil, nil, err
		}
		return g1, g2, nil
	}

	g1, err := parseValues(group1Arg)
	if err != nil {
		return nil, nil, err
	}
	g2, err := parseValues(group2Arg)
	if err != nil {
		return nil, nil, err
	}
	return g1, g2, nil
}

func datasetColumn(ds *dataset.Dataset, column string) (resample.Sample, error) {
	col, ok := ds.Column(core.ColumnKey(column))
	if !ok {
		return nil, fmt.Errorf("column %q not found in %s", column, ds.Name)
	}
	return col, nil
}

func parseValues(arg string) (resample.Sample, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, fmt.Errorf("no values given")
	}
	parts := strings.Split(arg, ",")
	out := make(resample.Sample, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func orDefaultFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
