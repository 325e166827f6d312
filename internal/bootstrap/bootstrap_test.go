package bootstrap

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"goresample/domain/core"
	"goresample/domain/resample"
	"goresample/internal/statistic"
)

var sample = resample.Sample{2, 4, 4, 4, 5, 5, 7, 9}

func TestEstimate_Reproducible(t *testing.T) {
	a, err := Estimate(rand.New(rand.NewSource(42)), sample, statistic.Mean, 500, 0.95)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Estimate(rand.New(rand.NewSource(42)), sample, statistic.Mean, 500, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Distribution {
		if a.Distribution[i] != b.Distribution[i] {
			t.Fatalf("same seed diverged at trial %d", i)
		}
	}
}

func TestEstimate_MeanBootstrap(t *testing.T) {
	res, err := Estimate(rand.New(rand.NewSource(7)), sample, statistic.Mean, 2000, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	if res.Observed != 5.0 {
		t.Errorf("observed mean %v, want 5.0", res.Observed)
	}
	// Bootstrap mean of the mean concentrates near the observed mean
	if math.Abs(res.Mean-5.0) > 0.2 {
		t.Errorf("bootstrap mean %v too far from 5.0", res.Mean)
	}
	// Bootstrap SE approximates s/sqrt(n) (with-replacement version uses
	// divisor n, so expect slight shrinkage, not equality)
	analytic := math.Sqrt(32.0 / 7.0 / 8.0)
	if math.Abs(res.StdErr-analytic) > 0.35*analytic {
		t.Errorf("bootstrap SE %v vs analytic %v", res.StdErr, analytic)
	}
}

func TestEstimate_CIOrdering(t *testing.T) {
	res, err := Estimate(rand.New(rand.NewSource(3)), sample, statistic.Mean, 1000, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	if res.NormalCI.Lower > res.NormalCI.Upper {
		t.Error("normal CI bounds out of order")
	}
	if res.PercentileCI.Lower > res.PercentileCI.Upper {
		t.Error("percentile CI bounds out of order")
	}
	if !res.NormalCI.Contains(res.Observed) {
		t.Error("normal CI must contain the point estimate")
	}

	wide, err := Estimate(rand.New(rand.NewSource(3)), sample, statistic.Mean, 1000, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	if wide.PercentileCI.Width() < res.PercentileCI.Width() {
		t.Error("99% percentile CI narrower than 95%")
	}
}

func TestEstimate_ErrorContracts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := Estimate(rng, resample.Sample{1}, statistic.Mean, 100, 0.95); !errors.Is(err, core.ErrInsufficientSampleSize) {
		t.Errorf("n=1: got %v", err)
	}
	if _, err := Estimate(rng, sample, statistic.Mean, 0, 0.95); !errors.Is(err, core.ErrInvalidTrialCount) {
		t.Errorf("trials=0: got %v", err)
	}
	if _, err := Estimate(rng, sample, statistic.Mean, 100, 1.5); !errors.Is(err, core.ErrInvalidConfidenceLevel) {
		t.Errorf("level=1.5: got %v", err)
	}
}

func TestEstimateIndexed_ComponentCIs(t *testing.T) {
	data := resample.Sample{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// Two-component statistic over the indexed rows: mean and max
	statFn := func(idx []int) ([]float64, error) {
		sum, max := 0.0, math.Inf(-1)
		for _, i := range idx {
			sum += data[i]
			if data[i] > max {
				max = data[i]
			}
		}
		return []float64{sum / float64(len(idx)), max}, nil
	}

	res, err := EstimateIndexed(rand.New(rand.NewSource(9)), len(data), statFn, 1000, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Components) != 2 {
		t.Fatalf("got %d components, want 2", len(res.Components))
	}
	if res.Components[0].Observed != 5.5 {
		t.Errorf("observed mean %v, want 5.5 (identity index set)", res.Components[0].Observed)
	}
	if res.Components[1].Observed != 10 {
		t.Errorf("observed max %v, want 10", res.Components[1].Observed)
	}
	if math.Abs(res.Components[0].Mean-5.5) > 0.3 {
		t.Errorf("bootstrap mean of mean %v too far from 5.5", res.Components[0].Mean)
	}
	// Bootstrap max is biased downward; its distribution tops out at 10
	if res.Components[1].PercentileCI.Upper > 10 {
		t.Errorf("bootstrap max exceeded data max: %v", res.Components[1].PercentileCI.Upper)
	}
}

func TestEstimateIndexed_RejectsArityDrift(t *testing.T) {
	// A statistic whose identity-index output is shorter than its resample
	// outputs must be rejected with a statistic error, not indexed blindly.
	calls := 0
	statFn := func(idx []int) ([]float64, error) {
		calls++
		if calls == 1 {
			return []float64{1}, nil
		}
		return []float64{1, 2}, nil
	}

	_, err := EstimateIndexed(rand.New(rand.NewSource(5)), 10, statFn, 50, 0.95)
	if !errors.Is(err, core.ErrStatisticFunction) {
		t.Fatalf("got %v, want statistic error for mismatched arity", err)
	}
}

func TestEstimateIndexed_PropagatesFitError(t *testing.T) {
	boom := errors.New("fit diverged")
	statFn := func(idx []int) ([]float64, error) {
		return nil, boom
	}

	_, err := EstimateIndexed(rand.New(rand.NewSource(1)), 10, statFn, 100, 0.95)
	if !errors.Is(err, core.ErrStatisticFunction) || !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped fit error", err)
	}
}
