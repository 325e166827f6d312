package jackknife

import (
	"errors"
	"math"
	"testing"

	"goresample/domain/core"
	"goresample/domain/resample"
	"goresample/internal/statistic"
)

var knownSample = resample.Sample{2, 4, 4, 4, 5, 5, 7, 9}

func TestEstimate_MeanIsUnbiased(t *testing.T) {
	res, err := Estimate(knownSample, statistic.Mean, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	// For the mean, pseudo-values reduce to the observations themselves,
	// so the jackknife estimate equals the sample mean exactly.
	if math.Abs(res.Estimate-5.0) > 1e-12 {
		t.Errorf("jackknife mean = %v, want 5.0", res.Estimate)
	}
	for i, pv := range res.PseudoValues {
		if math.Abs(pv-knownSample[i]) > 1e-9 {
			t.Errorf("pseudo-value[%d] = %v, want observation %v", i, pv, knownSample[i])
		}
	}

	// SE = s/sqrt(n) with s^2 = 32/7
	wantSE := math.Sqrt(32.0 / 7.0 / 8.0)
	if math.Abs(res.StdErr-wantSE) > 1e-9 {
		t.Errorf("jackknife SE = %v, want %v", res.StdErr, wantSE)
	}
}

func TestEstimate_CIUsesTCritical(t *testing.T) {
	res, err := Estimate(knownSample, statistic.Mean, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	// t_{0.975, 7} = 2.3646
	wantMargin := 2.3646 * res.StdErr
	if math.Abs((res.CI.Upper-res.Estimate)-wantMargin) > 1e-3 {
		t.Errorf("CI margin %v, want %v", res.CI.Upper-res.Estimate, wantMargin)
	}
	if res.CI.Lower > res.Estimate || res.CI.Upper < res.Estimate {
		t.Error("estimate outside its own CI")
	}
	if res.CI.Level != 0.95 {
		t.Errorf("CI level %v, want 0.95", res.CI.Level)
	}
}

func TestEstimate_VarianceRoundTrip(t *testing.T) {
	res, err := Estimate(knownSample, statistic.Variance, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	// The unbiased sample variance is a U-statistic, so the pseudo-value
	// mean reproduces it exactly.
	want := 32.0 / 7.0
	if math.Abs(res.Estimate-want) > 1e-9 {
		t.Errorf("jackknife variance = %v, want %v", res.Estimate, want)
	}
}

func TestEstimate_NonlinearStatisticShifts(t *testing.T) {
	skewed := resample.Sample{1, 1, 1, 2, 2, 3, 5, 9, 15, 30}

	full, err := statistic.Skewness(skewed)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Estimate(skewed, statistic.Skewness, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	// Skewness is nonlinear, so the bias correction must move the estimate
	if math.Abs(res.Estimate-full) < 1e-9 {
		t.Errorf("jackknife skewness %v identical to plug-in %v, expected bias correction", res.Estimate, full)
	}
}

func TestEstimate_InsufficientSample(t *testing.T) {
	_, err := Estimate(resample.Sample{5.0}, statistic.Mean, 0.95)
	if !errors.Is(err, core.ErrInsufficientSampleSize) {
		t.Errorf("n=1: got %v, want ErrInsufficientSampleSize", err)
	}
}

func TestEstimate_PropagatesStatisticFailure(t *testing.T) {
	// Variance needs n >= 2 even after removing one element, so n=2 must
	// surface the statistic's own failure instead of NaN.
	_, err := Estimate(resample.Sample{1, 2}, statistic.Variance, 0.95)
	if !errors.Is(err, core.ErrStatisticFunction) {
		t.Fatalf("got %v, want ErrStatisticFunction", err)
	}
	if !errors.Is(err, core.ErrInsufficientSampleSize) {
		t.Errorf("underlying cause lost: %v", err)
	}
}

func TestEstimate_InvalidLevel(t *testing.T) {
	_, err := Estimate(knownSample, statistic.Mean, 1.0)
	if !errors.Is(err, core.ErrInvalidConfidenceLevel) {
		t.Errorf("level=1: got %v, want ErrInvalidConfidenceLevel", err)
	}
}

func TestEstimate_PartialEstimatesShape(t *testing.T) {
	res, err := Estimate(knownSample, statistic.Mean, 0.90)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.PartialEstimates) != knownSample.Len() || len(res.PseudoValues) != knownSample.Len() {
		t.Errorf("got %d partials / %d pseudo-values, want %d each",
			len(res.PartialEstimates), len(res.PseudoValues), knownSample.Len())
	}
	if res.FullEstimate != 5.0 {
		t.Errorf("full estimate %v, want 5.0", res.FullEstimate)
	}
}
