package summary

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goresample/domain/core"
	"goresample/domain/resample"
)

func TestDescribe_KnownValues(t *testing.T) {
	dist := resample.Distribution{2, 4, 4, 4, 5, 5, 7, 9}

	s, err := Describe(dist)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	// sample std dev with divisor n-1: sqrt(32/7)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.StdErr, 1e-12)
	assert.Equal(t, 8, s.Trials)
}

func TestDescribe_Empty(t *testing.T) {
	_, err := Describe(resample.Distribution{})
	assert.ErrorIs(t, err, core.ErrInvalidTrialCount)
}

func TestDescribeDetail_Quartiles(t *testing.T) {
	dist := resample.Distribution{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	d, err := DescribeDetail(dist)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, d.Median, 1e-12)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 10.0, d.Max)
	assert.Less(t, d.Q1, d.Median)
	assert.Greater(t, d.Q3, d.Median)
}

func TestPercentileCI_OrderingAndWidth(t *testing.T) {
	dist := make(resample.Distribution, 1000)
	for i := range dist {
		dist[i] = float64(i)
	}

	var prevWidth float64
	for _, level := range []float64{0.5, 0.8, 0.9, 0.95, 0.99} {
		ci, err := PercentileCI(dist, level)
		require.NoError(t, err)
		assert.LessOrEqual(t, ci.Lower, ci.Upper, "level %v", level)
		assert.GreaterOrEqual(t, ci.Width(), prevWidth, "width must grow with level")
		prevWidth = ci.Width()
	}
}

func TestPercentileCI_KnownQuantiles(t *testing.T) {
	// 0..999 uniformly: the 2.5/97.5 empirical percentiles sit near 25 and 974
	dist := make(resample.Distribution, 1000)
	for i := range dist {
		dist[i] = float64(i)
	}

	ci, err := PercentileCI(dist, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 25, ci.Lower, 1.0)
	assert.InDelta(t, 974, ci.Upper, 1.0)
}

func TestPercentileCI_InvalidLevel(t *testing.T) {
	dist := resample.Distribution{1, 2, 3}
	for _, level := range []float64{0, 1, -0.5, 1.5} {
		_, err := PercentileCI(dist, level)
		assert.ErrorIs(t, err, core.ErrInvalidConfidenceLevel, "level %v", level)
	}
}

func TestCriticalValue_TAndZ(t *testing.T) {
	z, err := CriticalValue(0.95, resample.CriticalZ, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.96, z, 0.005)

	t7, err := CriticalValue(0.95, resample.CriticalT, 7)
	require.NoError(t, err)
	assert.InDelta(t, 2.3646, t7, 0.005)

	// t approaches z as df grows
	t1000, err := CriticalValue(0.95, resample.CriticalT, 1000)
	require.NoError(t, err)
	assert.InDelta(t, z, t1000, 0.01)
	assert.Greater(t, t7, z)
}

func TestNormalCI_Symmetric(t *testing.T) {
	ci, err := NormalCI(10, 2, 0.95, resample.CriticalZ, 0)
	require.NoError(t, err)
	assert.InDelta(t, 10, (ci.Lower+ci.Upper)/2, 1e-12)
	assert.True(t, ci.Contains(10))
	assert.InDelta(t, 2*1.96*2, ci.Width(), 0.05)
}

func TestNormalCI_InvalidInputs(t *testing.T) {
	_, err := NormalCI(0, 1, 1.2, resample.CriticalZ, 0)
	assert.ErrorIs(t, err, core.ErrInvalidConfidenceLevel)

	_, err = CriticalValue(0.95, resample.CriticalT, 0)
	assert.ErrorIs(t, err, core.ErrInsufficientSampleSize)

	_, err = CriticalValue(0.95, resample.CriticalValueDist("chi"), 3)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrInvalidConfidenceLevel))
}
