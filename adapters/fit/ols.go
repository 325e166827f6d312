package fit

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"goresample/domain/core"
	"goresample/domain/dataset"
	"goresample/domain/resample"
	"goresample/internal/errors"
)

// OLSFitter implements ports.ModelFitterPort with ordinary least squares.
// It is the external model-fitting collaborator for index-based bootstrap
// statistics: the bootstrap hands it resampled row indices and reads the
// refitted coefficients off the explicit result struct.
type OLSFitter struct{}

// NewOLSFitter creates an OLS fitter
func NewOLSFitter() *OLSFitter {
	return &OLSFitter{}
}

// Fit regresses response on an intercept plus the predictor columns, using
// only the rows named by idx (nil idx = all rows). The coefficient order is
// intercept first, then predictors in the given order.
func (f *OLSFitter) Fit(ctx context.Context, data *dataset.Dataset, response core.ColumnKey, predictors []core.ColumnKey, idx []int) (resample.FitResult, error) {
	if len(predictors) == 0 {
		return resample.FitResult{}, errors.InvalidInput("at least one predictor column is required")
	}

	if idx == nil {
		idx = make([]int, data.Rows())
		for i := range idx {
			idx[i] = i
		}
	}

	y, err := data.Select(response, idx)
	if err != nil {
		return resample.FitResult{}, err
	}

	rows := len(idx)
	cols := len(predictors) + 1
	if rows < cols {
		return resample.FitResult{}, core.NewInsufficientSampleSizeError(rows, cols)
	}

	x := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		x.Set(i, 0, 1) // intercept
	}
	for j, key := range predictors {
		col, err := data.Select(key, idx)
		if err != nil {
			return resample.FitResult{}, err
		}
		for i := 0; i < rows; i++ {
			x.Set(i, j+1, col[i])
		}
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, mat.NewVecDense(rows, y)); err != nil {
		// Singular design matrix (e.g. a degenerate bootstrap resample)
		return resample.FitResult{Converged: false}, core.NewStatisticError(0, err)
	}

	coeffs := make([]resample.FitCoefficient, cols)
	coeffs[0] = resample.FitCoefficient{Name: "(intercept)", Value: beta.At(0, 0)}
	for j, key := range predictors {
		coeffs[j+1] = resample.FitCoefficient{Name: string(key), Value: beta.At(j+1, 0)}
	}

	return resample.FitResult{Coefficients: coeffs, Converged: true}, nil
}
