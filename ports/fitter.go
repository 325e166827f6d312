package ports

import (
	"context"

	"goresample/domain/core"
	"goresample/domain/dataset"
	"goresample/domain/resample"
)

// ModelFitterPort is an external model-fitting routine treated as an opaque
// pure function by the resampling core. Bootstrap statistics call Fit with
// the resampled row indices so the fitter can refit on the indexed subset
// without the caller materializing a resampled table.
type ModelFitterPort interface {
	// Fit fits response ~ predictors on the rows named by idx.
	// A nil idx means the full dataset.
	Fit(ctx context.Context, data *dataset.Dataset, response core.ColumnKey, predictors []core.ColumnKey, idx []int) (resample.FitResult, error)
}
