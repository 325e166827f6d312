package dataset

import (
	"goresample/domain/core"
	"goresample/domain/resample"
)

// Dataset is the canonical data object for resampling over observed data:
// a set of named numeric columns of equal length. Column order is fixed at
// construction so index-based statistics see a stable layout.
type Dataset struct {
	ID      core.DatasetID
	Name    string
	Keys    []core.ColumnKey
	Columns map[core.ColumnKey]resample.Sample

	CreatedAt core.Timestamp
}

// New builds a dataset from columns in the given key order.
// All columns must be non-empty and the same length.
func New(name string, keys []core.ColumnKey, columns map[core.ColumnKey]resample.Sample) (*Dataset, error) {
	if len(keys) == 0 {
		return nil, core.ErrEmptyDataset
	}
	rows := -1
	for _, key := range keys {
		col, ok := columns[key]
		if !ok {
			return nil, core.NewValidationError(string(key), "declared key has no column data")
		}
		if len(col) == 0 {
			return nil, core.ErrEmptyDataset
		}
		if rows >= 0 && len(col) != rows {
			return nil, core.NewValidationError(string(key), "column length differs from dataset row count")
		}
		rows = len(col)
	}
	return &Dataset{
		ID:        core.DatasetID(core.NewID()),
		Name:      name,
		Keys:      keys,
		Columns:   columns,
		CreatedAt: core.Now(),
	}, nil
}

// FromColumn wraps a single unnamed sequence as a one-column dataset
func FromColumn(name string, values resample.Sample) (*Dataset, error) {
	key := core.ColumnKey(name)
	return New(name, []core.ColumnKey{key}, map[core.ColumnKey]resample.Sample{key: values})
}

// Rows returns the number of observations per column
func (d *Dataset) Rows() int {
	if len(d.Keys) == 0 {
		return 0
	}
	return len(d.Columns[d.Keys[0]])
}

// ColumnCount returns the number of columns
func (d *Dataset) ColumnCount() int {
	return len(d.Keys)
}

// Column returns the named column data
func (d *Dataset) Column(key core.ColumnKey) (resample.Sample, bool) {
	col, ok := d.Columns[key]
	return col, ok
}

// Select materializes the rows named by idx for a single column.
// idx entries may repeat (bootstrap resamples) and must be in [0, Rows).
func (d *Dataset) Select(key core.ColumnKey, idx []int) (resample.Sample, error) {
	col, ok := d.Columns[key]
	if !ok {
		return nil, core.ErrColumnNotFound
	}
	out := make(resample.Sample, len(idx))
	for i, row := range idx {
		if row < 0 || row >= len(col) {
			return nil, core.NewValidationError(string(key), "row index out of range")
		}
		out[i] = col[row]
	}
	return out, nil
}
