package dataset

import (
	"errors"
	"testing"

	"goresample/domain/core"
	"goresample/domain/resample"
)

func TestNewValidation(t *testing.T) {
	cols := map[core.ColumnKey]resample.Sample{
		"x": {1, 2, 3},
		"y": {4, 5, 6},
	}

	d, err := New("test", []core.ColumnKey{"x", "y"}, cols)
	if err != nil {
		t.Fatal(err)
	}
	if d.Rows() != 3 || d.ColumnCount() != 2 {
		t.Errorf("rows=%d cols=%d, want 3 and 2", d.Rows(), d.ColumnCount())
	}
	if d.ID == "" {
		t.Error("dataset ID not assigned")
	}

	if _, err := New("empty", nil, nil); !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("no keys: got %v", err)
	}
	if _, err := New("missing", []core.ColumnKey{"x", "z"}, cols); err == nil {
		t.Error("declared key without column data accepted")
	}
	if _, err := New("ragged", []core.ColumnKey{"x", "y"}, map[core.ColumnKey]resample.Sample{
		"x": {1, 2, 3},
		"y": {4, 5},
	}); err == nil {
		t.Error("ragged columns accepted")
	}
	if _, err := New("hollow", []core.ColumnKey{"x"}, map[core.ColumnKey]resample.Sample{
		"x": {},
	}); !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("empty column: got %v", err)
	}
}

func TestFromColumn(t *testing.T) {
	d, err := FromColumn("heights", resample.Sample{170, 180, 175})
	if err != nil {
		t.Fatal(err)
	}
	col, ok := d.Column("heights")
	if !ok || len(col) != 3 {
		t.Fatalf("column lookup failed: ok=%v len=%d", ok, len(col))
	}
}

func TestSelect(t *testing.T) {
	d, err := FromColumn("v", resample.Sample{10, 20, 30})
	if err != nil {
		t.Fatal(err)
	}

	out, err := d.Select("v", []int{2, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	want := resample.Sample{30, 10, 10}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Select = %v, want %v", out, want)
		}
	}

	if _, err := d.Select("w", []int{0}); !errors.Is(err, core.ErrColumnNotFound) {
		t.Errorf("unknown column: got %v", err)
	}
	if _, err := d.Select("v", []int{3}); err == nil {
		t.Error("out-of-range index accepted")
	}
	if _, err := d.Select("v", []int{-1}); err == nil {
		t.Error("negative index accepted")
	}
}
