package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"goresample/domain/core"
	"goresample/domain/dataset"
	"goresample/domain/resample"
	"goresample/internal/errors"
)

// DataReader loads named numeric columns from Excel or CSV files into a
// dataset the resampling estimators can draw from. Non-numeric cells are
// rejected rather than coerced; the core only works on numeric samples.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadDataset reads the file into a column-oriented dataset
func (r *DataReader) ReadDataset() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DatasetError(fmt.Sprintf("%s file not found: %s", r.fileType, r.filePath), err)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.DatasetError(fmt.Sprintf("unsupported file type: %s", r.fileType), nil)
	}
	if err != nil {
		return nil, err
	}

	return r.buildDataset(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DatasetError("failed to open Excel file", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.DatasetError(fmt.Sprintf("failed to read sheet %s", sheet), err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DatasetError("failed to open CSV file", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.DatasetError("failed to parse CSV file", err)
	}
	return rows, nil
}

// buildDataset converts header+rows into named numeric columns
func (r *DataReader) buildDataset(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.DatasetError("file must have a header row and at least one data row", nil)
	}

	header := rows[0]
	keys := make([]core.ColumnKey, len(header))
	columns := make(map[core.ColumnKey]resample.Sample, len(header))
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		keys[j] = core.ColumnKey(name)
		columns[keys[j]] = make(resample.Sample, 0, len(rows)-1)
	}

	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, errors.DatasetError(fmt.Sprintf("row %d has %d cells, expected %d", i+2, len(row), len(header)), nil)
		}
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.DatasetError(fmt.Sprintf("non-numeric value %q in column %s, row %d", cell, keys[j], i+2), err)
			}
			columns[keys[j]] = append(columns[keys[j]], v)
		}
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return dataset.New(name, keys, columns)
}
