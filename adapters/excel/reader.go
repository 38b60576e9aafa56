package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"fairlens/domain/table"
	"fairlens/internal/errors"
	"fairlens/ports"
)

// DataReader loads Excel and CSV files into the in-memory dataset model
type DataReader struct {
	sheet string
}

var _ ports.DatasetReaderPort = (*DataReader)(nil)

// NewDataReader creates a reader. Excel files are read from the given sheet;
// an empty sheet name means the workbook's first sheet.
func NewDataReader(sheet string) *DataReader {
	return &DataReader{sheet: sheet}
}

// Read loads the file at path into a dataset with an inferred schema
func (r *DataReader) Read(path string) (*table.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("dataset file %s", path))
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = r.readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = r.readExcel(path)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", filepath.Ext(path)))
	}
	if err != nil {
		return nil, errors.ReadError(path, err)
	}

	if len(rows) < 2 {
		return nil, errors.InvalidInput("dataset must have a header row and at least one data row")
	}
	return buildDataset(rows)
}

func (r *DataReader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func (r *DataReader) readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func buildDataset(rows [][]string) (*table.Dataset, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("blank header in column %d", i+1))
		}
	}

	records := make([]table.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(table.Record, len(headers))
		for i, header := range headers {
			// Excel rows can be ragged: trailing blank cells are omitted.
			if i < len(row) {
				rec[header] = strings.TrimSpace(row[i])
			} else {
				rec[header] = ""
			}
		}
		records = append(records, rec)
	}

	return table.New(headers, records), nil
}
