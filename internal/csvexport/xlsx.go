package csvexport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Marksheet"

// NewWorkbook builds an XLSX workbook with the row's header and values on a
// single sheet, for consumers that prefer Excel over raw CSV.
func NewWorkbook(row TabularRow) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for i, c := range row {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("resolving column %d: %w", i, err)
		}
		if err := f.SetCellValue(sheetName, col+"1", c.Name); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, col+"2", c.Value); err != nil {
			return nil, fmt.Errorf("writing value cell: %w", err)
		}
	}

	return f, nil
}

// WriteXLSX renders the row as XLSX bytes.
func WriteXLSX(row TabularRow) ([]byte, error) {
	f, err := NewWorkbook(row)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
