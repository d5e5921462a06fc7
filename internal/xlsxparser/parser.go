// =============================================================================
// CSV Sorter - XLSX Parser
// =============================================================================
//
// This module loads a workbook sheet into a dataset so spreadsheets can be
// sorted the same way as CSV files. It is used when ".xlsx" is listed in the
// configured extensions.
//
// SHEET LAYOUT (Expected):
//
//   | Column A | Column B | Column C |
//   |----------|----------|----------|
//   | Name     | Score    | Team     |   <- row 1: header
//   | bob      | 10       | red      |   <- rows 2..n: data
//
// Cells are read as their formatted string values. The first sheet is used
// unless a sheet name is given.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/csv-sorter/internal/csvparser"
	"github.com/ginjaninja78/csv-sorter/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the first sheet of a workbook.
func Parse(path string) (*types.Dataset, error) {
	return ParseSheet(path, "")
}

// ParseSheet reads a named sheet of a workbook into a dataset.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - sheetName: The sheet to read. Empty selects the first sheet.
//
// RETURNS:
//   - A pointer to the Dataset.
//   - An error if the workbook cannot be opened or the sheet is malformed.
func ParseSheet(path, sheetName string) (*types.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	ds, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}
	ds.SourceFile = path
	ds.SheetName = sheetName

	return ds, nil
}

// fromRows converts raw sheet rows into a dataset.
// The first non-empty row is the header.
func fromRows(rows [][]string) (*types.Dataset, error) {
	var header []string
	var records [][]string

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		if header == nil {
			header = csvparser.CleanHeaders(row)
			continue
		}

		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", i+1, len(header), len(row))
		}
		records = append(records, row)
	}

	if header == nil {
		return nil, csvparser.ErrEmptyFile
	}

	return types.NewDataset(header, records), nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
