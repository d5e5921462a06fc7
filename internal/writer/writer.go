// =============================================================================
// CSV Sorter - Output Writer Module
// =============================================================================
//
// This module persists a sorted dataset to the output directory. The output
// format follows the file extension:
//   - ".csv"  : delimited text, header row first
//   - ".xlsx" : a single-sheet workbook, header row first
//
// OUTPUT RULES:
//   - No synthetic row index column is written
//   - Numeric cells use their shortest round-trip form
//   - Missing cells are written as empty fields
//
// REPLACEMENT:
//   The content is written to a uniquely named temporary file next to the
//   target and renamed over it, so an existing file with the same name is
//   replaced silently and a failed write never leaves a truncated target.
//
// =============================================================================

package writer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/csv-sorter/internal/csvparser"
	"github.com/ginjaninja78/csv-sorter/internal/types"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet name used when a dataset has none.
const defaultSheet = "Sheet1"

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options contains options for output generation.
type Options struct {
	// Delimiter separates CSV fields. Same aliases as the parser.
	// Default: ","
	Delimiter string
}

// DefaultOptions returns comma-separated output options.
func DefaultOptions() Options {
	return Options{Delimiter: ","}
}

// =============================================================================
// WRITE FUNCTIONS
// =============================================================================

// Write persists the dataset at outputPath, replacing any existing file.
//
// PARAMETERS:
//   - ds: The dataset to write.
//   - outputPath: The destination path. Its extension selects the format.
//   - options: The output options.
//
// RETURNS:
//   - An error if the file cannot be created, written or renamed.
func Write(ds *types.Dataset, outputPath string, options Options) error {
	var encode func(io.Writer) error

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".xlsx":
		encode = func(w io.Writer) error { return WriteXLSX(w, ds) }
	default:
		encode = func(w io.Writer) error { return WriteCSV(w, ds, options) }
	}

	return replaceFile(outputPath, encode)
}

// WriteCSV encodes the dataset as delimited text.
func WriteCSV(w io.Writer, ds *types.Dataset, options Options) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = csvparser.Delimiter(options.Delimiter)

	if err := csvWriter.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := csvWriter.WriteAll(ds.Records()); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return nil
}

// WriteXLSX encodes the dataset as a workbook.
// Numeric cells are stored as numbers so spreadsheet tools keep their type.
func WriteXLSX(w io.Writer, ds *types.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := defaultSheet
	if ds.SheetName != "" && ds.SheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, ds.SheetName); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
		sheet = ds.SheetName
	}

	header := make([]interface{}, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for r, row := range ds.Rows {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			switch cell.Kind {
			case types.KindNumeric:
				values[i] = cell.Number
			case types.KindMissing:
				values[i] = nil
			default:
				values[i] = cell.Text
			}
		}
		if err := setRow(f, sheet, r+2, values); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}

	return nil
}

// setRow writes one row starting at column A.
func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// replaceFile writes through encode into a temporary file and renames it to
// path. The temporary file is removed on any failure.
func replaceFile(path string, encode func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err = encode(buf); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}

	return nil
}
