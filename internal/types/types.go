// =============================================================================
// CSV Sorter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (producing datasets)
//   - sorter (reordering and coercing datasets)
//   - writer (persisting datasets)
//   - session and pkg/utils (file descriptors)
//
// =============================================================================

package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// CELL VALUES
// =============================================================================

// CellKind tags the interpretation of a cell value.
type CellKind int

const (
	// KindText is a cell holding the text exactly as loaded.
	KindText CellKind = iota

	// KindNumeric is a cell whose text was parsed as a number.
	KindNumeric

	// KindMissing is a cell that failed numeric parsing.
	KindMissing
)

// Cell is a single tagged value within a row.
type Cell struct {
	// Kind tells which of the fields below is meaningful.
	Kind CellKind

	// Text is the value as read from the source file.
	// It is kept after numeric coercion for diagnostics.
	Text string

	// Number is the parsed value when Kind is KindNumeric.
	Number float64
}

// TextCell returns a cell holding raw text.
func TextCell(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// NumericCell returns a cell holding a parsed number.
func NumericCell(raw string, v float64) Cell {
	return Cell{Kind: KindNumeric, Text: raw, Number: v}
}

// MissingCell returns the missing sentinel, remembering the raw text.
func MissingCell(raw string) Cell {
	return Cell{Kind: KindMissing, Text: raw}
}

// String returns the cell's string form.
//
// Numeric cells use the shortest representation that round-trips, and
// missing cells render as an empty string, which is also how they are
// written to output files.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumeric:
		if math.IsInf(c.Number, 1) {
			return "inf"
		}
		if math.IsInf(c.Number, -1) {
			return "-inf"
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindMissing:
		return ""
	default:
		return c.Text
	}
}

// Row is an ordered set of cells aligned with Dataset.Columns.
type Row []Cell

// =============================================================================
// DATASET
// =============================================================================

// Dataset is an in-memory table of rows with named columns.
//
// Every row has exactly len(Columns) cells.
type Dataset struct {
	// Columns holds the unique column names in header order.
	Columns []string

	// Rows holds the data rows in their current order.
	Rows []Row

	// SourceFile is the path the dataset was loaded from.
	SourceFile string

	// SheetName is set for datasets loaded from a workbook.
	SheetName string
}

// NewDataset builds a dataset from a header and raw string records.
// Records shorter than the header are padded with empty text cells.
func NewDataset(columns []string, records [][]string) *Dataset {
	ds := &Dataset{
		Columns: append([]string(nil), columns...),
		Rows:    make([]Row, 0, len(records)),
	}

	for _, record := range records {
		row := make(Row, len(columns))
		for i := range columns {
			if i < len(record) {
				row[i] = TextCell(record[i])
			} else {
				row[i] = TextCell("")
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds
}

// ColumnIndex returns the position of a column by name.
func (d *Dataset) ColumnIndex(name string) (int, error) {
	for i, col := range d.Columns {
		if col == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found", name)
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// Records renders every row as strings, header excluded.
func (d *Dataset) Records() [][]string {
	records := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cell.String()
		}
		records[i] = record
	}
	return records
}

// Column returns the string form of every value in a column.
func (d *Dataset) Column(name string) ([]string, error) {
	idx, err := d.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx].String()
	}
	return values, nil
}

// =============================================================================
// FILE DESCRIPTOR
// =============================================================================

// FileDescriptor references an input file discovered during a run.
type FileDescriptor struct {
	// Name is the base file name, e.g. "data.csv".
	Name string

	// Path is the full path to the file.
	Path string
}

// Ext returns the file extension including the dot, e.g. ".csv".
func (f FileDescriptor) Ext() string {
	idx := strings.LastIndex(f.Name, ".")
	if idx <= 0 {
		return ""
	}
	return f.Name[idx:]
}

// Stem returns the file name without its extension.
func (f FileDescriptor) Stem() string {
	return strings.TrimSuffix(f.Name, f.Ext())
}
