// =============================================================================
// CSV Sorter - Sort Engine
// =============================================================================
//
// This module reorders the rows of a dataset by a single column.
//
// TEXT MODES (alpha_asc, alpha_desc):
//   Rows are compared by the lower-cased string form of the cell. Descending
//   order flips the comparison only; rows with equal keys keep their original
//   relative order in both directions.
//
// NUMERIC MODES (num_asc, num_desc):
//   The column is first coerced in place: every cell becomes a number, or
//   the missing sentinel when it does not parse. Rows are then ordered by
//   value, and missing rows always go last, whichever the direction.
//
// FAILURES:
//   Unknown columns, unknown modes, and panics raised while coercing or
//   comparing are all reported as ErrSortFailed so the caller can abort
//   without writing output.
//
// =============================================================================

package sorter

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ginjaninja78/csv-sorter/internal/types"
)

// Sentinel errors.
var (
	// ErrSortFailed wraps every failure returned by Sort.
	ErrSortFailed = errors.New("sort failed")

	// ErrUnknownColumn is returned when the sort column does not exist.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownMode is returned for values outside the four sort modes.
	ErrUnknownMode = errors.New("unknown sort mode")
)

// =============================================================================
// SORT
// =============================================================================

// keyedRow pairs a row with its precomputed sort key.
type keyedRow struct {
	row     types.Row
	text    string
	number  float64
	missing bool
}

// Sort orders the dataset's rows by column according to mode.
//
// PARAMETERS:
//   - ds: The dataset to sort. Numeric modes coerce the column in place.
//   - column: The name of the column to sort by.
//   - mode: One of the four sort modes.
//
// RETURNS:
//   - A dataset sharing ds's columns and cells with its rows reordered.
//   - An error wrapping ErrSortFailed on any failure.
func Sort(ds *types.Dataset, column string, mode Mode) (sorted *types.Dataset, err error) {
	defer func() {
		if r := recover(); r != nil {
			sorted = nil
			err = fmt.Errorf("%w: %v", ErrSortFailed, r)
		}
	}()

	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %w: %d", ErrSortFailed, ErrUnknownMode, int(mode))
	}

	idx, err := ds.ColumnIndex(column)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %q", ErrSortFailed, ErrUnknownColumn, column)
	}

	if mode.Numeric() {
		CoerceNumeric(ds, idx)
	}

	keyed := make([]keyedRow, len(ds.Rows))
	for i, row := range ds.Rows {
		cell := row[idx]
		keyed[i] = keyedRow{
			row:     row,
			text:    strings.ToLower(cell.String()),
			number:  cell.Number,
			missing: cell.Kind != types.KindNumeric,
		}
	}

	if mode.Numeric() {
		slices.SortStableFunc(keyed, numericCompare(mode.Descending()))
	} else {
		slices.SortStableFunc(keyed, textCompare(mode.Descending()))
	}

	rows := make([]types.Row, len(keyed))
	for i, k := range keyed {
		rows[i] = k.row
	}

	return &types.Dataset{
		Columns:    ds.Columns,
		Rows:       rows,
		SourceFile: ds.SourceFile,
		SheetName:  ds.SheetName,
	}, nil
}

// textCompare orders by lower-cased text.
func textCompare(desc bool) func(a, b keyedRow) int {
	return func(a, b keyedRow) int {
		c := strings.Compare(a.text, b.text)
		if desc {
			return -c
		}
		return c
	}
}

// numericCompare orders by value with missing rows last in both directions.
func numericCompare(desc bool) func(a, b keyedRow) int {
	return func(a, b keyedRow) int {
		switch {
		case a.missing && b.missing:
			return 0
		case a.missing:
			return 1
		case b.missing:
			return -1
		}
		c := cmp.Compare(a.number, b.number)
		if desc {
			return -c
		}
		return c
	}
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// CoerceNumeric replaces every cell in column idx with a numeric cell or
// the missing sentinel. It returns how many cells parsed and how many did
// not.
func CoerceNumeric(ds *types.Dataset, idx int) (parsed, missing int) {
	for _, row := range ds.Rows {
		cell := row[idx]
		if cell.Kind == types.KindNumeric {
			parsed++
			continue
		}

		if v, ok := ParseNumber(cell.Text); ok {
			row[idx] = types.NumericCell(cell.Text, v)
			parsed++
		} else {
			row[idx] = types.MissingCell(cell.Text)
			missing++
		}
	}
	return parsed, missing
}

// ParseNumber parses a cell as a float. Surrounding whitespace is ignored;
// empty text and NaN do not count as numbers. Values too large for float64
// become infinities.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}

	return v, true
}
