// =============================================================================
// CSV Sorter - Validation Engine
// =============================================================================
//
// This module validates the two kinds of input the sorter receives:
//   - Menu choices typed by the user (file, column and sort type numbers)
//   - Loaded datasets, before they reach the sort engine
//
// ERROR HANDLING:
//   - Menu choice errors are recoverable: the prompt prints the message and
//     asks again
//   - Dataset errors are collected, not returned on the first problem, so a
//     load failure reports everything wrong with the file at once
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/csv-sorter/internal/types"
)

// Sentinel errors for menu choices.
var (
	// ErrNotANumber is returned when the input is not an integer.
	ErrNotANumber = errors.New("not a number")

	// ErrOutOfRange is returned when the integer is outside the menu.
	ErrOutOfRange = errors.New("choice out of range")
)

// =============================================================================
// MENU CHOICES
// =============================================================================

// ChoiceError describes a rejected menu choice.
type ChoiceError struct {
	// Input is the raw text typed by the user.
	Input string

	// Max is the highest valid choice; the lowest is always 1.
	Max int

	// Err is ErrNotANumber or ErrOutOfRange.
	Err error
}

// Error implements the error interface.
func (e *ChoiceError) Error() string {
	if errors.Is(e.Err, ErrNotANumber) {
		return fmt.Sprintf("%q is not a number", e.Input)
	}
	return fmt.Sprintf("%q is not between 1 and %d", e.Input, e.Max)
}

// Unwrap exposes the sentinel error to errors.Is.
func (e *ChoiceError) Unwrap() error {
	return e.Err
}

// ParseChoice converts a typed menu choice into a 1-based number.
//
// PARAMETERS:
//   - input: The raw line typed by the user. Surrounding whitespace is ignored.
//   - max: The number of menu entries.
//
// RETURNS:
//   - The choice in 1..max.
//   - A *ChoiceError wrapping ErrNotANumber or ErrOutOfRange otherwise.
func ParseChoice(input string, max int) (int, error) {
	trimmed := strings.TrimSpace(input)

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ChoiceError{Input: trimmed, Max: max, Err: ErrNotANumber}
	}

	if n < 1 || n > max {
		return 0, &ChoiceError{Input: trimmed, Max: max, Err: ErrOutOfRange}
	}

	return n, nil
}

// =============================================================================
// DATASET VALIDATION
// =============================================================================

// DatasetError collects every invariant a dataset violates.
type DatasetError struct {
	Problems []string
}

// Error implements the error interface.
func (e *DatasetError) Error() string {
	return fmt.Sprintf("invalid dataset: %s", strings.Join(e.Problems, "; "))
}

// ValidateDataset checks the invariants the sorter relies on:
//   - at least one column
//   - unique column names
//   - every row has exactly one cell per column
func ValidateDataset(ds *types.Dataset) error {
	if ds == nil {
		return &DatasetError{Problems: []string{"no dataset"}}
	}

	var problems []string

	if len(ds.Columns) == 0 {
		problems = append(problems, "no columns")
	}

	seen := make(map[string]bool, len(ds.Columns))
	for _, col := range ds.Columns {
		if seen[col] {
			problems = append(problems, fmt.Sprintf("duplicate column %q", col))
		}
		seen[col] = true
	}

	for i, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			problems = append(problems,
				fmt.Sprintf("row %d has %d cells, expected %d", i+1, len(row), len(ds.Columns)))
		}
	}

	if len(problems) > 0 {
		return &DatasetError{Problems: problems}
	}

	return nil
}
