// =============================================================================
// CSV Sorter - CSV Parser Module
// =============================================================================
//
// This module is responsible for loading a CSV file into a dataset. It
// handles:
//   - Different delimiters (comma, pipe, tab, semicolon, any single rune)
//   - A single header row defining the column names
//   - Quoted fields, including lazily quoted ones
//   - A UTF-8 byte order mark at the start of the file
//
// HEADER RULES:
//   - Empty header cells are named "Unnamed: <index>" (0-based)
//   - Repeated names get ".1", ".2", ... suffixes so names stay unique
//
// ROW RULES:
//   - Blank lines are skipped
//   - Rows shorter than the header are padded with empty cells
//   - Rows longer than the header are a load failure
//   - Cell values are kept verbatim (no trimming)
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/csv-sorter/internal/types"
)

// ErrEmptyFile is returned when a file has no header row.
var ErrEmptyFile = errors.New("file is empty")

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// =============================================================================
// PARSER SETTINGS
// =============================================================================

// Settings contains settings for parsing CSV files.
type Settings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string
}

// DefaultSettings returns comma-separated settings.
func DefaultSettings() Settings {
	return Settings{Delimiter: ","}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed dataset.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Dataset containing the header and rows.
//   - An error if the file cannot be opened or is malformed.
func Parse(filePath string, settings Settings) (*types.Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	ds, err := Read(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	ds.SourceFile = filePath

	return ds, nil
}

// Read parses CSV content from any reader.
func Read(r io.Reader, settings Settings) (*types.Dataset, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := CleanHeaders(header)

	var records [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if len(record) > len(columns) {
			line, _ := csvReader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(columns), len(record))
		}

		records = append(records, record)
	}

	return types.NewDataset(columns, records), nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) {
	reader.Comma = Delimiter(settings.Delimiter)

	// Row width is checked against the header by Read.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true
}

// Delimiter resolves a configured delimiter to the rune used by encoding/csv.
// Handle special cases for common delimiters.
func Delimiter(setting string) rune {
	switch setting {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(setting) > 0 {
			return []rune(setting)[0]
		}
		return ','
	}
}

// CleanHeaders normalizes header values so every column has a unique name.
//
// CLEANING OPERATIONS:
//   - Strip a leading byte order mark
//   - Name empty headers "Unnamed: <index>"
//   - Suffix repeated names with ".1", ".2", ...
func CleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	used := make(map[string]bool, len(headers))
	suffix := make(map[string]int)

	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, utf8BOM)
		}

		if strings.TrimSpace(header) == "" {
			header = fmt.Sprintf("Unnamed: %d", i)
		}

		name := header
		if used[name] {
			n := suffix[header]
			for {
				n++
				name = fmt.Sprintf("%s.%d", header, n)
				if !used[name] {
					break
				}
			}
			suffix[header] = n
		}
		used[name] = true

		cleaned[i] = name
	}

	return cleaned
}
