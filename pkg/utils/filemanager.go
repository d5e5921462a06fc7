// =============================================================================
// CSV Sorter - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a sort run:
//   - Directory management (input and output folders)
//   - File discovery in the input folder
//   - Output file naming
//
// NAMING:
//   Sorted files are named "{stem}_sorted_{column}_{mode}{ext}", for example
//   "data_sorted_Score_num_asc.csv". The column name is used verbatim.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/csv-sorter/internal/types"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the sorter.
type FileManager struct {
	// InputDir is the directory where input files are placed.
	InputDir string

	// OutputDir is the directory where sorted files are placed.
	OutputDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir string) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the input and output directories if they don't
// exist. Existing directories are left untouched.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the files in the input directory whose extension
// is one of extensions.
//
// PARAMETERS:
//   - extensions: Extensions to match, with the leading dot (e.g. ".csv").
//                 Matching ignores case. If empty, defaults to ".csv".
//
// RETURNS:
//   - The matching files in directory-listing order (sorted by name).
//     An empty slice is not an error.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles(extensions []string) ([]types.FileDescriptor, error) {
	if len(extensions) == 0 {
		extensions = []string{".csv"}
	}

	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	files := []types.FileDescriptor{}
	for _, entry := range entries {
		// Skip directories.
		if entry.IsDir() {
			continue
		}

		if !hasExtension(entry.Name(), extensions) {
			continue
		}

		files = append(files, types.FileDescriptor{
			Name: entry.Name(),
			Path: filepath.Join(fm.InputDir, entry.Name()),
		})
	}

	return files, nil
}

// hasExtension reports whether name ends in one of extensions.
func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || ext == strings.ToLower(name) {
		return false
	}
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// OutputFileName derives the sorted file's name.
//
// PARAMETERS:
//   - file: The input file.
//   - column: The column the data was sorted by.
//   - modeToken: The sort mode token (alpha_asc, alpha_desc, num_asc, num_desc).
//
// EXAMPLE:
//   file: data.csv, column: Score, modeToken: num_asc
//   output: "data_sorted_Score_num_asc.csv"
func OutputFileName(file types.FileDescriptor, column, modeToken string) string {
	return fmt.Sprintf("%s_sorted_%s_%s%s", file.Stem(), column, modeToken, file.Ext())
}

// OutputPath joins the derived output name onto the output directory.
func (fm *FileManager) OutputPath(file types.FileDescriptor, column, modeToken string) string {
	return filepath.Join(fm.OutputDir, OutputFileName(file, column, modeToken))
}
