// =============================================================================
// CSV Sorter - Session Module
// =============================================================================
//
// This module runs one sort from start to finish. It orchestrates the
// pipeline stages and turns every failure into a console message.
//
// PIPELINE:
//   1. Ensure the input and output directories exist
//   2. Discover input files (an empty folder ends the run)
//   3. Select a file
//   4. Load it into a dataset
//   5. Select a column and a sort mode
//   6. Sort
//   7. Write the result under the derived output name
//
// Selections come from a chooser: the interactive menus, or fixed values
// given on the command line.
//
// ERROR HANDLING:
//   Each failure is reported once, ends the run, and is returned in the
//   Result. Nothing is retried except the interactive re-prompts. Panics are
//   recovered and reported as unexpected errors.
//
// =============================================================================

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/csv-sorter/internal/csvparser"
	"github.com/ginjaninja78/csv-sorter/internal/prompt"
	"github.com/ginjaninja78/csv-sorter/internal/sorter"
	"github.com/ginjaninja78/csv-sorter/internal/types"
	"github.com/ginjaninja78/csv-sorter/internal/validation"
	"github.com/ginjaninja78/csv-sorter/internal/writer"
	"github.com/ginjaninja78/csv-sorter/internal/xlsxparser"
	"github.com/ginjaninja78/csv-sorter/pkg/utils"
)

// Sentinel errors reported in Result.Err.
var (
	// ErrNoInputFiles ends a run whose input folder has nothing to sort.
	ErrNoInputFiles = errors.New("no input files found")

	// ErrUnexpected wraps a recovered panic.
	ErrUnexpected = errors.New("unexpected error")
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// InputFile is the path of the selected file, if any.
	InputFile string

	// OutputFile is the path of the written file. Empty unless Success.
	OutputFile string

	// Column and Mode are the chosen sort specification.
	Column string
	Mode   sorter.Mode

	// Success is true once the output has been written.
	Success bool

	// Err is the error that ended the run, nil on success.
	Err error

	// State is the last state reached before Done.
	State State

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// RowsLoaded is the number of data rows read.
	RowsLoaded int

	// ColumnsLoaded is the number of columns read.
	ColumnsLoaded int

	// MissingValues counts cells that failed numeric parsing.
	MissingValues int

	// ProcessingTime is the wall time of the run, prompts included.
	ProcessingTime time.Duration
}

// =============================================================================
// SESSION STRUCTURE
// =============================================================================

// Options configures loading and writing.
type Options struct {
	// Extensions lists the file extensions offered for sorting.
	Extensions []string

	// Delimiter is used for both reading and writing CSV files.
	Delimiter string
}

// Session runs sorts against one pair of input/output directories.
type Session struct {
	files  *utils.FileManager
	out    io.Writer
	logger *slog.Logger
	opts   Options
}

// New creates a Session. Console messages go to out.
func New(files *utils.FileManager, out io.Writer, logger *slog.Logger, opts Options) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		files:  files,
		out:    out,
		logger: logger,
		opts:   opts,
	}
}

// Run performs an interactive sort, asking the user through p.
func (s *Session) Run(ctx context.Context, p *prompt.Prompter) Result {
	return s.run(ctx, &interactiveChooser{prompter: p})
}

// RunSelection performs a sort with a fixed selection instead of menus.
func (s *Session) RunSelection(ctx context.Context, sel Selection) Result {
	return s.run(ctx, &fixedChooser{sel: sel})
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// run executes the pipeline. Every return path goes through finish.
func (s *Session) run(ctx context.Context, choose chooser) (res Result) {
	start := time.Now()
	res.State = StateInit

	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Err = fmt.Errorf("%w: %v", ErrUnexpected, r)
			fmt.Fprintf(s.out, "\nUnexpected error: %v\n", r)
			s.logger.Error("run panicked", "state", res.State.String(), "panic", r)
		}
		res.Stats.ProcessingTime = time.Since(start)
		s.logger.Debug("run finished",
			"state", res.State.String(),
			"success", res.Success,
			"duration", res.Stats.ProcessingTime)
	}()

	fmt.Fprintln(s.out, "=== CSV File Sorter ===")

	// =========================================================================
	// STEP 1: DIRECTORIES
	// =========================================================================

	if err := s.files.EnsureDirectories(); err != nil {
		return s.fail(res, err, fmt.Sprintf("\nUnexpected error: %v\n", err))
	}
	res.State = StateDirectoriesReady

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	files, err := s.files.DiscoverInputFiles(s.opts.Extensions)
	if err != nil {
		return s.fail(res, err, fmt.Sprintf("\nUnexpected error: %v\n", err))
	}
	res.State = StateFilesListed
	s.logger.Info("discovered input files", "dir", s.files.InputDir, "count", len(files))

	if len(files) == 0 {
		fmt.Fprintf(s.out, "No CSV files found in the '%s' directory.\n", s.files.InputDir)
		fmt.Fprintf(s.out, "Please place your CSV files in the '%s' folder and run the program again.\n", s.files.InputDir)
		res.Err = ErrNoInputFiles
		return res
	}

	// =========================================================================
	// STEP 3: SELECT FILE
	// =========================================================================

	file, err := choose.file(ctx, files)
	if err != nil {
		return s.failSelection(res, err)
	}
	res.InputFile = file.Path
	res.State = StateFileSelected

	// =========================================================================
	// STEP 4: LOAD DATASET
	// =========================================================================

	fmt.Fprintf(s.out, "\nReading %s...\n", file.Name)

	ds, err := s.load(file)
	if err != nil {
		return s.fail(res, err, fmt.Sprintf("Error reading CSV file: %v\n", err))
	}
	res.State = StateDatasetLoaded
	res.Stats.RowsLoaded = ds.RowCount()
	res.Stats.ColumnsLoaded = ds.ColumnCount()

	fmt.Fprintf(s.out, "Successfully loaded %d rows and %d columns.\n", ds.RowCount(), ds.ColumnCount())
	s.logger.Info("loaded dataset", "file", file.Path, "rows", ds.RowCount(), "columns", ds.ColumnCount())

	// =========================================================================
	// STEP 5: SELECT COLUMN AND MODE
	// =========================================================================

	choose.displayColumns(ds.Columns)
	res.State = StateColumnsDisplayed

	column, err := choose.column(ctx, ds.Columns)
	if err != nil {
		return s.failSelection(res, err)
	}
	res.Column = column
	res.State = StateColumnSelected

	mode, err := choose.mode(ctx)
	if err != nil {
		return s.failSelection(res, err)
	}
	res.Mode = mode
	res.State = StateModeSelected

	// =========================================================================
	// STEP 6: SORT
	// =========================================================================

	fmt.Fprintf(s.out, "\nSorting by column '%s'...\n", column)

	sorted, err := sorter.Sort(ds, column, mode)
	if err != nil {
		fmt.Fprintf(s.out, "Error sorting data: %v\n", err)
		return s.fail(res, err, "Failed to sort the data. Please check your data and try again.\n")
	}
	res.State = StateSorted
	if mode.Numeric() {
		res.Stats.MissingValues = countMissing(sorted, column)
	}
	s.logger.Info("sorted dataset", "column", column, "mode", mode.Token(), "missing", res.Stats.MissingValues)

	// =========================================================================
	// STEP 7: WRITE OUTPUT
	// =========================================================================

	outputPath := s.files.OutputPath(file, column, mode.Token())

	if err := writer.Write(sorted, outputPath, writer.Options{Delimiter: s.opts.Delimiter}); err != nil {
		return s.fail(res, err, fmt.Sprintf("Error saving file: %v\n", err))
	}
	res.State = StateWritten
	res.OutputFile = outputPath
	res.Success = true

	fmt.Fprintf(s.out, "\nSorted file saved as: %s\n", outputPath)
	fmt.Fprintln(s.out, "Operation completed successfully!")
	s.logger.Info("wrote output", "path", outputPath, "rows", sorted.RowCount())

	return res
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// load reads a file with the parser matching its extension and checks the
// dataset invariants.
func (s *Session) load(file types.FileDescriptor) (*types.Dataset, error) {
	var (
		ds  *types.Dataset
		err error
	)

	switch strings.ToLower(file.Ext()) {
	case ".xlsx":
		ds, err = xlsxparser.Parse(file.Path)
	default:
		ds, err = csvparser.Parse(file.Path, csvparser.Settings{Delimiter: s.opts.Delimiter})
	}
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateDataset(ds); err != nil {
		return nil, err
	}

	return ds, nil
}

// fail prints message and records err as the end of the run.
func (s *Session) fail(res Result, err error, message string) Result {
	fmt.Fprint(s.out, message)
	s.logger.Error("run failed", "state", res.State.String(), "error", err)
	res.Err = err
	return res
}

// failSelection reports why a choice could not be made.
func (s *Session) failSelection(res Result, err error) Result {
	switch {
	case errors.Is(err, context.Canceled):
		return s.fail(res, err, "\n\nProgram interrupted by user.\n")
	case errors.Is(err, prompt.ErrInputClosed):
		return s.fail(res, err, fmt.Sprintf("\nUnexpected error: %v\n", err))
	default:
		return s.fail(res, err, fmt.Sprintf("Invalid selection: %v\n", err))
	}
}

// countMissing counts missing cells in a coerced column.
func countMissing(ds *types.Dataset, column string) int {
	idx, err := ds.ColumnIndex(column)
	if err != nil {
		return 0
	}
	n := 0
	for _, row := range ds.Rows {
		if row[idx].Kind == types.KindMissing {
			n++
		}
	}
	return n
}

// =============================================================================
// CHOOSERS
// =============================================================================

// chooser supplies the file, column and mode for a run.
type chooser interface {
	file(ctx context.Context, files []types.FileDescriptor) (types.FileDescriptor, error)
	displayColumns(columns []string)
	column(ctx context.Context, columns []string) (string, error)
	mode(ctx context.Context) (sorter.Mode, error)
}

// interactiveChooser asks the user through numbered menus.
type interactiveChooser struct {
	prompter *prompt.Prompter
}

func (c *interactiveChooser) file(ctx context.Context, files []types.FileDescriptor) (types.FileDescriptor, error) {
	return c.prompter.ChooseFile(ctx, files)
}

func (c *interactiveChooser) displayColumns(columns []string) {
	c.prompter.DisplayColumns(columns)
}

func (c *interactiveChooser) column(ctx context.Context, columns []string) (string, error) {
	return c.prompter.ChooseColumn(ctx, columns)
}

func (c *interactiveChooser) mode(ctx context.Context) (sorter.Mode, error) {
	return c.prompter.ChooseMode(ctx)
}

// Selection is a sort specification given up front.
type Selection struct {
	// File is a file name in the input directory, or its 1-based position
	// in the discovered list.
	File string

	// Column is a column name, or its 1-based position.
	Column string

	// Mode is the sort mode.
	Mode sorter.Mode
}

// fixedChooser resolves a Selection against what the run discovered.
type fixedChooser struct {
	sel Selection
}

func (c *fixedChooser) file(ctx context.Context, files []types.FileDescriptor) (types.FileDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return types.FileDescriptor{}, err
	}

	name := filepath.Base(c.sel.File)
	for _, f := range files {
		if f.Name == name {
			return f, nil
		}
	}
	if n, err := validation.ParseChoice(c.sel.File, len(files)); err == nil {
		return files[n-1], nil
	}

	return types.FileDescriptor{}, fmt.Errorf("file %q not found in input directory", c.sel.File)
}

func (c *fixedChooser) displayColumns([]string) {}

func (c *fixedChooser) column(ctx context.Context, columns []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for _, col := range columns {
		if col == c.sel.Column {
			return col, nil
		}
	}
	if n, err := validation.ParseChoice(c.sel.Column, len(columns)); err == nil {
		return columns[n-1], nil
	}

	return "", fmt.Errorf("column %q not found", c.sel.Column)
}

func (c *fixedChooser) mode(ctx context.Context) (sorter.Mode, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !c.sel.Mode.Valid() {
		return 0, fmt.Errorf("%w: %d", sorter.ErrUnknownMode, int(c.sel.Mode))
	}
	return c.sel.Mode, nil
}
