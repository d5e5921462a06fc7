// =============================================================================
// CSV Sorter - Sort Command
// =============================================================================
//
// This file defines the 'sort' command, which runs the sort pipeline without
// menus. The file, column and sort type come from flags.
//
// COMMAND USAGE:
//   csv-sorter sort --file data.csv --column Score --mode num_asc
//
// FLAGS:
//   --file    : File name in the input directory, or its number in the listing
//   --column  : Column name, or its 1-based number
//   --mode    : alpha_asc, alpha_desc, num_asc, num_desc, or 1-4
//
// Unlike the interactive command, a failed sort exits with a non-zero status
// and there is no final "Press Enter" prompt.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/csv-sorter/internal/session"
	"github.com/ginjaninja78/csv-sorter/internal/sorter"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// sortFile names the input file.
var sortFile string

// sortColumn names the column to sort by.
var sortColumn string

// sortMode names the sort type.
var sortMode string

// =============================================================================
// SORT COMMAND DEFINITION
// =============================================================================

// sortCmd represents the 'sort' command.
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort one file without interactive menus",
	Long: `The sort command runs the same pipeline as the interactive menus, taking
the file, column and sort type from flags. Use it from scripts.

The output is written to the output directory as
{name}_sorted_{column}_{mode}{ext}. An existing file with that name is
replaced.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runSort(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the sort command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(sortCmd)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	sortCmd.Flags().StringVar(
		&sortFile,
		"file",
		"",
		"File name in the input directory, or its number in the listing",
	)

	sortCmd.Flags().StringVar(
		&sortColumn,
		"column",
		"",
		"Column name, or its 1-based number",
	)

	sortCmd.Flags().StringVar(
		&sortMode,
		"mode",
		"",
		"Sort type: alpha_asc, alpha_desc, num_asc, num_desc (or 1-4)",
	)

	_ = sortCmd.MarkFlagRequired("file")
	_ = sortCmd.MarkFlagRequired("column")
	_ = sortCmd.MarkFlagRequired("mode")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runSort resolves the flags and runs one sort.
func runSort(cmd *cobra.Command) error {
	mode, err := sorter.ParseMode(sortMode)
	if err != nil {
		return err
	}

	env, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeQuietly(env.closeLog)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	res := env.session.RunSelection(ctx, session.Selection{
		File:   sortFile,
		Column: sortColumn,
		Mode:   mode,
	})

	env.logger.Info("sort ended",
		"success", res.Success,
		"state", res.State.String(),
		"output", res.OutputFile,
		"duration", res.Stats.ProcessingTime)

	if !res.Success {
		return fmt.Errorf("sort did not complete: %w", res.Err)
	}

	// =========================================================================
	// SUMMARY
	// =========================================================================

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Sort Complete ===")
	fmt.Fprintf(out, "Rows:            %d\n", res.Stats.RowsLoaded)
	fmt.Fprintf(out, "Columns:         %d\n", res.Stats.ColumnsLoaded)
	if res.Mode.Numeric() {
		fmt.Fprintf(out, "Non-numeric:     %d\n", res.Stats.MissingValues)
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", res.Stats.ProcessingTime)

	return nil
}
