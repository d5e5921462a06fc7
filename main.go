// =============================================================================
// CSV Sorter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the CSV Sorter CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   csv-sorter              - Pick a file, column and sort type from menus
//   csv-sorter sort         - Sort one file using flags
//   csv-sorter version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Loading, sorting, writing and the interactive session
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csv-sorter/cmd"
)

func main() {
	cmd.Execute()
}
