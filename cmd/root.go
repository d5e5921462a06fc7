// =============================================================================
// CSV Sorter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called without a
// subcommand it runs the interactive sorter.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv-sorter)          interactive menus
//   ├── sortCmd (csv-sorter sort) same pipeline driven by flags
//   └── versionCmd (csv-sorter version)
//
// CONFIGURATION:
//   Every command starts from the same bootstrap:
//   1. Load config.yaml, .env and environment overrides
//   2. Open the diagnostic logger
//   3. Build the session over the configured directories
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ginjaninja78/csv-sorter/internal/config"
	"github.com/ginjaninja78/csv-sorter/internal/logging"
	"github.com/ginjaninja78/csv-sorter/internal/prompt"
	"github.com/ginjaninja78/csv-sorter/internal/session"
	"github.com/ginjaninja78/csv-sorter/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose sends debug logs to stderr when set to true.
var verbose bool

// noPause skips the final "Press Enter to exit..." prompt.
var noPause bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csv-sorter",
	Short: "CSV Sorter - Sort a CSV file by one column",

	Long: `CSV Sorter lists the CSV files in the input folder, asks which file,
column and sort type to use, and writes the sorted copy to the output folder
as {name}_sorted_{column}_{type}.csv.

Sort types:
  1. Alphabetical (A-Z)
  2. Alphabetical (Z-A)
  3. Numerical (Low to High)
  4. Numerical (High to Low)

Example Usage:
  csv-sorter                                          # Interactive menus
  csv-sorter --config ./my.yaml                       # Use a custom configuration file
  csv-sorter sort --file data.csv --column Score --mode num_asc`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Write debug logs to stderr",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noPause,
		"no-pause",
		false,
		"Exit without waiting for Enter",
	)
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// environment is what every command needs before running a session.
type environment struct {
	config   *config.MainConfig
	logger   *slog.Logger
	closeLog func() error
	session  *session.Session
}

// bootstrap loads configuration and opens the logger for cmd.
func bootstrap(cmd *cobra.Command) (*environment, error) {
	explicit := cmd.Flags().Changed("config")

	cfg, err := config.LoadMainConfig(cfgFile, explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogLevel, cfg.LogFormat, cfg.LogFile, verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	logger.Debug("configuration loaded",
		"config", cfgFile,
		"input_dir", cfg.InputDir,
		"output_dir", cfg.OutputDir,
		"extensions", cfg.Extensions)

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir)
	sess := session.New(files, cmd.OutOrStdout(), logger, session.Options{
		Extensions: cfg.Extensions,
		Delimiter:  cfg.Delimiter,
	})

	return &environment{
		config:   cfg,
		logger:   logger,
		closeLog: closeLog,
		session:  sess,
	}, nil
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// runInteractive runs one interactive sort and waits for Enter.
//
// The outcome of the run is reported on the console, so it never turns into
// a command error.
func runInteractive(cmd *cobra.Command) error {
	env, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeQuietly(env.closeLog)

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	ctx, stop := signalContext(cmd.Context())
	res := env.session.Run(ctx, p)
	stop()

	env.logger.Info("session ended",
		"success", res.Success,
		"state", res.State.String(),
		"output", res.OutputFile,
		"duration", res.Stats.ProcessingTime)

	if !noPause && env.config.ShouldPause() {
		p.Pause(context.Background())
	}

	return nil
}

// closeQuietly runs a close function whose error has nowhere to go.
func closeQuietly(closeFn func() error) {
	if closeFn != nil {
		_ = closeFn()
	}
}
