// =============================================================================
// CSV Sorter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
// Every setting has a default, so the sorter runs without any config file.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults (source/ and output/ folders, .csv files)
//   2. Main Config (config.yaml), optional unless named explicitly
//   3. A .env file in the working directory, if present
//   4. CSV_SORTER_* environment variables
//
// The merged result is validated before use.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up when --config is not given.
const DefaultConfigFile = "config.yaml"

// Environment variables that override file settings.
const (
	EnvInputDir  = "CSV_SORTER_INPUT_DIR"
	EnvOutputDir = "CSV_SORTER_OUTPUT_DIR"
	EnvLogLevel  = "CSV_SORTER_LOG_LEVEL"
	EnvLogFile   = "CSV_SORTER_LOG_FILE"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for files to sort.
	// Default: "source"
	InputDir string `yaml:"input_dir" validate:"required"`

	// OutputDir is the directory where sorted files are written.
	// Default: "output"
	OutputDir string `yaml:"output_dir" validate:"required"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// Extensions lists the tabular file extensions offered for sorting.
	// Supported values: ".csv", ".xlsx"
	// Default: [".csv"]
	Extensions []string `yaml:"extensions" validate:"required,min=1,dive,oneof=.csv .xlsx"`

	// Delimiter separates fields in CSV files.
	// Accepts a single character or one of: "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter" validate:"required"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile receives diagnostic logs. Empty disables file logging.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the log handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// =========================================================================
	// CONSOLE SETTINGS
	// =========================================================================

	// PauseOnExit waits for Enter before the program returns.
	// Default: true
	PauseOnExit *bool `yaml:"pause_on_exit"`
}

// ShouldPause reports whether the final "Press Enter" prompt is shown.
func (c *MainConfig) ShouldPause() bool {
	return c.PauseOnExit == nil || *c.PauseOnExit
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the main configuration.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - explicit: Whether the path was named by the user. A missing file
//     named explicitly is an error; a missing default file is not.
//
// RETURNS:
//   - A pointer to the validated MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string, explicit bool) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	applyEnvOverrides(&config)

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides copies CSV_SORTER_* variables onto the config.
func applyEnvOverrides(config *MainConfig) {
	if v := os.Getenv(EnvInputDir); v != "" {
		config.InputDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		config.LogFile = v
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "source"
	}
	if config.OutputDir == "" {
		config.OutputDir = "output"
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".csv"}
	}
	for i, ext := range config.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		config.Extensions[i] = ext
	}
	if config.Delimiter == "" {
		config.Delimiter = ","
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	config.LogLevel = strings.ToLower(config.LogLevel)
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
}

// validate is shared; validator caches struct metadata.
var validate = validator.New()

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages,
				fmt.Sprintf("field %s: failed %q (value %v)", fieldError.Namespace(), fieldError.Tag(), fieldError.Value()))
		}
		return errors.New(strings.Join(messages, "; "))
	}

	return err
}
