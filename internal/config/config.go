// =============================================================================
// Shipping Order Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and the column mapping
// files that describe how a source spreadsheet maps onto a shipping order.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Mapping Files (mapping.yaml): Output field -> source columns + operation
//
// OVERRIDES:
//   Values from the main config can be overridden by environment variables,
//   which may also be placed in a .env file in the working directory:
//     ORDERCONV_OUTPUT_DIR, ORDERCONV_LOG_LEVEL, ORDERCONV_CSV_ENCODING
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// validate is shared by every configuration structure in this package.
var validate = validator.New(validator.WithRequiredStructEnabled())

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where exported spreadsheets are placed when
	// no explicit output path is given.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" validate:"required"`

	// OutputNameFormat defines the format for output file names.
	// Placeholders:
	//   {source}    - Source file name without extension
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{source}_orders_{timestamp}.xlsx"
	OutputNameFormat string `yaml:"output_name_format" validate:"required"`

	// WriteErrorLog writes row validation warnings next to the output file.
	// Default: false
	WriteErrorLog bool `yaml:"write_error_log"`

	// =========================================================================
	// CONVERSION SETTINGS
	// =========================================================================

	// MappingFile is the default mapping file used when --mapping is not given.
	// Empty means the legacy column preset.
	MappingFile string `yaml:"mapping_file"`

	// MergeDuplicates merges rows of the same recipient before export.
	// Default: false
	MergeDuplicates bool `yaml:"merge_duplicates"`

	// CSVSettings contains settings for reading CSV source files.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// CSVSettings contains settings for reading CSV source files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" (pipe), "tab", ";"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file.
	// Common values: "UTF-8", "GBK", "GB18030"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// DefaultMainConfig returns a configuration holding only default values.
func DefaultMainConfig() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)
	applyEnvOverrides(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadMainConfigOrDefault behaves like LoadMainConfig but falls back to the
// defaults when the file does not exist.
func LoadMainConfigOrDefault(configPath string) (*MainConfig, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		config := DefaultMainConfig()
		applyEnvOverrides(config)
		if err := validateMainConfig(config); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return config, nil
	}
	return LoadMainConfig(configPath)
}

// LoadDotEnv loads environment variables from the given .env files. Files
// that do not exist are skipped; variables already set are not overwritten.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{source}_orders_{timestamp}.xlsx"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}
}

// applyEnvOverrides replaces file values with ORDERCONV_* environment variables.
func applyEnvOverrides(config *MainConfig) {
	if v := os.Getenv("ORDERCONV_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv("ORDERCONV_LOG_LEVEL"); v != "" {
		config.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("ORDERCONV_CSV_ENCODING"); v != "" {
		config.CSVSettings.Encoding = v
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	return validate.Struct(config)
}
