// =============================================================================
// Shipping Order Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── columnsCmd (converter columns <file>)
//   ├── convertCmd (converter convert <file>)
//   ├── presetCmd  (converter preset)
//   └── versionCmd (converter version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads a .env file from the working directory, if present
//   2. Loads the main configuration (--config)
//   3. Sets up logging at the configured level (--verbose forces debug)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ginjaninja78/shipping-order-converter/internal/config"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// mainConfig is the loaded configuration, set before any subcommand runs.
var mainConfig *config.MainConfig

// logger writes structured progress messages to stderr.
var logger = slog.New(slog.DiscardHandler)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Shipping Order Converter - Turn order spreadsheets into upload templates",
	Long: `Shipping Order Converter reads the first sheet of an order spreadsheet
(XLSX or CSV), maps its columns onto the seven fields of the shipping upload
template, finds orders for the same recipient and writes the result as an
XLSX file ready for bulk upload.

Key Features:
  - Configurable column mapping with concat and arithmetic operations
  - Legacy fixed-column preset for the historical export layout
  - Duplicate detection and merging by recipient
  - Non-blocking validation warnings for required template columns

Example Usage:
  converter columns orders.xlsx                     # List the source columns
  converter convert orders.xlsx --mapping map.yaml  # Convert with a mapping file
  converter convert orders.xlsx --legacy --merge    # Legacy preset, merge duplicates`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
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
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initConfig loads the environment and configuration and sets up logging.
// The default config file may be absent; a file named with --config may not.
func initConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	var err error
	if cmd.Flags().Changed("config") {
		mainConfig, err = config.LoadMainConfig(cfgFile)
	} else {
		mainConfig, err = config.LoadMainConfigOrDefault(cfgFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	level := parseLevel(mainConfig.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("configuration loaded", "config", cfgFile, "output_dir", mainConfig.OutputDir)

	return nil
}

// parseLevel maps a validated log level name onto a slog level.
func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
