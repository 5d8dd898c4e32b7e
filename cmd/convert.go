// =============================================================================
// Shipping Order Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which is the main command for
// turning a source spreadsheet into an upload workbook. It orchestrates the
// entire pipeline for one file.
//
// COMMAND USAGE:
//   converter convert <file> [flags]
//
// FLAGS:
//   --mapping  : Mapping file (overrides mapping_file in the config)
//   --legacy   : Use the legacy fixed-column preset
//   --merge    : Merge orders of the same recipient before export
//   --output   : Output path (default: output_dir/output_name_format)
//   --dry-run  : Convert and report without writing a file
//
// PROCESSING PIPELINE:
//   1. Resolve the mapping table
//   2. Convert the first sheet and group duplicate recipients
//   3. Optionally merge the duplicates
//   4. Report validation warnings
//   5. Export the upload workbook
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/shipping-order-converter/internal/config"
	"github.com/ginjaninja78/shipping-order-converter/internal/converter"
	"github.com/ginjaninja78/shipping-order-converter/internal/session"
	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/internal/validation"
	"github.com/ginjaninja78/shipping-order-converter/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	mappingPath string
	useLegacy   bool
	mergeRows   bool
	outputPath  string
	dryRun      bool
)

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a source spreadsheet into an upload workbook",
	Long: `The convert command reads the first sheet of an XLSX or CSV file, applies
the column mapping and writes the seven-column shipping upload template.

Rows whose recipient name, phone and address are all empty are skipped.
Orders for the same recipient (same name, phone and address) are listed next
to each other; with --merge they are combined into a single order whose
products are separated by "；".

Validation warnings never stop the export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "Path to a YAML mapping file")
	convertCmd.Flags().BoolVar(&useLegacy, "legacy", false, "Use the legacy fixed-column preset")
	convertCmd.Flags().BoolVar(&mergeRows, "merge", false, "Merge orders of the same recipient")
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .xlsx path")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Convert and report without writing output files")

	convertCmd.MarkFlagsMutuallyExclusive("mapping", "legacy")
	convertCmd.MarkFlagsMutuallyExclusive("output", "dry-run")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(sourcePath string) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: RESOLVE MAPPING
	// =========================================================================

	table, mappingName, err := resolveMapping()
	if err != nil {
		return err
	}
	logger.Debug("using mapping", "mapping", mappingName, "fields", len(table))

	// =========================================================================
	// STEP 2: CONVERT
	// =========================================================================

	fmt.Println("=== Shipping Order Converter ===")
	fmt.Printf("Source:  %s\n", sourcePath)
	fmt.Printf("Mapping: %s\n", mappingName)

	conv := converter.New(sourcePath, table,
		converter.WithLogger(logger),
		converter.WithCSVSettings(mainConfig.CSVSettings),
	)
	result, err := conv.Run()
	if err != nil {
		return err
	}

	store := session.New(logger)
	if err := store.Store(sourcePath, result); err != nil {
		return err
	}

	printResult(result)

	// =========================================================================
	// STEP 3: MERGE
	// =========================================================================

	if mergeRows || mainConfig.MergeDuplicates {
		if result.HasDuplicates {
			merged, err := store.Merge()
			if err != nil {
				return err
			}
			fmt.Printf("Merged duplicates: %d order(s) remain\n", merged.TotalRows)
		} else {
			fmt.Println("No duplicates to merge.")
		}
	}

	// =========================================================================
	// STEP 4: VALIDATE
	// =========================================================================

	rows, err := store.Rows()
	if err != nil {
		return err
	}
	warnings := validation.ValidateRows(rows)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Print(validation.FormatErrors(warnings))
	}

	// =========================================================================
	// STEP 5: EXPORT
	// =========================================================================

	if dryRun {
		fmt.Println("\nDry run: no file written.")
		return nil
	}

	target := outputPath
	if target == "" {
		name := utils.GenerateOutputFileName(mainConfig.OutputNameFormat, map[string]string{
			"source": utils.SourceName(sourcePath),
		})
		target = filepath.Join(mainConfig.OutputDir, name)
	}
	if err := utils.EnsureDir(filepath.Dir(target)); err != nil {
		return fmt.Errorf("%w %s: %v", types.ErrWrite, target, err)
	}

	n, err := store.Export(target)
	if err != nil {
		return err
	}
	fmt.Printf("\nExported %d order(s) to %s\n", n, target)

	if mainConfig.WriteErrorLog && len(warnings) > 0 {
		entries := validation.LogEntries(warnings, filepath.Base(sourcePath))
		logPath, err := utils.WriteErrorLog(entries, filepath.Dir(target))
		if err != nil {
			logger.Warn("failed to write warning log", "error", err)
		} else {
			fmt.Printf("Warnings written to %s\n", logPath)
		}
	}

	logger.Info("done", "elapsed", time.Since(startTime))
	return nil
}

// resolveMapping picks the mapping table: --legacy, then --mapping, then the
// configured mapping file, then the legacy preset.
func resolveMapping() (types.MappingTable, string, error) {
	if useLegacy {
		return converter.LegacyMappingTable(), "legacy preset", nil
	}

	path := mappingPath
	if path == "" {
		path = mainConfig.MappingFile
	}
	if path == "" {
		return converter.LegacyMappingTable(), "legacy preset", nil
	}

	table, err := config.LoadMappingTable(path)
	if err != nil {
		return nil, "", err
	}
	return table, path, nil
}

// printResult reports row counts and lists the duplicate groups.
func printResult(result *types.ConversionResult) {
	fmt.Printf("Orders:  %d\n", result.TotalRows)
	if !result.HasDuplicates {
		fmt.Println("No duplicate recipients found.")
		return
	}

	groups := 0
	for _, row := range result.Rows {
		groups = max(groups, row.GroupID)
	}
	fmt.Printf("Duplicates: %d order(s) in %d group(s)\n", result.DuplicateCount, groups)

	current := 0
	for _, row := range result.Rows {
		if row.GroupID == 0 || row.GroupID == current {
			continue
		}
		current = row.GroupID
		fmt.Printf("  #%d %s\n", current, strings.Join([]string{
			row.RecipientName, row.RecipientPhone, row.DeliveryAddress,
		}, " / "))
	}
}
