// =============================================================================
// Shipping Order Converter - Preset Command
// =============================================================================
//
// This file defines the 'preset' command, which prints the legacy column
// preset as a mapping file. The output is a starting point for a custom
// mapping:
//
//   converter preset > mapping.yaml
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/shipping-order-converter/internal/config"
	"github.com/ginjaninja78/shipping-order-converter/internal/converter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Print the legacy column preset as a mapping file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(config.NewMappingFile(converter.LegacyMappingTable()))
		if err != nil {
			return fmt.Errorf("failed to encode preset: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
}
