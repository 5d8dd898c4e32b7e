// =============================================================================
// Shipping Order Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Shipping Order Converter CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   converter columns <file>   - List the columns of a source spreadsheet
//   converter convert <file>   - Convert a spreadsheet into an upload workbook
//   converter preset           - Print the legacy column preset
//   converter version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core conversion logic (not for external import)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/shipping-order-converter/cmd"
)

func main() {
	cmd.Execute()
}
