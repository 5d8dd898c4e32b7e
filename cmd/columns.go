// =============================================================================
// Shipping Order Converter - Columns Command
// =============================================================================
//
// This file defines the 'columns' command, which lists the header row of a
// source file so that a mapping file can be written against it.
//
// COMMAND USAGE:
//   converter columns <file>
//
// OUTPUT:
//   INDEX  CODE  TITLE
//   0      A     订单编号
//   1      B     收件人
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ginjaninja78/shipping-order-converter/internal/converter"
	"github.com/spf13/cobra"
)

// columnsCmd represents the 'columns' command.
var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List the columns of a source spreadsheet",
	Long: `List the header row of the first sheet of an XLSX or CSV file.

Each column is shown with its 0-based index and its spreadsheet letter code.
Both forms can be used to reference the column in a mapping file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runColumns(args[0])
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func runColumns(path string) error {
	columns, err := converter.ReadColumns(path, mainConfig.CSVSettings)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		fmt.Println("The first sheet has no header row.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tCODE\tTITLE")
	for _, column := range columns {
		fmt.Fprintf(w, "%d\t%s\t%s\n", column.Index, column.Code, column.Title)
	}
	return w.Flush()
}
