// =============================================================================
// Shipping Order Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the entire
// conversion pipeline for a single source file, from reading the first sheet
// to a sorted and grouped set of shipping orders.
//
// CONVERSION PIPELINE:
//   1. Open the source (XLSX workbook or CSV file)
//   2. Skip the header row
//   3. Apply the mapping table to every data row (Operation Engine)
//   4. Drop rows whose recipient name, phone and address are all empty
//   5. Sort and group rows by recipient identity (Duplicate Grouper)
//
// A conversion either returns the complete result or an error; a partial
// result is never exposed.
//
// =============================================================================

package converter

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/shipping-order-converter/internal/config"
	"github.com/ginjaninja78/shipping-order-converter/internal/csvparser"
	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/internal/xlsxparser"
)

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts a single source file with one mapping table.
type Converter struct {
	// sourcePath is the path to the source spreadsheet.
	sourcePath string

	// table maps output fields to source columns.
	table types.MappingTable

	// csvSettings is used when the source is a CSV file.
	csvSettings config.CSVSettings

	// logger receives progress messages. *slog.Logger satisfies it.
	logger Logger
}

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used by the converter.
func WithLogger(logger Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCSVSettings sets the settings used to read CSV sources.
func WithCSVSettings(settings config.CSVSettings) Option {
	return func(c *Converter) {
		c.csvSettings = settings
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - sourcePath: The path to the source spreadsheet.
//   - table: The mapping table; see LegacyMappingTable for the preset.
//   - opts: Optional logger and CSV settings.
func New(sourcePath string, table types.MappingTable, opts ...Option) *Converter {
	c := &Converter{
		sourcePath: sourcePath,
		table:      table,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - The sorted, grouped rows plus duplicate statistics.
//   - An error wrapping types.ErrOpen, types.ErrNoSheet or types.ErrSheetRead.
func (c *Converter) Run() (*types.ConversionResult, error) {
	startTime := time.Now()
	c.logger.Info("converting file", "path", c.sourcePath, "mapped_fields", len(c.table))

	sheet, err := OpenSheet(c.sourcePath, c.csvSettings)
	if err != nil {
		c.logger.Error("failed to open source", "path", c.sourcePath, "error", err)
		return nil, err
	}

	dataRows := max(len(sheet.Rows)-1, 0)
	c.logger.Debug("read sheet", "sheet", sheet.Name, "data_rows", dataRows)

	rows := ConvertRows(sheet.Rows, c.table)
	if dropped := dataRows - len(rows); dropped > 0 {
		c.logger.Debug("dropped rows without recipient", "count", dropped)
	}

	result := GroupDuplicates(rows)
	c.logger.Info("conversion complete",
		"rows", result.TotalRows,
		"duplicates", result.DuplicateCount,
		"elapsed", time.Since(startTime),
	)

	return &result, nil
}

// Convert converts the file at path with the given mapping table.
func Convert(path string, table types.MappingTable) (*types.ConversionResult, error) {
	return New(path, table).Run()
}

// ConvertLegacy converts the file at path with the legacy column preset.
func ConvertLegacy(path string) (*types.ConversionResult, error) {
	return Convert(path, LegacyMappingTable())
}

// =============================================================================
// SOURCE HELPERS
// =============================================================================

// OpenSheet reads the first sheet of a source file. Files ending in .csv are
// read as CSV, everything else as an XLSX workbook.
func OpenSheet(path string, settings config.CSVSettings) (*xlsxparser.Sheet, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csvparser.Parse(path, settings)
	}
	return xlsxparser.Open(path)
}

// ReadColumns describes the header row of a source file.
func ReadColumns(path string, settings config.CSVSettings) ([]types.ColumnInfo, error) {
	sheet, err := OpenSheet(path, settings)
	if err != nil {
		return nil, err
	}
	return sheet.Columns(), nil
}

// =============================================================================
// ROW CONVERSION
// =============================================================================

// ConvertRows applies the mapping table to every data row. Row 0 is the
// header and is skipped. Rows whose recipient name, phone and address are
// all empty are dropped; the others keep source order.
func ConvertRows(rows [][]xlsxparser.Cell, table types.MappingTable) []types.ConvertedRow {
	converted := make([]types.ConvertedRow, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}

		record := ConvertRow(row, table)
		if record.Key().IsEmpty() {
			continue
		}
		converted = append(converted, record)
	}
	return converted
}

// ConvertRow builds one record from a data row. Unmapped fields keep their
// default value.
func ConvertRow(row []xlsxparser.Cell, table types.MappingTable) types.ConvertedRow {
	record := types.NewConvertedRow()
	for field, mapping := range table {
		values := make([]string, len(mapping.SourceIndices))
		for i, index := range mapping.SourceIndices {
			values[i] = xlsxparser.CellAt(row, index)
		}
		record.Set(field, ApplyOperation(values, mapping.Operation))
	}
	return record
}

// LegacyMappingTable returns the historical fixed-column preset used when no
// mapping is supplied.
func LegacyMappingTable() types.MappingTable {
	return types.MappingTable{
		types.FieldRecipientName:   {SourceIndices: []int{64}, Operation: types.OpConcat},
		types.FieldRecipientPhone:  {SourceIndices: []int{65}, Operation: types.OpConcat},
		types.FieldDeliveryAddress: {SourceIndices: []int{69}, Operation: types.OpConcat},
		types.FieldProductName:     {SourceIndices: []int{82}, Operation: types.OpConcat},
		types.FieldRemarks:         {SourceIndices: []int{0}, Operation: types.OpConcat},
	}
}
