// =============================================================================
// Shipping Order Converter - CSV Source Reader
// =============================================================================
//
// Order exports are not always XLSX workbooks: several shop back-ends only
// offer CSV. This module reads such a file into the same Sheet structure the
// XLSX reader produces, so the converter does not care where rows come from.
//
// FEATURES:
//   - Configurable delimiter (comma, tab, pipe, semicolon)
//   - Character decoding (UTF-8 with or without BOM, GBK, GB18030, ...)
//   - Ragged rows (rows may have fewer fields than the header)
//
// Every CSV field is a text cell; empty fields are empty cells.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/shipping-order-converter/internal/config"
	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/internal/xlsxparser"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse reads a CSV file and returns its rows, header included.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Delimiter and encoding from the main configuration.
//
// RETURNS:
//   - A Sheet named after the file.
//   - An error wrapping types.ErrOpen if the file cannot be read or decoded.
func Parse(filePath string, settings config.CSVSettings) (*xlsxparser.Sheet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, types.NewOpenError(filePath, err)
	}
	defer file.Close()

	decoder, err := newDecoder(settings.Encoding)
	if err != nil {
		return nil, types.NewOpenError(filePath, err)
	}

	reader := csv.NewReader(transform.NewReader(bufio.NewReader(file), decoder))
	configureReader(reader, settings)

	sheet := &xlsxparser.Sheet{
		Name: strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath)),
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, types.NewSheetReadError(sheet.Name, err)
		}

		row := make([]xlsxparser.Cell, len(record))
		for i, field := range record {
			row[i] = xlsxparser.TextCell(field)
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// newDecoder returns a decoder for the named character encoding. UTF-8 input
// may carry a byte order mark, which is dropped.
func newDecoder(name string) (transform.Transformer, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}

	enc, err := htmlindex.Get(normalized)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc.NewDecoder(), nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if r := []rune(settings.Delimiter); len(r) > 0 {
			reader.Comma = r[0]
		} else {
			reader.Comma = ','
		}
	}

	// Exports frequently have ragged rows and stray quotes.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}
