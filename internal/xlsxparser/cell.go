// =============================================================================
// Shipping Order Converter - Cell Decoder
// =============================================================================
//
// Spreadsheet cells arrive with different underlying representations. This
// file turns every one of them into a canonical string so that the rest of
// the pipeline only deals with text.
//
// DECODING POLICY:
//   | Kind     | Output                                                  |
//   |----------|---------------------------------------------------------|
//   | Text     | verbatim                                                |
//   | Number   | whole numbers without a decimal point, else shortest    |
//   | Bool     | "true" / "false"                                        |
//   | Date     | raw underlying text                                     |
//   | Duration | raw underlying text                                     |
//   | Error    | the error literal, e.g. "#DIV/0!"                       |
//   | Empty    | ""                                                      |
//
// Decoding never fails: anything unexpected degrades to its raw text.
//
// =============================================================================

package xlsxparser

import (
	"math"
	"strconv"
)

// CellKind is the underlying representation of a cell value.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
	CellDate
	CellDuration
	CellError
)

// Cell is one raw spreadsheet value together with its kind.
type Cell struct {
	Kind  CellKind
	Value string
}

// TextCell returns a text cell, or an empty cell for "".
func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Value: s}
}

// NumberCell returns a numeric cell holding f.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Value: strconv.FormatFloat(f, 'g', -1, 64)}
}

// DecodeCell converts a cell into its canonical string.
func DecodeCell(c Cell) string {
	switch c.Kind {
	case CellEmpty:
		return ""
	case CellNumber:
		f, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return c.Value
		}
		return FormatNumber(f)
	case CellBool:
		b, err := strconv.ParseBool(c.Value)
		if err != nil {
			return c.Value
		}
		return strconv.FormatBool(b)
	default:
		// Text, dates, durations and error literals keep their raw text.
		return c.Value
	}
}

// CellAt decodes the cell at index i of a row. Reading past the end of a
// short row yields "".
func CellAt(row []Cell, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return DecodeCell(row[i])
}

// FormatNumber renders whole numbers without a decimal point so that phone
// numbers and ids do not gain a trailing ".0". Other values use the shortest
// decimal form.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
