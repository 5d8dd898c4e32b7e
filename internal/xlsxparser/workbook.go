// =============================================================================
// Shipping Order Converter - XLSX Source Reader
// =============================================================================
//
// This module opens the source workbook and exposes the first worksheet as a
// grid of typed cells. Only the first sheet is ever read.
//
// READING PROCESS:
//   1. Open the workbook (ErrOpen on failure)
//   2. Select the first sheet (ErrNoSheet if there is none)
//   3. Read all rows with raw cell values (ErrSheetRead on failure)
//   4. Classify every non-empty cell with its excelize cell type
//
// Row 0 is the header row; the converter skips it.
//
// =============================================================================

package xlsxparser

import (
	"strconv"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/xuri/excelize/v2"
)

// Sheet is the decoded content of one worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name string

	// Rows holds every row, header included. Rows may have different
	// lengths; trailing blank cells are not stored.
	Rows [][]Cell
}

// Columns describes the header row of the sheet. A sheet without rows has
// no columns.
func (s *Sheet) Columns() []types.ColumnInfo {
	if len(s.Rows) == 0 {
		return []types.ColumnInfo{}
	}
	return Columns(s.Rows[0])
}

// Open reads the first worksheet of the workbook at path.
func Open(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, types.NewOpenError(path, err)
	}
	defer f.Close()

	return ReadFirstSheet(f)
}

// ReadFirstSheet reads the first worksheet of an already opened workbook.
func ReadFirstSheet(f *excelize.File) (*Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, types.ErrNoSheet
	}
	name := sheets[0]

	// Raw values keep numbers free of display formatting ("13800138000"
	// instead of "1.38E+10").
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, types.NewSheetReadError(name, err)
	}

	sheet := &Sheet{Name: name, Rows: make([][]Cell, len(raw))}
	for r, values := range raw {
		row := make([]Cell, len(values))
		for c, value := range values {
			row[c] = classify(f, name, c, r, value)
		}
		sheet.Rows[r] = row
	}
	return sheet, nil
}

// ReadColumns opens the workbook at path and describes its header row.
func ReadColumns(path string) ([]types.ColumnInfo, error) {
	sheet, err := Open(path)
	if err != nil {
		return nil, err
	}
	return sheet.Columns(), nil
}

// classify attaches a kind to a raw cell value.
func classify(f *excelize.File, sheet string, col, row int, value string) Cell {
	if value == "" {
		return Cell{Kind: CellEmpty}
	}

	cellType := excelize.CellTypeUnset
	if name, err := excelize.CoordinatesToCellName(col+1, row+1); err == nil {
		if t, err := f.GetCellType(sheet, name); err == nil {
			cellType = t
		}
	}

	switch cellType {
	case excelize.CellTypeBool:
		return Cell{Kind: CellBool, Value: value}
	case excelize.CellTypeDate:
		return Cell{Kind: CellDate, Value: value}
	case excelize.CellTypeError:
		return Cell{Kind: CellError, Value: value}
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return Cell{Kind: CellText, Value: value}
	case excelize.CellTypeNumber:
		return Cell{Kind: CellNumber, Value: value}
	default:
		// Untyped cells are numbers unless the value says otherwise;
		// formula results are treated the same way.
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return Cell{Kind: CellNumber, Value: value}
		}
		return Cell{Kind: CellText, Value: value}
	}
}
