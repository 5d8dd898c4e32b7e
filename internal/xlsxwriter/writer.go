// =============================================================================
// Shipping Order Converter - XLSX Writer Module
// =============================================================================
//
// This module writes converted shipping orders into the upload template
// expected by the order platform.
//
// OUTPUT LAYOUT:
//   A single worksheet named 工作表1:
//
//   | 收件人姓名（必填） | 收件人手机号（必填） | 收货地址（必填） | 商品名称... | 商品规格... | 商品数量... | 备注（非必填） |
//   | 张三               | 13800138000          | 北京市朝阳区...  | 苹果；梨    |             | 1；1        |                |
//
//   Every value is written as a string cell, so phone numbers and quantities
//   such as "1；1" are kept verbatim.
//
// WRITE PROCESS:
//   1. Build the workbook in memory
//   2. Save it under a temporary name in the target directory
//   3. Rename the temporary file over the target
//
// =============================================================================

package xlsxwriter

import (
	"os"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the only worksheet in the output workbook.
const SheetName = "工作表1"

// Header is the header row of the upload template, in export column order.
var Header = []string{
	"收件人姓名（必填）",
	"收件人手机号（必填）",
	"收货地址（必填）",
	"商品名称(必填) -- 多商品用“；”隔开",
	"商品规格(非必填) -- 多商品用“；”隔开",
	"商品数量(必填) -- 多商品用“；”隔开",
	"备注（非必填）",
}

// columnWidths are the display widths of the template columns.
var columnWidths = []float64{18, 18, 48, 36, 24, 20, 24}

// Write exports rows to a new workbook at outputPath, replacing any existing
// file.
//
// PARAMETERS:
//   - rows: The orders to write, in output order.
//   - outputPath: The destination .xlsx path. Its directory must exist.
//
// RETURNS:
//   - The number of data rows written.
//   - An error wrapping types.ErrWrite if the workbook cannot be built or saved.
func Write(rows []types.ConvertedRow, outputPath string) (int, error) {
	f, err := Build(rows)
	if err != nil {
		return 0, types.NewWriteError(outputPath, err)
	}
	defer f.Close()

	tmp := utils.TempPath(outputPath)
	if err := f.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return 0, types.NewWriteError(outputPath, err)
	}
	if err := utils.ReplaceFile(tmp, outputPath); err != nil {
		return 0, types.NewWriteError(outputPath, err)
	}

	return len(rows), nil
}

// Build lays out rows in a new in-memory workbook. The caller closes it.
func Build(rows []types.ConvertedRow) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}
	if err := setColumnWidths(f); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		f.Close()
		return nil, err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := rows[i].Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func setColumnWidths(f *excelize.File) error {
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
