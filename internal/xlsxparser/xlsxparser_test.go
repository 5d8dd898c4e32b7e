package xlsxparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumnCode(t *testing.T) {
	cases := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		64:  "BM",
		701: "ZZ",
		702: "AAA",
	}
	for index, want := range cases {
		assert.Equal(t, want, ColumnCode(index), "index %d", index)
	}
	assert.Equal(t, "", ColumnCode(-1))
}

func TestColumnIndex(t *testing.T) {
	for _, index := range []int{0, 25, 26, 64, 701, 702} {
		got, err := ColumnIndex(ColumnCode(index))
		require.NoError(t, err)
		assert.Equal(t, index, got)
	}

	got, err := ColumnIndex("bn")
	require.NoError(t, err)
	assert.Equal(t, 65, got)

	got, err = ColumnIndex(" 82 ")
	require.NoError(t, err)
	assert.Equal(t, 82, got)

	for _, bad := range []string{"", "-1", "A1", "列"} {
		_, err := ColumnIndex(bad)
		assert.Error(t, err, "ref %q", bad)
	}
}

func TestDecodeCell(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want string
	}{
		{"empty", Cell{}, ""},
		{"text", TextCell("张三"), "张三"},
		{"text keeps leading zeros", TextCell("007"), "007"},
		{"whole number", Cell{Kind: CellNumber, Value: "13800138000"}, "13800138000"},
		{"whole number with decimal point", Cell{Kind: CellNumber, Value: "2.0"}, "2"},
		{"exponent", Cell{Kind: CellNumber, Value: "1.3800138E10"}, "13800138000"},
		{"decimal", Cell{Kind: CellNumber, Value: "12.5"}, "12.5"},
		{"negative", NumberCell(-3), "-3"},
		{"malformed number", Cell{Kind: CellNumber, Value: "12,5"}, "12,5"},
		{"bool true", Cell{Kind: CellBool, Value: "1"}, "true"},
		{"bool false", Cell{Kind: CellBool, Value: "FALSE"}, "false"},
		{"date", Cell{Kind: CellDate, Value: "2024-01-15T00:00:00Z"}, "2024-01-15T00:00:00Z"},
		{"duration", Cell{Kind: CellDuration, Value: "PT1H"}, "PT1H"},
		{"error", Cell{Kind: CellError, Value: "#DIV/0!"}, "#DIV/0!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeCell(tc.cell))
		})
	}
}

func TestCellAtShortRow(t *testing.T) {
	row := []Cell{TextCell("a")}
	assert.Equal(t, "a", CellAt(row, 0))
	assert.Equal(t, "", CellAt(row, 5))
	assert.Equal(t, "", CellAt(row, -1))
	assert.Equal(t, "", CellAt(nil, 0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "5", FormatNumber(5))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "0.1", FormatNumber(0.1))
	assert.Equal(t, "-2.25", FormatNumber(-2.25))
	assert.Equal(t, "0.3333333333333333", FormatNumber(1.0/3))
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	path := filepath.Join(t.TempDir(), "source.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpenDecodesTypedCells(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"姓名", "电话", "地址", "单价", "已付"},
		{"张三", 13800138000, "北京市", 12.5, true},
		{"李四", nil, "上海市"},
	})

	sheet, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	row := sheet.Rows[1]
	assert.Equal(t, "张三", CellAt(row, 0))
	assert.Equal(t, "13800138000", CellAt(row, 1))
	assert.Equal(t, "12.5", CellAt(row, 3))
	assert.Equal(t, "true", CellAt(row, 4))

	short := sheet.Rows[2]
	assert.Equal(t, "", CellAt(short, 1))
	assert.Equal(t, "上海市", CellAt(short, 2))
	assert.Equal(t, "", CellAt(short, 4))
}

func TestReadColumns(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"订单号", "收件人", 2024},
		{"1", "张三", "x"},
	})

	columns, err := ReadColumns(path)
	require.NoError(t, err)
	assert.Equal(t, []types.ColumnInfo{
		{Index: 0, Code: "A", Title: "订单号"},
		{Index: 1, Code: "B", Title: "收件人"},
		{Index: 2, Code: "C", Title: "2024"},
	}, columns)
}

func TestReadColumnsEmptySheet(t *testing.T) {
	path := writeWorkbook(t, nil)

	columns, err := ReadColumns(path)
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	_, err := Open(path)
	assert.ErrorIs(t, err, types.ErrOpen)

	_, err = ReadColumns(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, types.ErrOpen)
}
