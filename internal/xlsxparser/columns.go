package xlsxparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/xuri/excelize/v2"
)

// ColumnCode returns the spreadsheet letter code of a 0-based column index.
//
// The encoding is bijective base-26: there is no digit for zero, so after Z
// comes AA (not BA).
//
//	0 -> A, 25 -> Z, 26 -> AA, 701 -> ZZ, 702 -> AAA
func ColumnCode(index int) string {
	if index < 0 {
		return ""
	}
	var code []byte
	n := index + 1
	for n > 0 {
		n--
		code = append([]byte{byte('A' + n%26)}, code...)
		n /= 26
	}
	return string(code)
}

// ColumnIndex resolves a column reference to a 0-based index. The reference
// is either a letter code ("A", "bm") or a non-negative decimal index ("64").
func ColumnIndex(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, fmt.Errorf("empty column reference")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative column index %d", n)
		}
		return n, nil
	}
	n, err := excelize.ColumnNameToNumber(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid column reference %q: %w", ref, err)
	}
	return n - 1, nil
}

// Columns describes every cell of the header row (row 0).
func Columns(header []Cell) []types.ColumnInfo {
	columns := make([]types.ColumnInfo, 0, len(header))
	for i, cell := range header {
		columns = append(columns, types.ColumnInfo{
			Index: i,
			Code:  ColumnCode(i),
			Title: DecodeCell(cell),
		})
	}
	return columns
}
