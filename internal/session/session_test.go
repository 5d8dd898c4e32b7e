package session

import (
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/shipping-order-converter/internal/converter"
	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/internal/xlsxparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(name, product string) types.ConvertedRow {
	return types.ConvertedRow{
		RecipientName:   name,
		RecipientPhone:  "13800138000",
		DeliveryAddress: "北京市",
		ProductName:     product,
		Quantity:        "1",
	}
}

func grouped() *types.ConversionResult {
	result := converter.GroupDuplicates([]types.ConvertedRow{
		order("张三", "苹果"),
		order("李四", "梨"),
		order("张三", "香蕉"),
	})
	return &result
}

func TestEmptySession(t *testing.T) {
	s := New(nil)

	_, err := s.Merge()
	assert.ErrorIs(t, err, types.ErrNoData)

	_, err = s.Export(filepath.Join(t.TempDir(), "out.xlsx"))
	assert.ErrorIs(t, err, types.ErrNoData)

	_, err = s.Rows()
	assert.ErrorIs(t, err, types.ErrNoData)

	path, err := s.SourcePath()
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestStoreKeepsCopy(t *testing.T) {
	s := New(nil)
	result := grouped()
	require.NoError(t, s.Store("orders.xlsx", result))

	result.Rows[0].RecipientName = "changed"

	rows, err := s.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "张三", rows[0].RecipientName)

	rows[1].RecipientName = "changed"
	again, err := s.Rows()
	require.NoError(t, err)
	assert.Equal(t, "张三", again[1].RecipientName)

	path, err := s.SourcePath()
	require.NoError(t, err)
	assert.Equal(t, "orders.xlsx", path)
}

func TestStoreEmptyResultAllowsExport(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Store("empty.xlsx", &types.ConversionResult{}))

	n, err := s.Export(filepath.Join(t.TempDir(), "out.xlsx"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMergeReplacesRows(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Store("orders.xlsx", grouped()))

	result, err := s.Merge()
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.False(t, result.HasDuplicates)

	rows, err := s.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "苹果；香蕉", rows[0].ProductName)
	assert.Equal(t, "1；1", rows[0].Quantity)

	// Merging merged rows changes nothing.
	again, err := s.Merge()
	require.NoError(t, err)
	assert.Equal(t, result.Rows, again.Rows)
}

func TestExport(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Store("orders.xlsx", grouped()))
	_, err := s.Merge()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	n, err := s.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sheet, err := xlsxparser.Open(path)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "苹果；香蕉", xlsxparser.CellAt(sheet.Rows[1], 3))
}

func TestExportWriteError(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Store("orders.xlsx", grouped()))

	_, err := s.Export(filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	assert.ErrorIs(t, err, types.ErrWrite)
}

func TestBusySession(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Store("orders.xlsx", grouped()))

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.Merge()
	assert.ErrorIs(t, err, types.ErrLock)
	_, err = s.Export(filepath.Join(t.TempDir(), "out.xlsx"))
	assert.ErrorIs(t, err, types.ErrLock)
	assert.ErrorIs(t, s.Store("other.xlsx", grouped()), types.ErrLock)
	_, err = s.Rows()
	assert.ErrorIs(t, err, types.ErrLock)
}
