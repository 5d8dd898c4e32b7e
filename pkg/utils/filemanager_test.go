package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{source}_orders_{timestamp}.xlsx", map[string]string{"source": "march"})
	assert.True(t, strings.HasPrefix(name, "march_orders_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
	assert.NotContains(t, name, "{")

	// "march_orders_" + "20060102_150405" + ".xlsx"
	assert.Len(t, name, len("march_orders_")+15+len(".xlsx"))
}

func TestGenerateOutputFileNameAddsExtension(t *testing.T) {
	assert.Equal(t, "orders.xlsx", GenerateOutputFileName("orders", nil))
	assert.Equal(t, "orders.XLSX", GenerateOutputFileName("orders.XLSX", nil))
}

func TestGenerateOutputFileNameUUID(t *testing.T) {
	a := GenerateOutputFileName("{uuid}", nil)
	b := GenerateOutputFileName("{uuid}", nil)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36+len(".xlsx"))
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "orders", SourceName("/data/in/orders.xlsx"))
	assert.Equal(t, "march.backup", SourceName("march.backup.csv"))
	assert.Equal(t, "plain", SourceName("plain"))
}

func TestTempPath(t *testing.T) {
	target := filepath.Join("out", "orders.xlsx")
	tmp := TempPath(target)

	assert.Equal(t, "out", filepath.Dir(tmp))
	assert.Equal(t, ".xlsx", filepath.Ext(tmp))
	assert.NotEqual(t, tmp, TempPath(target))
}

func TestReplaceFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "orders.xlsx")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	tmp := TempPath(target)
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0644))
	require.NoError(t, ReplaceFile(tmp, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.False(t, FileExists(tmp))
}

func TestReplaceFileFailureRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, ".tmp.xlsx")
	require.NoError(t, os.WriteFile(tmp, []byte("x"), 0644))

	err := ReplaceFile(tmp, filepath.Join(dir, "missing", "orders.xlsx"))
	assert.Error(t, err)
	assert.False(t, FileExists(tmp))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	assert.NoError(t, EnsureDir(""))
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteErrorLog(nil, dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = WriteErrorLog([]ErrorLogEntry{{
		Timestamp:    time.Now(),
		FileName:     "orders.xlsx",
		ErrorType:    "required",
		ErrorMessage: "收件人手机号 is empty",
		RowNumber:    3,
		FieldName:    "recipient_phone",
	}}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Total Warnings: 1")
	assert.Contains(t, text, "Row Number: 3")
	assert.Contains(t, text, "recipient_phone")
	assert.NotContains(t, text, "Value:")
}
