package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/yintu/pmc/pkg/domain/entities"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReader_UTF8WithBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("物项编号,单价\nM1,5\nM2\n")...)
	path := writeFile(t, "supplier.csv", content)

	rows, err := NewReader(nil).ReadRows(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "物项编号", rows[0][0])
	assert.Equal(t, []string{"M2"}, rows[2], "ragged rows are allowed")
}

func TestReader_GB18030Fallback(t *testing.T) {
	encoded, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte("物料名称,数量\n螺丝,3\n"))
	require.NoError(t, err)
	path := writeFile(t, "shortage.csv", encoded)

	rows, err := NewReader(nil).ReadRows(path, "ignored")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "物料名称", rows[0][0])
	assert.Equal(t, "螺丝", rows[1][0])
}

func TestReader_Missing(t *testing.T) {
	_, err := NewReader(nil).ReadRows(filepath.Join(t.TempDir(), "nope.csv"), "")
	assert.ErrorIs(t, err, entities.ErrSourceUnavailable)
}

func TestReader_SheetNames(t *testing.T) {
	path := writeFile(t, "inventory.csv", []byte("a\n"))
	names, err := NewReader(nil).SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory"}, names)
}
