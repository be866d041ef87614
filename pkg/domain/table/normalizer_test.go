package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = []ColumnRule{
	{Canonical: "生产单号", Aliases: []string{"生 產 單 号(  廠方 )", "生产单", "生産単号"}},
	{Canonical: "客户订单号", Aliases: []string{"生 產 單 号(客方 )", "客户订单"}},
	{Canonical: "数量Pcs", Aliases: []string{"數 量  (Pcs)", "数量"}},
	{Canonical: "订单金额", Aliases: []string{"订单金额"}},
}

func TestCanonicalHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"生 產 單 号(  廠方 )", "生產單号(廠方)"},
		{"生 產 單 号( 廠方 )", "生產單号(廠方)"},
		{"生產單号（廠方）", "生產單号(廠方)"},
		{"倉存不足\n(齊套料)", "倉存不足(齊套料)"},
		{"BOM NO.", "bomno."},
		{"Ｑｔｙ", "qty"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalHeader(tt.in), "input %q", tt.in)
	}
}

func TestNormalize_RenamesVariants(t *testing.T) {
	raw := New(
		[]string{"生 產 單 号( 廠方 )", "生 產 單 号(客方 )", "數 量  (Pcs)", "備註"},
		[][]string{{"PSO1", "C1", "100", "x"}},
	)

	out := Normalize(raw, testRules)

	assert.Equal(t, []string{"生产单号", "客户订单号", "数量Pcs", "備註"}, out.Columns)
	assert.Equal(t, "PSO1", out.Value(0, "生产单号"))
	assert.False(t, out.Has("订单金额"), "missing canonical columns stay absent")
	assert.Equal(t, []string{"订单金额"}, Missing(out, testRules))

	// input untouched
	assert.Equal(t, "生 產 單 号( 廠方 )", raw.Columns[0])
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := New(
		[]string{"生产单", "生産単号", "客户订单", "数量"},
		[][]string{{"PSO1", "PSO1-dup", "C1", "5"}},
	)

	once := Normalize(raw, testRules)
	twice := Normalize(once, testRules)

	require.Equal(t, once.Columns, twice.Columns)
	assert.Equal(t, once.Rows, twice.Rows)
	assert.Equal(t, []string{"生产单号", "生産単号", "客户订单号", "数量Pcs"}, once.Columns,
		"second alias for an already mapped field keeps its header")
}

func TestNormalize_CanonicalAlreadyPresent(t *testing.T) {
	raw := New([]string{"生产单", "生产单号"}, nil)

	out := Normalize(raw, testRules)

	assert.Equal(t, []string{"生产单", "生产单号"}, out.Columns)
}

func TestFromRowsAndWithColumns(t *testing.T) {
	rows := [][]string{
		{"banner"},
		{" a ", "b", "c"},
		{"1", "2"},
	}

	tbl := FromRows(rows, 1)
	require.Equal(t, []string{"a", "b", "c"}, tbl.Columns)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, "", tbl.Value(0, "c"), "ragged row reads empty")

	renamed := tbl.WithColumns([]string{"x", "y", "z", "w"})
	assert.Equal(t, []string{"x", "y", "z", "w"}, renamed.Columns)
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)

	assert.Equal(t, 0, FromRows(rows, 5).Len())
}
