package loading

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/sheets"
)

// fakeReader serves sheets from memory: files[path][sheet]
type fakeReader map[string]map[string][][]string

func (f fakeReader) ReadRows(path, sheet string) ([][]string, error) {
	book, ok := f[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrSourceUnavailable, path)
	}
	rows, ok := book[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrSheetNotFound, sheet)
	}
	return rows, nil
}

func newTestLoader(r SheetReader) *Loader {
	return NewLoader(r, Options{
		Rates:             entities.DefaultRates(),
		OrderCurrency:     entities.USD,
		DefaultOrderValue: decimal.NewFromInt(1000),
	}, nil)
}

func warnings(diags []dto.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == dto.SeverityWarning {
			n++
		}
	}
	return n
}

func TestLoadOrders(t *testing.T) {
	reader := fakeReader{
		"domestic.xlsx": {
			"8月": {
				{"Order book Aug"},
				{"生 產 單 号(  廠方 )", "生 產 單 号(客方 )", "型 號( 廠方/客方 )", "數 量  (Pcs)", "订单金额", "目的地"},
				{" PSO1 ", "C1", "M-A", "100", "1000", "US"},
				{"PSO1", "C2", "M-A", "50", "500", "US"},
				{"", "C3", "M-B", "1", "1"},
				{"PSO2", "", "", "1", "1"},
			},
		},
	}
	sources := []OrderSource{{
		Path: "domestic.xlsx",
		Site: entities.Domestic,
		Sheets: []MonthSheets{
			{Month: entities.Aug, Names: []string{"8月"}},
			{Month: entities.Sep, Names: []string{"9月"}},
		},
	}}

	orders, diags, err := newTestLoader(reader).LoadOrders(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, entities.ProductionOrderID("PSO1"), first.ProductionOrderID)
	assert.Equal(t, entities.CustomerOrderID("C1"), first.CustomerOrderID)
	assert.Equal(t, entities.Aug, first.Month)
	assert.Equal(t, entities.Domestic, first.Site)
	assert.Equal(t, entities.USD, first.Currency)
	assert.Equal(t, "US", first.Destination)
	assert.False(t, first.ValueDefaulted)
	v, ok := first.OrderValue.Get()
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(1000)))
	q, _ := first.Quantity.Get()
	assert.EqualValues(t, 100, q)

	assert.NotEqual(t, orders[0].SourceRow, orders[1].SourceRow)
	assert.Equal(t, 1, warnings(diags), "missing September sheet is a warning")
}

func TestLoadOrders_DefaultValue(t *testing.T) {
	reader := fakeReader{
		"overseas.xlsx": {
			"8月-柬": {
				{"生产单号", "客户订单号", "产品型号", "订单币种"},
				{"PSO9", "C9", "M-Z", "HKD"},
			},
		},
	}
	sources := []OrderSource{{
		Path:   "overseas.xlsx",
		Site:   entities.Overseas,
		Sheets: []MonthSheets{{Month: entities.Aug, Names: []string{"8月 -柬", "8月-柬"}}},
	}}

	orders, diags, err := newTestLoader(reader).LoadOrders(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.True(t, orders[0].ValueDefaulted)
	assert.Equal(t, entities.HKD, orders[0].Currency)
	v, _ := orders[0].OrderValue.Get()
	assert.True(t, v.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, warnings(diags))
}

func TestLoadOrders_Failures(t *testing.T) {
	ctx := context.Background()

	_, _, err := newTestLoader(fakeReader{}).LoadOrders(ctx, []OrderSource{{
		Path:   "missing.xlsx",
		Sheets: []MonthSheets{{Month: entities.Aug, Names: []string{"8月"}}},
	}})
	assert.ErrorIs(t, err, entities.ErrOrdersUnavailable)

	headerOnly := fakeReader{"d.xlsx": {"8月": {{"生产单号", "客户订单号", "产品型号"}}}}
	_, _, err = newTestLoader(headerOnly).LoadOrders(ctx, []OrderSource{{
		Path:   "d.xlsx",
		Sheets: []MonthSheets{{Month: entities.Aug, Names: []string{"8月"}}},
	}})
	assert.ErrorIs(t, err, entities.ErrNoOrders)
}

func shortageRow(ref, material, name, qty string) []string {
	row := make([]string, len(ShortageLayout))
	row[0] = ref
	row[7] = material
	row[8] = name
	row[11] = qty
	return row
}

func TestLoadShortage(t *testing.T) {
	header := make([]string, len(ShortageLayout))
	for i := range header {
		header[i] = fmt.Sprintf("col%d", i)
	}
	reader := fakeReader{
		"shortage.xlsx": {
			"": {
				{"欠料汇总"},
				header,
				shortageRow(" PSO1 ", "M1", "Screw", "10"),
				shortageRow("PSO1", "", "已齐套", ""),
				shortageRow("", "M2", "Nut", "5"),
				shortageRow("PSO2", "M3", "Bolt", "-3"),
			},
		},
	}

	lines, diags := newTestLoader(reader).LoadShortage(context.Background(), SheetSource{Name: "shortage", Path: "shortage.xlsx"})
	require.Len(t, lines, 2)

	assert.Equal(t, entities.ProductionOrderID("PSO1"), lines[0].OrderRef)
	assert.Equal(t, entities.MaterialID("M1"), lines[0].MaterialID)
	assert.True(t, lines[0].Qty().Equal(decimal.NewFromInt(10)))

	assert.Equal(t, entities.ProductionOrderID("PSO2"), lines[1].OrderRef)
	assert.False(t, lines[1].ShortageQty.IsSome(), "negative quantity becomes missing")

	assert.Equal(t, 1, warnings(diags))
}

func TestLoadShortage_NarrowExportUsesAliases(t *testing.T) {
	reader := fakeReader{
		"narrow.csv": {
			"": {
				{"banner"},
				{"訂單編號", "物料編號", "物料名稱", "倉存不足\n(齊套料)"},
				{"PSO1", "M1", "Screw", "4"},
			},
		},
	}

	lines, _ := newTestLoader(reader).LoadShortage(context.Background(), SheetSource{Path: "narrow.csv"})
	require.Len(t, lines, 1)
	assert.Equal(t, entities.MaterialID("M1"), lines[0].MaterialID)
	assert.True(t, lines[0].Qty().Equal(decimal.NewFromInt(4)))
}

func TestLoadShortage_MissingSourceDegrades(t *testing.T) {
	lines, diags := newTestLoader(fakeReader{}).LoadShortage(context.Background(), SheetSource{Name: "shortage", Path: "nope.xlsx"})
	assert.Empty(t, lines)
	require.Len(t, diags, 1)
	assert.Equal(t, dto.SeverityWarning, diags[0].Severity)
}

func TestLoadInventory_Dedup(t *testing.T) {
	reader := fakeReader{
		"inventory.xlsx": {
			"": {
				{"物項編號", "物項名稱", "最新報價", "成本單價", "貨幣"},
				{"M1", "Screw", "", "", "RMB"},
				{"M1", "Screw", "2", "", "RMB"},
				{"M1", "Screw", "3", "", "RMB"},
				{"M2", "Nut", "", "1", "USD"},
				{"", "Orphan", "9", "", "RMB"},
				{"M3", "Washer", "1", "", "JPY"},
			},
		},
	}

	records, diags := newTestLoader(reader).LoadInventory(context.Background(), SheetSource{Path: "inventory.xlsx"})
	require.Len(t, records, 3)

	p, _ := records[0].PriceRMB.Get()
	assert.True(t, p.Equal(decimal.NewFromInt(2)), "first priced row wins, got %s", p)

	p, _ = records[1].PriceRMB.Get()
	assert.True(t, p.Equal(decimal.RequireFromString("7.2")), "cost in USD converted, got %s", p)

	p, _ = records[2].PriceRMB.Get()
	assert.True(t, p.Equal(decimal.NewFromInt(1)), "unknown currency at 1.0, got %s", p)

	assert.Equal(t, 1, warnings(diags), "unknown currency warned once")
}

func TestLoadSuppliers(t *testing.T) {
	reader := fakeReader{
		"suppliers.xlsx": {
			"": {
				{"物项编号", "供应商名称", "供应商号", "单价", "币种", "修改日期"},
				{"M1", "Acme", "200", "10", "RMB", "2024-01-01"},
				{"M1", "Bolt Co", "100", "8", "RMB", "soon"},
				{"M2", "Acme", "200", "1", "USD", ""},
			},
		},
	}

	quotes, _ := newTestLoader(reader).LoadSuppliers(context.Background(), SheetSource{Path: "suppliers.xlsx"})
	require.Len(t, quotes, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{quotes[0].Seq, quotes[1].Seq, quotes[2].Seq})
	assert.True(t, quotes[0].LastModified.IsSome())
	assert.False(t, quotes[1].LastModified.IsSome())
	p, _ := quotes[2].PriceRMB.Get()
	assert.True(t, p.Equal(decimal.RequireFromString("7.2")))
}

func TestLoadOrders_FromWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overseas.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("8月-柬")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("8月-柬", "A1", &[]any{"生产单号", "客户订单号", "产品型号", "订单金额"}))
	require.NoError(t, f.SetSheetRow("8月-柬", "A2", &[]any{"PSO7", "C7", "M-7", 1500}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loader := newTestLoader(sheets.NewReader(nil))
	orders, _, err := loader.LoadOrders(context.Background(), []OrderSource{{
		Path:   path,
		Site:   entities.Overseas,
		Sheets: []MonthSheets{{Month: entities.Aug, Names: []string{"8月 -柬"}}},
	}})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	v, _ := orders[0].OrderValue.Get()
	assert.True(t, v.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, entities.Overseas, orders[0].Site)
}
