package orchestration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/application/services/loading"
	"github.com/yintu/pmc/pkg/application/services/selection"
	"github.com/yintu/pmc/pkg/domain/entities"
)

type memoryReader map[string][][]string

func (m memoryReader) ReadRows(path, sheet string) ([][]string, error) {
	rows, ok := m[path+"|"+sheet]
	if !ok {
		if strings.HasPrefix(path, "missing") {
			return nil, fmt.Errorf("%w: %s", entities.ErrSourceUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %s", entities.ErrSheetNotFound, sheet)
	}
	return rows, nil
}

type recorder struct {
	stages []string
	report *dto.Report
}

func (r *recorder) ObserveStage(stage string, _ time.Duration) { r.stages = append(r.stages, stage) }
func (r *recorder) ObserveReport(report *dto.Report)           { r.report = report }

func shortage(ref, material, qty string) []string {
	row := make([]string, len(loading.ShortageLayout))
	row[0], row[7], row[8], row[11] = ref, material, "part "+material, qty
	return row
}

func fixtureReader() memoryReader {
	header := make([]string, len(loading.ShortageLayout))
	copy(header, loading.ShortageLayout)

	return memoryReader{
		"orders.xlsx|8月": {
			{"生产单号", "客户订单号", "产品型号", "订单金额"},
			{"PSO1", "C1", "A-1", "1000"},
			{"PSO1", "C2", "A-1", "500"},
			{"PSO2", "C3", "B-2", "800"},
			{"PSO3", "C4", "C-3", "100"},
		},
		"shortage.xlsx|": {
			{"banner"},
			header,
			shortage("PSO1", "M1", "10"),
			shortage("PSO3", "M2", "2"),
			shortage("PSO7", "M1", "1"),
		},
		"suppliers.xlsx|": {
			{"物项编号", "供应商名称", "供应商号", "单价", "币种", "修改日期"},
			{"M1", "Acme", "100", "5", "RMB", "2024-05-01"},
			{"M2", "Far East", "S-A", "10", "RMB", "2024-01-01"},
			{"M2", "Cheap Co", "S-B", "8", "RMB", "2023-01-01"},
		},
	}
}

func fixtureSources() Sources {
	return Sources{
		Orders: []loading.OrderSource{{
			Path:   "orders.xlsx",
			Site:   entities.Domestic,
			Sheets: []loading.MonthSheets{{Month: entities.Aug, Names: []string{"8月"}}},
		}},
		Shortage:  loading.SheetSource{Name: "shortage", Path: "shortage.xlsx"},
		Inventory: loading.SheetSource{Name: "inventory", Path: "missing-inventory.xlsx"},
		Suppliers: loading.SheetSource{Name: "suppliers", Path: "suppliers.xlsx"},
	}
}

func newPipeline(reader loading.SheetReader, obs Observer) *Pipeline {
	loader := loading.NewLoader(reader, loading.Options{
		Rates:             entities.DefaultRates(),
		OrderCurrency:     entities.USD,
		DefaultOrderValue: decimal.NewFromInt(1000),
	}, nil)
	return NewPipeline(loader, Options{
		Weights:  selection.DefaultWeights(),
		Workers:  2,
		RunID:    "run-1",
		Observer: obs,
		Now:      func() time.Time { return time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC) },
	}, nil)
}

func TestPipeline_Run(t *testing.T) {
	obs := &recorder{}

	rep, err := newPipeline(fixtureReader(), obs).Run(context.Background(), fixtureSources())
	require.NoError(t, err)

	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, 2025, rep.GeneratedAt.Year())
	assert.Equal(t, []string{StageLoad, StageValidate, StageReconcile, StageReport}, obs.stages)
	assert.Same(t, rep, obs.report)

	require.Len(t, rep.Orders, 3)

	pso1 := rep.Orders[0]
	v, _ := pso1.OrderValueRMB.Get()
	assert.True(t, v.Equal(decimal.NewFromInt(10800)), "got %s", v)
	assert.True(t, pso1.TotalShortageAmountRMB.Equal(decimal.NewFromInt(50)))
	ratio, ok := pso1.ReturnRatio.Numeric()
	require.True(t, ok)
	assert.True(t, ratio.Equal(decimal.NewFromInt(216)), "got %s", ratio)

	pso2 := rep.Orders[1]
	assert.Equal(t, entities.ProductionOrderID("PSO2"), pso2.ProductionOrderID)
	assert.Equal(t, entities.Complete, pso2.Completeness)
	assert.Equal(t, "no investment needed", pso2.ReturnRatio.String())

	pso3 := rep.Orders[2]
	assert.True(t, pso3.TotalShortageAmountRMB.Equal(decimal.NewFromInt(16)), "8 RMB quote is primary")

	var m2Supplier string
	for _, d := range rep.Detail {
		if d.MaterialID() == "M2" {
			m2Supplier = d.Supplier.SupplierName()
		}
	}
	assert.Equal(t, "Cheap Co", m2Supplier)

	require.Len(t, rep.SupplierChoices, 2)

	var messages []string
	for _, d := range rep.Diagnostics {
		messages = append(messages, d.Message)
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "inventory source unavailable")
	assert.Contains(t, joined, "match no order")
}

func TestPipeline_OrdersUnavailableIsFatal(t *testing.T) {
	sources := fixtureSources()
	sources.Orders[0].Path = "missing-orders.xlsx"

	_, err := newPipeline(fixtureReader(), nil).Run(context.Background(), sources)
	assert.ErrorIs(t, err, entities.ErrOrdersUnavailable)
}

func TestPipeline_DeterministicAcrossRuns(t *testing.T) {
	first, err := newPipeline(fixtureReader(), nil).Run(context.Background(), fixtureSources())
	require.NoError(t, err)
	second, err := newPipeline(fixtureReader(), nil).Run(context.Background(), fixtureSources())
	require.NoError(t, err)

	assert.Equal(t, first.Orders, second.Orders)
	assert.Equal(t, first.Summary, second.Summary)
}
