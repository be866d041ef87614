package reconcile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/services/metrics"
	"github.com/yintu/pmc/pkg/application/services/selection"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/memory"
	pmctesting "github.com/yintu/pmc/pkg/infrastructure/testing"
)

// setupLargeScenario builds orders production orders, each short linesPerOrder
// materials out of a catalogue of materials, every material quoted by three suppliers
func setupLargeScenario(orders, linesPerOrder, materials int) fixture {
	rates := entities.DefaultRates()
	f := fixture{
		orders:    memory.NewOrderRepository(orders),
		shortage:  memory.NewShortageRepository(orders * linesPerOrder),
		inventory: memory.NewInventoryRepository(materials),
		suppliers: memory.NewSupplierRepository(materials * 3),
	}

	orderList := make([]*entities.Order, 0, orders)
	for i := 0; i < orders; i++ {
		o, _ := entities.NewOrder(entities.ProductionOrderID(fmt.Sprintf("PSO%05d", i)), entities.CustomerOrderID(fmt.Sprintf("C%05d", i)), "MODEL")
		o.OrderValue = entities.Some(decimal.NewFromInt(int64(1000 + i)))
		o.SourceRow = i
		orderList = append(orderList, o)

		for j := 0; j < linesPerOrder; j++ {
			material := entities.MaterialID(fmt.Sprintf("M%05d", (i*linesPerOrder+j)%materials))
			f.shortage.AddShortageLine(entities.ShortageLine{
				OrderRef:    o.ProductionOrderID,
				MaterialID:  material,
				ShortageQty: entities.Some(decimal.NewFromInt(int64(1 + j))),
				SourceRow:   i*linesPerOrder + j,
			})
		}
	}
	_ = f.orders.LoadOrders(orderList)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for m := 0; m < materials; m++ {
		material := entities.MaterialID(fmt.Sprintf("M%05d", m))
		for s := 0; s < 3; s++ {
			q, _ := entities.NewSupplierQuote(material, fmt.Sprintf("Supplier %d", s), entities.SupplierID(fmt.Sprintf("%d", 1000+s)),
				entities.Some(decimal.NewFromInt(int64(10+s*m%7))), entities.RMB, rates)
			q.LastModified = entities.Some(base.AddDate(0, 0, -100*s))
			f.suppliers.AddQuote(*q)
		}
	}
	return f
}

func benchmarkReconcile(b *testing.B, f fixture, workers int) {
	ctx := context.Background()
	rates := entities.DefaultRates()
	selector := selection.NewSelector(f.suppliers, selection.DefaultWeights(), workers, nil)
	engine := NewEngine(f.orders, f.shortage, f.inventory, selector, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := engine.Reconcile(ctx)
		if err != nil {
			b.Fatalf("Reconcile failed: %v", err)
		}
		metrics.Summarize(metrics.Annotate(result.Rows, rates))
	}
}

func BenchmarkEngine_StandardScenario(b *testing.B) {
	orders, shortage, inventory, suppliers := pmctesting.BuildReconciliationTestData()
	benchmarkReconcile(b, fixture{orders: orders, shortage: shortage, inventory: inventory, suppliers: suppliers}, 1)
}

func BenchmarkEngine_LargeSequential(b *testing.B) {
	benchmarkReconcile(b, setupLargeScenario(2000, 8, 3000), 1)
}

func BenchmarkEngine_LargeParallel(b *testing.B) {
	benchmarkReconcile(b, setupLargeScenario(2000, 8, 3000), 8)
}
