package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/services/metrics"
	"github.com/yintu/pmc/pkg/application/services/reconcile"
	"github.com/yintu/pmc/pkg/application/services/report"
	"github.com/yintu/pmc/pkg/application/services/selection"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	rates := entities.DefaultRates()

	// Two customer orders share PSO-1001; PSO-1002 is fully kitted
	orderRepo := memory.NewOrderRepository(3)
	if err := orderRepo.LoadOrders([]*entities.Order{
		newOrder("PSO-1001", "CO-77", "KETTLE-2L", 1000),
		newOrder("PSO-1001", "CO-78", "KETTLE-2L", 500),
		newOrder("PSO-1002", "CO-80", "TOASTER-4", 800),
	}); err != nil {
		fmt.Printf("❌ failed to load orders: %v\n", err)
		return
	}

	shortageRepo := memory.NewShortageRepository(2)
	shortageRepo.AddShortageLine(entities.ShortageLine{OrderRef: "PSO-1001", MaterialID: "9-00101", MaterialName: "Thermostat", ShortageQty: qty(10)})
	shortageRepo.AddShortageLine(entities.ShortageLine{OrderRef: "PSO-1001", MaterialID: "7-00200", MaterialName: "Carton", ShortageQty: qty(40)})

	inventoryRepo := memory.NewInventoryRepository(1)
	carton, _ := entities.NewInventoryRecord("7-00200", "Carton", entities.None[decimal.Decimal](), qty(2), entities.RMB, rates)
	inventoryRepo.AddInventoryRecord(*carton)

	// The thermostat has two quotes; the cheaper one from the lower supplier number wins over the newer one
	supplierRepo := memory.NewSupplierRepository(2)
	for _, q := range []struct {
		name, id string
		price    int64
		modified time.Time
	}{
		{"Huaxin Electronics", "1001", 5, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"Delta Components", "1003", 6, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
	} {
		quote, _ := entities.NewSupplierQuote("9-00101", q.name, entities.SupplierID(q.id), qty(q.price), entities.RMB, rates)
		quote.LastModified = entities.Some(q.modified)
		supplierRepo.AddQuote(*quote)
	}

	selector := selection.NewSelector(supplierRepo, selection.DefaultWeights(), 2, logger)
	engine := reconcile.NewEngine(orderRepo, shortageRepo, inventoryRepo, selector, logger)

	fmt.Println("🔄 Reconciling orders against shortage...")
	result, err := engine.Reconcile(ctx)
	if err != nil {
		fmt.Printf("❌ Reconciliation failed: %v\n", err)
		return
	}
	result.Rows = metrics.Annotate(result.Rows, rates)
	rep := report.Assemble(result)

	fmt.Println("📊 Results:")
	fmt.Printf("  Orders: %d\n", rep.Summary.TotalOrders)
	fmt.Printf("  Shortage Amount: ¥%s\n", rep.Summary.TotalShortageAmountRMB.StringFixed(2))
	fmt.Printf("  Order Value: ¥%s\n", rep.Summary.TotalOrderValueRMB.StringFixed(2))
	fmt.Println()

	for _, o := range rep.Orders {
		fmt.Printf("  %-10s shortage ¥%-10s return ratio %-22s %s\n",
			o.ProductionOrderID, o.TotalShortageAmountRMB.StringFixed(2), o.ReturnRatio, o.Completeness)
	}
	fmt.Println()

	for _, row := range rep.Detail {
		if !row.HasShortage() {
			continue
		}
		fmt.Printf("  %-10s %-10s supplier %-20s price %s (%s)\n",
			row.Order.ProductionOrderID, row.MaterialID(), row.Supplier.SupplierName(),
			row.UnitPriceRMB.OrElse(decimal.Zero).StringFixed(2), row.PriceSource)
	}
}

func newOrder(po, customer, model string, usd int64) *entities.Order {
	order, err := entities.NewOrder(entities.ProductionOrderID(po), entities.CustomerOrderID(customer), model)
	if err != nil {
		panic(err)
	}
	order.Month = entities.Aug
	order.OrderValue = entities.Some(decimal.NewFromInt(usd))
	return order
}

func qty(v int64) entities.Optional[decimal.Decimal] {
	return entities.Some(decimal.NewFromInt(v))
}
