// Package testing provides the shared reconciliation scenario used across package tests.
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/memory"
)

// BuildReconciliationTestData builds the standard scenario:
//
//	PSO1  customer orders C1, C2   short 10 x M1 (one quote, Acme 5 RMB)
//	PSO2  customer order C3        fully kitted
//	PSO3  customer order C4        short M2 (two quotes), M3 (inventory only, USD), M4 (nothing)
//	PSO9                           shortage line without an order
func BuildReconciliationTestData() (*memory.OrderRepository, *memory.ShortageRepository, *memory.InventoryRepository, *memory.SupplierRepository) {
	rates := entities.DefaultRates()

	orderRepo := memory.NewOrderRepository(4)
	shortageRepo := memory.NewShortageRepository(5)
	inventoryRepo := memory.NewInventoryRepository(2)
	supplierRepo := memory.NewSupplierRepository(3)

	orders := []*entities.Order{
		order("PSO1", "C1", 0),
		order("PSO1", "C2", 1),
		order("PSO2", "C3", 2),
		order("PSO3", "C4", 3),
	}
	if err := orderRepo.LoadOrders(orders); err != nil {
		panic(err)
	}

	lines := []*entities.ShortageLine{
		line(" PSO1 ", "M1", "10", 0),
		line("PSO3", "M2", "2", 1),
		line("PSO3", "M3", "4", 2),
		line("PSO3", "M4", "1", 3),
		line("PSO9", "M1", "1", 4),
	}
	if err := shortageRepo.LoadShortageLines(lines); err != nil {
		panic(err)
	}

	quotes := []struct {
		material entities.MaterialID
		name     string
		id       entities.SupplierID
		price    string
		modified entities.Optional[time.Time]
	}{
		{"M1", "Acme", "100", "5", entities.None[time.Time]()},
		{"M2", "Far East", "S-A", "10", entities.Some(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"M2", "Cheap Co", "S-B", "8", entities.Some(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))},
	}
	for _, q := range quotes {
		quote, err := entities.NewSupplierQuote(q.material, q.name, q.id, entities.Some(decimal.RequireFromString(q.price)), entities.RMB, rates)
		if err != nil {
			panic(err)
		}
		quote.LastModified = q.modified
		supplierRepo.AddQuote(*quote)
	}

	// M3 is only priced through inventory; M1's inventory price loses to its quote
	inventory := []struct {
		material entities.MaterialID
		name     string
		latest   string
		currency entities.Currency
	}{
		{"M3", "Washer", "1", entities.USD},
		{"M1", "Screw", "99", entities.RMB},
	}
	for _, inv := range inventory {
		record, err := entities.NewInventoryRecord(inv.material, inv.name, entities.Some(decimal.RequireFromString(inv.latest)), entities.None[decimal.Decimal](), inv.currency, rates)
		if err != nil {
			panic(err)
		}
		inventoryRepo.AddInventoryRecord(*record)
	}

	return orderRepo, shortageRepo, inventoryRepo, supplierRepo
}

func order(po, customer string, row int) *entities.Order {
	o, err := entities.NewOrder(entities.ProductionOrderID(po), entities.CustomerOrderID(customer), "MODEL-"+po)
	if err != nil {
		panic(err)
	}
	o.SourceRow = row
	return o
}

func line(ref, material, qty string, row int) *entities.ShortageLine {
	l, err := entities.NewShortageLine(entities.ProductionOrderID(ref), entities.MaterialID(material), "name "+material, entities.Some(decimal.RequireFromString(qty)))
	if err != nil {
		panic(err)
	}
	l.SourceRow = row
	return l
}
